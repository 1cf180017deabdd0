package controllers

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	humanize "github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	coreservices "github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/modules/projects/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/projects/presentation/mappers"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/activity"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/projects"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/projects/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
)

// multipartOverhead is allowed on top of the file size limit for the
// boundaries and part headers of the upload form.
const multipartOverhead = 1 << 20

type ProjectsControllerOptions struct {
	BasePath  string
	TasksPath string
}

type ProjectsController struct {
	app             application.Application
	basePath        string
	tasksPath       string
	projectService  *services.ProjectService
	mainTaskService *services.MainTaskService
	fileService     *services.FileService
	userService     *coreservices.UserService
}

func NewProjectsController(app application.Application, opts *ProjectsControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("ProjectsController requires explicit BasePath in options")
	}
	return &ProjectsController{
		app:             app,
		basePath:        opts.BasePath,
		tasksPath:       mapping.Or(opts.TasksPath, "/tasks"),
		projectService:  app.Service(services.ProjectService{}).(*services.ProjectService),
		mainTaskService: app.Service(services.MainTaskService{}).(*services.MainTaskService),
		fileService:     app.Service(services.FileService{}).(*services.FileService),
		userService:     app.Service(coreservices.UserService{}).(*coreservices.UserService),
	}
}

func (c *ProjectsController) Key() string {
	return c.basePath
}

func (c *ProjectsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.Projects).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetDetail).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/edit", c.GetEdit).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/activity", c.Activity).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)

	router.HandleFunc("/{id:[0-9]+}/members", c.Members).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/members", c.AddMember).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}/members/{userId:[0-9]+}", c.RemoveMember).Methods(http.MethodDelete)

	router.HandleFunc("/{id:[0-9]+}/files", c.Files).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/files", c.Upload).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}/files/{fileId:[0-9]+}", c.Preview).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/files/{fileId:[0-9]+}/download", c.Download).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/files/{fileId:[0-9]+}", c.DeleteFile).Methods(http.MethodDelete)
}

func (c *ProjectsController) projectURL(id int64) string {
	return c.basePath + "/" + strconv.FormatInt(id, 10)
}

func (c *ProjectsController) userOptions(r *http.Request) []viewmodels.Option {
	us, err := c.userService.Options(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load user options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(us))
	for _, u := range us {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(u.ID, 10), Label: u.Name})
	}
	return out
}

func (c *ProjectsController) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := composables.UsePaginated(r)
	search := composables.GetLastQueryParam(r, "search")
	status := composables.GetLastQueryParam(r, "status")
	if !project.Status(status).IsValid() {
		status = ""
	}

	props := &projects.IndexPageProps{
		Search:    search,
		Status:    status,
		BasePath:  c.basePath,
		CanCreate: composables.CanUser(ctx, permissions.ProjectCreate),
		CanUpdate: composables.CanUser(ctx, permissions.ProjectUpdate),
		CanDelete: composables.CanUser(ctx, permissions.ProjectDelete),
		Page: pagination.State{
			Page:     params.Page,
			PageSize: params.Limit,
			BaseURL:  r.URL.RequestURI(),
			Target:   "#" + projects.ListID,
		},
	}

	ps, total, err := c.projectService.GetPaginated(ctx, &project.FindParams{
		Page:   params.Page,
		Limit:  params.Limit,
		Search: search,
		Status: project.Status(status),
	})
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props.Page.Total = total
	props.Projects = mapping.MapViewModels(ps, mappers.ProjectToViewModel)

	var comp templ.Component
	switch {
	case htmx.Target(r) == (table.Props{ID: projects.TableID}).BodyID():
		comp = projects.Rows(props)
	case htmx.IsHxRequest(r):
		comp = projects.List(props)
	default:
		comp = projects.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) renderForm(w http.ResponseWriter, r *http.Request, props *projects.FormProps) {
	props.BasePath = c.basePath
	if props.Managers == nil {
		props.Managers = c.userOptions(r)
	}
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(projects.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.ProjectCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, &projects.FormProps{
		Project: viewmodels.Project{Status: string(project.StatusPlanned)},
		IsNew:   true,
	})
}

func (c *ProjectsController) GetEdit(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.ProjectUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	p, err := c.projectService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load project"))
		return
	}
	c.renderForm(w, r, &projects.FormProps{Project: mappers.ProjectToViewModel(p)})
}

func (c *ProjectsController) membersProps(r *http.Request, id int64, members []project.Member) projects.MembersProps {
	ctx := r.Context()
	props := projects.MembersProps{
		ProjectURL: c.projectURL(id),
		Members:    mapping.MapViewModels(members, mappers.MemberToViewModel),
		CanManage:  composables.CanUser(ctx, permissions.ProjectMembers),
	}
	if !props.CanManage {
		return props
	}
	taken := make(map[string]bool, len(props.Members))
	for _, m := range props.Members {
		taken[m.UserID] = true
	}
	for _, u := range c.userOptions(r) {
		if !taken[u.Value] {
			props.Candidates = append(props.Candidates, u)
		}
	}
	return props
}

func (c *ProjectsController) mainTasksProps(r *http.Request, id int64) projects.MainTasksProps {
	ctx := r.Context()
	return projects.MainTasksProps{
		ProjectURL: c.projectURL(id),
		TasksPath:  c.tasksPath,
		CanCreate:  composables.CanUser(ctx, permissions.TaskCreate),
		CanUpdate:  composables.CanUser(ctx, permissions.TaskUpdate),
		CanDelete:  composables.CanUser(ctx, permissions.TaskDelete),
	}
}

func (c *ProjectsController) filesProps(r *http.Request, id int64, files []file.File) projects.FilesProps {
	canUpdate := composables.CanUser(r.Context(), permissions.ProjectUpdate)
	return projects.FilesProps{
		ProjectURL: c.projectURL(id),
		Files:      mapping.MapViewModels(files, mappers.FileToViewModel),
		MaxSize:    c.fileService.MaxSize(r.Context()),
		CanUpload:  canUpdate,
		CanDelete:  canUpdate,
	}
}

func (c *ProjectsController) GetDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	d, err := c.projectService.Detail(ctx, id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load project"))
		return
	}
	if d.Partial != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, d.Partial); !ok {
			return
		}
	}
	mainTasks := c.mainTasksProps(r, id)
	mainTasks.MainTasks = mapping.MapViewModels(d.MainTasks, mappers.MainTaskToViewModel)
	props := &projects.DetailPageProps{
		Project:   mappers.ProjectToViewModel(d.Project),
		Members:   c.membersProps(r, id, d.Members),
		MainTasks: mainTasks,
		Files:     c.filesProps(r, id, d.Files),
		Activity:  mapping.MapViewModels(d.Activity, mappers.ActivityToViewModel),
		BasePath:  c.basePath,
		TasksPath: c.tasksPath,
		CanUpdate: composables.CanUser(ctx, permissions.ProjectUpdate),
		CanDelete: composables.CanUser(ctx, permissions.ProjectDelete),
	}
	templ.Handler(projects.Detail(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) Activity(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	items, err := c.projectService.Activity(r.Context(), id)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	templ.Handler(activity.Feed(activity.FeedProps{
		Items:     mapping.MapViewModels(items, mappers.ActivityToViewModel),
		URL:       c.projectURL(id) + "/activity",
		RefreshOn: projects.ActivityRefreshOn,
	}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.ProjectDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &projects.FormProps{Project: projectDTOToViewModel(dto), Errors: errs, IsNew: true})
		return
	}
	created, err := c.projectService.Create(ctx, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.ChangeEvent,
		intl.T(ctx, "Projects.Messages.Created", "Project "+created.Name+" created", map[string]interface{}{"Name": created.Name}),
		c.projectURL(created.ID))
}

func (c *ProjectsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.ProjectDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := projectDTOToViewModel(dto)
		vm.ID = strconv.FormatInt(id, 10)
		c.renderForm(w, r, &projects.FormProps{Project: vm, Errors: errs})
		return
	}
	updated, changed, err := c.projectService.Update(ctx, id, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	composables.UseLogger(ctx).WithField("project_id", id).WithField("fields", changed).Info("project updated")
	if htmx.IsHxRequest(r) && isDetailURL(htmx.CurrentURL(r), c.projectURL(id)) {
		htmx.Refresh(w)
	}
	shared.Done(w, r, projects.ChangeEvent,
		intl.T(ctx, "Projects.Messages.Updated", "Project "+updated.Name+" saved", map[string]interface{}{"Name": updated.Name}),
		c.projectURL(id))
}

func (c *ProjectsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.projectService.Delete(ctx, id); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	msg := intl.T(ctx, "Projects.Messages.Deleted", "Project deleted")
	if htmx.IsHxRequest(r) && isDetailURL(htmx.CurrentURL(r), c.projectURL(id)) {
		htmx.Redirect(w, c.basePath)
	}
	shared.Done(w, r, projects.ChangeEvent, msg, c.basePath)
}

func (c *ProjectsController) Members(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	members, err := c.projectService.Members(r.Context(), id)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props := c.membersProps(r, id, members)
	templ.Handler(projects.Members(&props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.MemberDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := dto.Ok(ctx); !ok {
		shared.Reject(w, r, http.StatusUnprocessableEntity,
			intl.T(ctx, "Projects.Members.SelectUserError", "Select a user to add."))
		return
	}
	if err := c.projectService.AddMember(ctx, id, dto.UserID); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.MembersEvent, intl.T(ctx, "Projects.Messages.MemberAdded", "Member added"), c.projectURL(id))
}

func (c *ProjectsController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	userID, err := shared.ParseIDVar(r, "userId")
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.projectService.RemoveMember(ctx, id, userID); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.MembersEvent, intl.T(ctx, "Projects.Messages.MemberRemoved", "Member removed"), c.projectURL(id))
}

func (c *ProjectsController) Files(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	files, err := c.fileService.List(r.Context(), id)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props := c.filesProps(r, id, files)
	templ.Handler(projects.Files(&props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectsController) rejectTooLarge(w http.ResponseWriter, r *http.Request) {
	limit := humanize.Bytes(uint64(c.fileService.MaxSize(r.Context())))
	shared.Reject(w, r, http.StatusRequestEntityTooLarge,
		intl.T(r.Context(), "Files.Errors.TooLarge", "The file is larger than "+limit+".", map[string]interface{}{"Limit": limit}))
}

// Upload checks the size before the body is read into memory and before the
// backend is called.
func (c *ProjectsController) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := composables.RequirePermission(ctx, permissions.ProjectUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	maxSize := c.fileService.MaxSize(ctx)
	if maxSize > 0 {
		if r.ContentLength > maxSize+multipartOverhead {
			c.rejectTooLarge(w, r)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(composables.UseConfig(ctx).MaxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.rejectTooLarge(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	f, header, err := r.FormFile("file")
	if err != nil {
		shared.Reject(w, r, http.StatusUnprocessableEntity, intl.T(ctx, "Files.Errors.Missing", "Choose a file to upload."))
		return
	}
	defer f.Close()
	if err := c.fileService.CheckSize(ctx, header.Size); err != nil {
		if errors.Is(err, file.ErrEmpty) {
			shared.Reject(w, r, http.StatusUnprocessableEntity, intl.T(ctx, "Files.Errors.Empty", "The file is empty."))
			return
		}
		c.rejectTooLarge(w, r)
		return
	}
	content, err := io.ReadAll(f)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "read upload"))
		return
	}
	uploaded, err := c.fileService.Upload(ctx, id, file.Upload{Name: header.Filename, Content: content})
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.FilesEvent,
		intl.T(ctx, "Files.Messages.Uploaded", uploaded.Name+" uploaded", map[string]interface{}{"Name": uploaded.Name}),
		c.projectURL(id))
}

func (c *ProjectsController) findFile(r *http.Request, projectID, fileID int64) (file.File, error) {
	files, err := c.fileService.List(r.Context(), projectID)
	if err != nil {
		return file.File{}, err
	}
	for _, f := range files {
		if f.ID == fileID {
			return f, nil
		}
	}
	return file.File{}, errors.Wrapf(shared.ErrInvalidID, "file %d", fileID)
}

func (c *ProjectsController) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	fileID, err := shared.ParseIDVar(r, "fileId")
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	f, err := c.findFile(r, id, fileID)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	vm := mappers.FileToViewModel(f)
	templ.Handler(projects.Preview(&projects.PreviewProps{
		File:        vm,
		DownloadURL: projects.DownloadURL(c.projectURL(id), vm.ID),
	}), templ.WithStreaming()).ServeHTTP(w, r)
}

// Download proxies the stored content. With ?inline=1 the browser is asked
// to display it, which the preview dialog relies on.
func (c *ProjectsController) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	fileID, err := shared.ParseIDVar(r, "fileId")
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	name := "file-" + strconv.FormatInt(fileID, 10)
	if f, err := c.findFile(r, id, fileID); err == nil {
		name = f.Name
	}
	body, contentType, err := c.fileService.Open(ctx, id, fileID)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	defer body.Close()

	disposition := "attachment"
	if r.URL.Query().Get("inline") == "1" {
		disposition = "inline"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, body); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("file_id", fileID).Warn("file download interrupted")
	}
}

func (c *ProjectsController) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	fileID, err := shared.ParseIDVar(r, "fileId")
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.fileService.Delete(ctx, id, fileID); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.FilesEvent, intl.T(ctx, "Files.Messages.Deleted", "File deleted"), c.projectURL(id))
}

func projectDTOToViewModel(d *dtos.ProjectDTO) viewmodels.Project {
	return viewmodels.Project{
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Status:      d.Status,
		StartDate:   d.StartDate.String(),
		EndDate:     d.EndDate.String(),
		ManagerID:   idString(d.ManagerID),
	}
}

func idString(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
