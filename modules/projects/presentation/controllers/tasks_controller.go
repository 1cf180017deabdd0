package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	coreservices "github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/modules/projects/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/projects/presentation/mappers"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/activity"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/tasks"
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

type TasksControllerOptions struct {
	BasePath     string
	ProjectsPath string
}

type TasksController struct {
	app             application.Application
	basePath        string
	projectsPath    string
	taskService     *services.TaskService
	projectService  *services.ProjectService
	mainTaskService *services.MainTaskService
	userService     *coreservices.UserService
	now             func() time.Time
}

func NewTasksController(app application.Application, opts *TasksControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("TasksController requires explicit BasePath in options")
	}
	return &TasksController{
		app:             app,
		basePath:        opts.BasePath,
		projectsPath:    mapping.Or(opts.ProjectsPath, "/projects"),
		taskService:     app.Service(services.TaskService{}).(*services.TaskService),
		projectService:  app.Service(services.ProjectService{}).(*services.ProjectService),
		mainTaskService: app.Service(services.MainTaskService{}).(*services.MainTaskService),
		userService:     app.Service(coreservices.UserService{}).(*coreservices.UserService),
		now:             time.Now,
	}
}

func (c *TasksController) Key() string {
	return c.basePath
}

func (c *TasksController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.Tasks).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/main-task-options", c.MainTaskOptions).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetDetail).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/edit", c.GetEdit).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/subtasks", c.SubTasks).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/activity", c.Activity).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/assignees", c.GetAssignees).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id:[0-9]+}/status", c.ChangeStatus).Methods(http.MethodPatch, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}/assignees", c.SetAssignees).Methods(http.MethodPut, http.MethodPost)
}

func (c *TasksController) projectOptions(r *http.Request) []viewmodels.Option {
	ps, err := c.projectService.Options(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load project options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(p.ID, 10), Label: p.Name})
	}
	return out
}

func (c *TasksController) mainTaskOptions(r *http.Request, projectID int64) []viewmodels.Option {
	if projectID <= 0 {
		return nil
	}
	ms, err := c.mainTaskService.ListByProject(r.Context(), projectID)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load main task options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(ms))
	for _, m := range ms {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(m.ID, 10), Label: m.Title})
	}
	return out
}

func (c *TasksController) userOptions(r *http.Request) []viewmodels.Option {
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

// assigneeOptions prefers the project members and falls back to all users
// when the project has none.
func (c *TasksController) assigneeOptions(r *http.Request, projectID int64) []viewmodels.Option {
	members, err := c.projectService.Members(r.Context(), projectID)
	if err != nil || len(members) == 0 {
		return c.userOptions(r)
	}
	out := make([]viewmodels.Option, 0, len(members))
	for _, m := range members {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(m.UserID, 10), Label: m.Name})
	}
	return out
}

func (c *TasksController) Tasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := composables.UsePaginated(r)
	q := composables.GetLastQueryParams(r, "search", "project_id", "main_task_id", "status", "assignee_id")
	filter := tasks.Filter{
		Search:     q["search"],
		ProjectID:  q["project_id"],
		MainTaskID: q["main_task_id"],
		Status:     q["status"],
		AssigneeID: q["assignee_id"],
	}
	if !task.Status(filter.Status).IsValid() {
		filter.Status = ""
	}
	projectID := parseID(filter.ProjectID)
	mainTaskID := parseID(filter.MainTaskID)
	if projectID == 0 {
		filter.MainTaskID, mainTaskID = "", 0
	}

	props := &tasks.IndexPageProps{
		Filter:    filter,
		BasePath:  c.basePath,
		CanCreate: composables.CanUser(ctx, permissions.TaskCreate),
		CanUpdate: composables.CanUser(ctx, permissions.TaskUpdate),
		CanDelete: composables.CanUser(ctx, permissions.TaskDelete),
		Page: pagination.State{
			Page:     params.Page,
			PageSize: params.Limit,
			BaseURL:  r.URL.RequestURI(),
			Target:   "#" + tasks.ListID,
		},
	}
	isRows := htmx.Target(r) == (table.Props{ID: tasks.TableID}).BodyID()
	if !isRows {
		props.Projects = c.projectOptions(r)
		props.MainTasks = c.mainTaskOptions(r, projectID)
		props.Users = c.userOptions(r)
	}

	ts, total, err := c.taskService.GetPaginated(ctx, &task.FindParams{
		Page:       params.Page,
		Limit:      params.Limit,
		Search:     filter.Search,
		ProjectID:  projectID,
		MainTaskID: mainTaskID,
		Status:     task.Status(filter.Status),
		AssigneeID: parseID(filter.AssigneeID),
	})
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props.Page.Total = total
	props.Tasks = mappers.TasksToViewModels(ts, c.now())

	var comp templ.Component
	switch {
	case isRows:
		comp = tasks.Rows(props)
	case htmx.IsHxRequest(r):
		comp = tasks.List(props)
	default:
		comp = tasks.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) renderForm(w http.ResponseWriter, r *http.Request, props *tasks.FormProps) {
	props.BasePath = c.basePath
	if props.Parent == nil {
		if props.Projects == nil {
			props.Projects = c.projectOptions(r)
		}
		if props.MainTasks == nil {
			props.MainTasks = c.mainTaskOptions(r, parseID(props.Task.ProjectID))
		}
	}
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(tasks.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

// loadParent returns the parent view model for sub-task forms, or nil.
func (c *TasksController) loadParent(r *http.Request, parentID int64) (*viewmodels.Task, error) {
	if parentID <= 0 {
		return nil, nil
	}
	parent, err := c.taskService.GetByID(r.Context(), parentID)
	if err != nil {
		return nil, errors.Wrap(err, "load parent task")
	}
	if parent.IsSubTask() {
		return nil, task.ErrNestedSubTask
	}
	vm := mappers.TaskToViewModel(parent, c.now())
	return &vm, nil
}

func (c *TasksController) rejectNested(w http.ResponseWriter, r *http.Request) {
	shared.Reject(w, r, http.StatusUnprocessableEntity,
		intl.T(r.Context(), "Tasks.Errors.NestedSubTask", "Sub-tasks cannot have their own sub-tasks."))
}

func (c *TasksController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.TaskCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	parent, err := c.loadParent(r, parseID(r.URL.Query().Get("parent_id")))
	if errors.Is(err, task.ErrNestedSubTask) {
		c.rejectNested(w, r)
		return
	}
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, &tasks.FormProps{
		Task: viewmodels.Task{
			ProjectID: r.URL.Query().Get("project_id"),
			Priority:  string(task.PriorityMedium),
			Status:    string(task.StatusTodo),
		},
		Parent: parent,
		IsNew:  true,
	})
}

func (c *TasksController) GetEdit(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.TaskUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	t, err := c.taskService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load task"))
		return
	}
	props := &tasks.FormProps{Task: mappers.TaskToViewModel(t, c.now())}
	if t.IsSubTask() {
		props.Parent = &viewmodels.Task{
			ID:         strconv.FormatInt(t.ParentID, 10),
			ProjectID:  props.Task.ProjectID,
			MainTaskID: props.Task.MainTaskID,
			Title:      props.Task.Title,
		}
		if parent, err := c.taskService.GetByID(r.Context(), t.ParentID); err == nil {
			props.Parent.Title = parent.Title
		}
	}
	c.renderForm(w, r, props)
}

// MainTaskOptions re-renders the main task select for the chosen project.
func (c *TasksController) MainTaskOptions(w http.ResponseWriter, r *http.Request) {
	projectID := parseID(composables.GetLastQueryParam(r, "ProjectID"))
	comp := tasks.MainTaskField("", "", c.mainTaskOptions(r, projectID))
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) detailProps(r *http.Request, d *services.TaskDetail) *tasks.DetailPageProps {
	ctx := r.Context()
	now := c.now()
	return &tasks.DetailPageProps{
		Task:         mappers.TaskToViewModel(d.Task, now),
		SubTasks:     mappers.TasksToViewModels(d.SubTasks, now),
		Activity:     mapping.MapViewModels(d.Activity, mappers.ActivityToViewModel),
		BasePath:     c.basePath,
		ProjectsPath: c.projectsPath,
		CanCreate:    composables.CanUser(ctx, permissions.TaskCreate),
		CanUpdate:    composables.CanUser(ctx, permissions.TaskUpdate),
		CanDelete:    composables.CanUser(ctx, permissions.TaskDelete),
		CanAssign:    composables.CanUser(ctx, permissions.TaskAssign),
	}
}

func (c *TasksController) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	d, err := c.taskService.Detail(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load task"))
		return
	}
	if d.Partial != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, d.Partial); !ok {
			return
		}
	}
	templ.Handler(tasks.Detail(c.detailProps(r, d)), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) SubTasks(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	t, err := c.taskService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	d := &services.TaskDetail{Task: t}
	d.SubTasks, err = c.taskService.SubTasks(r.Context(), id)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	templ.Handler(tasks.SubTasks(c.detailProps(r, d)), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) Activity(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	items, err := c.taskService.Activity(r.Context(), id)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	templ.Handler(activity.Feed(activity.FeedProps{
		Items:     mapping.MapViewModels(items, mappers.ActivityToViewModel),
		URL:       c.basePath + "/" + strconv.FormatInt(id, 10) + "/activity",
		RefreshOn: tasks.ChangeEvent + " from:body, " + tasks.StatusEvent + " from:body, " + tasks.AssigneesEvent + " from:body",
	}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.TaskDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		parent, _ := c.loadParent(r, dto.ParentID)
		c.renderForm(w, r, &tasks.FormProps{Task: taskDTOToViewModel(dto), Parent: parent, Errors: errs, IsNew: true})
		return
	}
	created, err := c.taskService.Create(ctx, dto.ToSaveData())
	if errors.Is(err, task.ErrNestedSubTask) {
		c.rejectNested(w, r)
		return
	}
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, tasks.ChangeEvent,
		intl.T(ctx, "Tasks.Messages.Created", "Task "+created.Title+" created", map[string]interface{}{"Title": created.Title}),
		c.basePath+"/"+strconv.FormatInt(created.ID, 10))
}

func (c *TasksController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.TaskDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := taskDTOToViewModel(dto)
		vm.ID = strconv.FormatInt(id, 10)
		var parent *viewmodels.Task
		if dto.ParentID > 0 {
			parent = &viewmodels.Task{ID: vm.ParentID, ProjectID: vm.ProjectID, MainTaskID: vm.MainTaskID}
		}
		c.renderForm(w, r, &tasks.FormProps{Task: vm, Parent: parent, Errors: errs})
		return
	}
	updated, changed, err := c.taskService.Update(ctx, id, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	composables.UseLogger(ctx).WithField("task_id", id).WithField("fields", changed).Info("task updated")
	if htmx.IsHxRequest(r) && isDetailURL(htmx.CurrentURL(r), c.basePath+"/"+strconv.FormatInt(id, 10)) {
		htmx.Refresh(w)
	}
	shared.Done(w, r, tasks.ChangeEvent,
		intl.T(ctx, "Tasks.Messages.Updated", "Task "+updated.Title+" saved", map[string]interface{}{"Title": updated.Title}),
		c.basePath+"/"+strconv.FormatInt(id, 10))
}

func (c *TasksController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.taskService.Delete(ctx, id); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if htmx.IsHxRequest(r) && isDetailURL(htmx.CurrentURL(r), c.basePath+"/"+strconv.FormatInt(id, 10)) {
		htmx.Redirect(w, c.basePath)
	}
	shared.Done(w, r, tasks.ChangeEvent, intl.T(ctx, "Tasks.Messages.Deleted", "Task deleted"), c.basePath)
}

func (c *TasksController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.StatusDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := dto.Ok(ctx); !ok {
		shared.Reject(w, r, http.StatusUnprocessableEntity, intl.T(ctx, "Tasks.Errors.InvalidStatus", "Unknown status."))
		return
	}
	updated, err := c.taskService.ChangeStatus(ctx, id, task.Status(dto.Status))
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	label := tasks.StatusLabel(ctx, string(updated.Status))
	shared.Done(w, r, tasks.StatusEvent,
		intl.T(ctx, "Tasks.Messages.StatusChanged", "Status set to "+label, map[string]interface{}{"Status": label}),
		c.basePath+"/"+strconv.FormatInt(id, 10))
}

// GetAssignees serves the picker dialog, or with ?fragment=list the
// assignee card of the detail page.
func (c *TasksController) GetAssignees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	t, err := c.taskService.GetByID(ctx, id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load task"))
		return
	}
	vm := mappers.TaskToViewModel(t, c.now())
	if r.URL.Query().Get("fragment") == "list" {
		comp := tasks.Assignees(c.basePath, vm, composables.CanUser(ctx, permissions.TaskAssign))
		templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if err := composables.RequirePermission(ctx, permissions.TaskAssign); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	templ.Handler(tasks.AssigneesForm(&tasks.AssigneesFormProps{
		Task:     vm,
		Users:    c.assigneeOptions(r, t.ProjectID),
		BasePath: c.basePath,
	}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TasksController) SetAssignees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.AssigneesDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := c.taskService.SetAssignees(ctx, id, dto.UserIDs); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, tasks.AssigneesEvent, intl.T(ctx, "Tasks.Messages.AssigneesSaved", "Assignees saved"),
		c.basePath+"/"+strconv.FormatInt(id, 10))
}

func taskDTOToViewModel(d *dtos.TaskDTO) viewmodels.Task {
	vm := viewmodels.Task{
		ProjectID:   idString(d.ProjectID),
		MainTaskID:  idString(d.MainTaskID),
		ParentID:    idString(d.ParentID),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      d.Status,
		DueDate:     d.DueDate.String(),
	}
	if !d.EstimateHours.IsZero() {
		vm.EstimateHours = d.EstimateHours.String()
	}
	return vm
}
