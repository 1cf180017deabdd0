package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/modules/projects/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/projects/presentation/mappers"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/projects"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/projects/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
)

type MainTasksControllerOptions struct {
	// ProjectsPath is the projects base path; main tasks live under
	// <ProjectsPath>/{id}/main-tasks.
	ProjectsPath string
	TasksPath    string
}

type MainTasksController struct {
	app             application.Application
	projectsPath    string
	tasksPath       string
	mainTaskService *services.MainTaskService
}

func NewMainTasksController(app application.Application, opts *MainTasksControllerOptions) application.Controller {
	if opts == nil || opts.ProjectsPath == "" {
		panic("MainTasksController requires explicit ProjectsPath in options")
	}
	return &MainTasksController{
		app:             app,
		projectsPath:    strings.TrimSuffix(opts.ProjectsPath, "/"),
		tasksPath:       mapping.Or(opts.TasksPath, "/tasks"),
		mainTaskService: app.Service(services.MainTaskService{}).(*services.MainTaskService),
	}
}

func (c *MainTasksController) Key() string {
	return c.projectsPath + "/{id}/main-tasks"
}

func (c *MainTasksController) Register(r *mux.Router) {
	router := r.PathPrefix(c.projectsPath + "/{id:[0-9]+}/main-tasks").Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{mainTaskId:[0-9]+}", c.GetEdit).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{mainTaskId:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{mainTaskId:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *MainTasksController) projectURL(id int64) string {
	return c.projectsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *MainTasksController) ids(w http.ResponseWriter, r *http.Request, withMainTask bool) (int64, int64, bool) {
	projectID, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return 0, 0, false
	}
	if !withMainTask {
		return projectID, 0, true
	}
	mainTaskID, err := shared.ParseIDVar(r, "mainTaskId")
	if err != nil {
		shared.HandleError(w, r, err)
		return 0, 0, false
	}
	return projectID, mainTaskID, true
}

// List renders the main task section of the project page.
func (c *MainTasksController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, _, ok := c.ids(w, r, false)
	if !ok {
		return
	}
	items, err := c.mainTaskService.ListByProject(ctx, projectID)
	if err != nil {
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props := &projects.MainTasksProps{
		ProjectURL: c.projectURL(projectID),
		TasksPath:  c.tasksPath,
		MainTasks:  mapping.MapViewModels(items, mappers.MainTaskToViewModel),
		CanCreate:  composables.CanUser(ctx, permissions.TaskCreate),
		CanUpdate:  composables.CanUser(ctx, permissions.TaskUpdate),
		CanDelete:  composables.CanUser(ctx, permissions.TaskDelete),
	}
	templ.Handler(projects.MainTasks(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *MainTasksController) renderForm(w http.ResponseWriter, r *http.Request, projectID int64, props *projects.MainTaskFormProps) {
	props.ProjectURL = c.projectURL(projectID)
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(projects.MainTaskForm(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *MainTasksController) GetNew(w http.ResponseWriter, r *http.Request) {
	projectID, _, ok := c.ids(w, r, false)
	if !ok {
		return
	}
	if err := composables.RequirePermission(r.Context(), permissions.TaskCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, projectID, &projects.MainTaskFormProps{IsNew: true})
}

func (c *MainTasksController) GetEdit(w http.ResponseWriter, r *http.Request) {
	projectID, mainTaskID, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	if err := composables.RequirePermission(r.Context(), permissions.TaskUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	m, err := c.mainTaskService.GetByID(r.Context(), mainTaskID)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load main task"))
		return
	}
	c.renderForm(w, r, projectID, &projects.MainTaskFormProps{MainTask: mappers.MainTaskToViewModel(m)})
}

func (c *MainTasksController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, _, ok := c.ids(w, r, false)
	if !ok {
		return
	}
	dto, err := composables.UseForm(&dtos.MainTaskDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, projectID, &projects.MainTaskFormProps{MainTask: mainTaskDTOToViewModel(dto), Errors: errs, IsNew: true})
		return
	}
	created, err := c.mainTaskService.Create(ctx, projectID, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.MainTasksEvent,
		intl.T(ctx, "MainTasks.Messages.Created", "Main task "+created.Title+" created", map[string]interface{}{"Title": created.Title}),
		c.projectURL(projectID))
}

func (c *MainTasksController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, mainTaskID, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	dto, err := composables.UseForm(&dtos.MainTaskDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := mainTaskDTOToViewModel(dto)
		vm.ID = strconv.FormatInt(mainTaskID, 10)
		c.renderForm(w, r, projectID, &projects.MainTaskFormProps{MainTask: vm, Errors: errs})
		return
	}
	updated, err := c.mainTaskService.Update(ctx, mainTaskID, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.MainTasksEvent,
		intl.T(ctx, "MainTasks.Messages.Updated", "Main task "+updated.Title+" saved", map[string]interface{}{"Title": updated.Title}),
		c.projectURL(projectID))
}

func (c *MainTasksController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, mainTaskID, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	if err := c.mainTaskService.Delete(ctx, projectID, mainTaskID); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, projects.MainTasksEvent, intl.T(ctx, "MainTasks.Messages.Deleted", "Main task deleted"), c.projectURL(projectID))
}

func mainTaskDTOToViewModel(d *dtos.MainTaskDTO) viewmodels.MainTask {
	return viewmodels.MainTask{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate.String(),
		Weight:      d.Weight,
	}
}
