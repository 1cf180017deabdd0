package projects

import (
	"embed"

	icons "github.com/iota-uz/icons/phosphor"

	coreservices "github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/modules/projects/handlers"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/modules/projects/presentation/controllers"
	"github.com/worktrack/worktrack/modules/projects/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
)

//go:embed presentation/locales/*.json presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	ProjectsBasePath string
	TasksBasePath    string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	if opts.ProjectsBasePath == "" {
		opts.ProjectsBasePath = "/projects"
	}
	if opts.TasksBasePath == "" {
		opts.TasksBasePath = "/tasks"
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

// Register needs the core module registered first for the user pickers and
// the dashboard.
func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.RegisterLocaleFiles(&LocaleFiles)
	if err := app.RegisterPermissionSchema(permissions.Schema); err != nil {
		return err
	}

	api := app.API()
	projectRepo := persistence.NewProjectRepository(api)
	mainTaskRepo := persistence.NewMainTaskRepository(api)
	taskRepo := persistence.NewTaskRepository(api)
	fileRepo := persistence.NewFileRepository(api)
	activityRepo := persistence.NewActivityRepository(api)

	projectService := services.NewProjectService(projectRepo, mainTaskRepo, fileRepo, activityRepo, app.EventPublisher())
	taskService := services.NewTaskService(taskRepo, activityRepo, app.EventPublisher())
	app.RegisterServices(
		projectService,
		services.NewMainTaskService(mainTaskRepo, app.EventPublisher()),
		taskService,
		services.NewFileService(fileRepo),
	)
	handlers.RegisterProjectEventHandlers(app, cfg.Logger())

	dashboard := app.Service(coreservices.DashboardService{}).(*coreservices.DashboardService)
	dashboard.Register(
		coreservices.Counter{
			Key:        "my_open_tasks",
			Label:      "Dashboard.Counters.MyOpenTasks",
			Permission: permissions.TaskView,
			Href:       m.options.TasksBasePath,
			Icon:       icons.List(icons.Props{Size: "24"}),
			Fetch:      taskService.CountMyOpen,
		},
		coreservices.Counter{
			Key:        "active_projects",
			Label:      "Dashboard.Counters.ActiveProjects",
			Permission: permissions.ProjectView,
			Href:       m.options.ProjectsBasePath + "?status=active",
			Icon:       icons.PuzzlePiece(icons.Props{Size: "24"}),
			Fetch:      projectService.CountActive,
		},
	)

	app.RegisterControllers(
		controllers.NewProjectsController(app, &controllers.ProjectsControllerOptions{
			BasePath:  m.options.ProjectsBasePath,
			TasksPath: m.options.TasksBasePath,
		}),
		controllers.NewMainTasksController(app, &controllers.MainTasksControllerOptions{
			ProjectsPath: m.options.ProjectsBasePath,
			TasksPath:    m.options.TasksBasePath,
		}),
		controllers.NewTasksController(app, &controllers.TasksControllerOptions{
			BasePath:     m.options.TasksBasePath,
			ProjectsPath: m.options.ProjectsBasePath,
		}),
	)

	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(quickLinks()...)
	return nil
}

func (m *Module) Name() string {
	return "projects"
}
