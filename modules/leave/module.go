package leave

import (
	"embed"

	icons "github.com/iota-uz/icons/phosphor"

	coreservices "github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/modules/leave/handlers"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/leave/permissions"
	"github.com/worktrack/worktrack/modules/leave/presentation/controllers"
	"github.com/worktrack/worktrack/modules/leave/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
)

//go:embed presentation/locales/*.json presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	BasePath string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	if opts.BasePath == "" {
		opts.BasePath = "/leave"
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.RegisterLocaleFiles(&LocaleFiles)
	if err := app.RegisterPermissionSchema(permissions.Schema); err != nil {
		return err
	}

	leaveService := services.NewLeaveService(persistence.NewLeaveRepository(app.API()), app.EventPublisher())
	app.RegisterServices(leaveService)
	handlers.RegisterLeaveEventHandlers(app, cfg.Logger())

	dashboard := app.Service(coreservices.DashboardService{}).(*coreservices.DashboardService)
	dashboard.Register(coreservices.Counter{
		Key:        "pending_leave",
		Label:      "Dashboard.Counters.PendingLeave",
		Permission: permissions.LeaveApprove,
		Href:       m.options.BasePath,
		Icon:       icons.AirTrafficControl(icons.Props{Size: "24"}),
		Fetch:      leaveService.CountPending,
	})

	app.RegisterControllers(
		controllers.NewLeaveController(app, &controllers.LeaveControllerOptions{BasePath: m.options.BasePath}),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(quickLinks()...)
	return nil
}

func (m *Module) Name() string {
	return "leave"
}
