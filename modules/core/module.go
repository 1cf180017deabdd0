package core

import (
	"embed"

	"github.com/worktrack/worktrack/internal/assets"
	"github.com/worktrack/worktrack/modules/core/handlers"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/modules/core/presentation/controllers"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/metrics"
)

//go:embed presentation/locales/*.json presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	UsersBasePath string
	RolesBasePath string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	if opts.UsersBasePath == "" {
		opts.UsersBasePath = "/users"
	}
	if opts.RolesBasePath == "" {
		opts.RolesBasePath = "/roles"
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

	api := app.API()
	userRepo := persistence.NewUserRepository(api)
	roleRepo := persistence.NewRoleRepository(api)
	permRepo := persistence.NewPermissionRepository(api)

	dashboardService := services.NewDashboardService()
	app.RegisterServices(
		services.NewAuthService(persistence.NewAuthRepository(api), app.Sessions(), app.EventPublisher()),
		services.NewUserService(userRepo, app.EventPublisher()),
		services.NewRoleService(roleRepo, app.EventPublisher()),
		services.NewPermissionService(permRepo),
		dashboardService,
	)
	handlers.RegisterAuditEventHandlers(app, cfg.Logger())

	controllers.UseErrorResponders()
	app.RegisterHashFsAssets(assets.HashFS)
	app.RegisterControllers(
		controllers.NewHealthController(),
		controllers.NewStaticFilesController(app.HashFsAssets(), cfg),
		controllers.NewLoginController(app),
		controllers.NewAccountController(app),
		controllers.NewDashboardController(app),
		controllers.NewSpotlightController(app),
		controllers.NewUsersController(app, &controllers.UsersControllerOptions{
			BasePath: m.options.UsersBasePath,
		}),
		controllers.NewRolesController(app, &controllers.RolesControllerOptions{
			BasePath: m.options.RolesBasePath,
		}),
	)
	if cfg.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(cfg.Prometheus.Path))
	}

	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(quickLinks()...)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
