package timesheets

import (
	"embed"

	icons "github.com/iota-uz/icons/phosphor"

	coreservices "github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/modules/timesheets/handlers"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/timesheets/permissions"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/controllers"
	"github.com/worktrack/worktrack/modules/timesheets/services"
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
		opts.BasePath = "/timesheets"
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

// Register needs core and projects registered first: the entry form picks
// projects and tasks through their services.
func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.RegisterLocaleFiles(&LocaleFiles)
	if err := app.RegisterPermissionSchema(permissions.Schema); err != nil {
		return err
	}

	timesheetService := services.NewTimesheetService(persistence.NewDailySheetRepository(app.API()), app.EventPublisher())
	app.RegisterServices(timesheetService)
	handlers.RegisterTimesheetEventHandlers(app, cfg.Logger())

	dashboard := app.Service(coreservices.DashboardService{}).(*coreservices.DashboardService)
	dashboard.Register(coreservices.Counter{
		Key:        "week_hours",
		Label:      "Dashboard.Counters.WeekHours",
		Permission: permissions.TimesheetView,
		Href:       m.options.BasePath,
		Icon:       icons.Gauge(icons.Props{Size: "24"}),
		Fetch:      timesheetService.CountWeekHours,
	})

	app.RegisterControllers(
		controllers.NewTimesheetsController(app, &controllers.TimesheetsControllerOptions{BasePath: m.options.BasePath}),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(quickLinks()...)
	return nil
}

func (m *Module) Name() string {
	return "timesheets"
}
