package modules

import (
	"slices"

	"github.com/worktrack/worktrack/modules/core"
	"github.com/worktrack/worktrack/modules/leave"
	"github.com/worktrack/worktrack/modules/projects"
	"github.com/worktrack/worktrack/modules/timesheets"
	"github.com/worktrack/worktrack/pkg/application"
)

// BuiltInModules is ordered by dependency: timesheets reads projects and
// every module registers dashboard counters with core.
func BuiltInModules() []application.Module {
	return []application.Module{
		core.NewModule(nil),
		projects.NewModule(nil),
		timesheets.NewModule(nil),
		leave.NewModule(nil),
	}
}

// Load registers the built-in modules followed by externalModules.
func Load(app application.Application, externalModules ...application.Module) error {
	return application.LoadModules(app, slices.Concat(BuiltInModules(), externalModules)...)
}
