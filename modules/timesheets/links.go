package timesheets

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/modules/timesheets/permissions"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

var TimesheetsLink = types.NavigationItem{
	Name:       "NavigationLinks.Timesheets",
	Icon:       icons.Gauge(icons.Props{Size: "20"}),
	Href:       "/timesheets",
	Permission: permissions.TimesheetView,
}

var NavItems = []types.NavigationItem{TimesheetsLink}

func quickLinks() []*spotlight.QuickLink {
	return []*spotlight.QuickLink{
		spotlight.NewQuickLink(icons.Gauge(icons.Props{Size: "18"}), TimesheetsLink.Name, TimesheetsLink.Href).
			RequirePermission(permissions.TimesheetView),
		spotlight.NewQuickLink(icons.PlusCircle(icons.Props{Size: "18"}), "Timesheets.List.New", "/timesheets/new").
			RequirePermission(permissions.TimesheetCreate),
	}
}
