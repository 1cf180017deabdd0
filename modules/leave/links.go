package leave

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/modules/leave/permissions"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

var LeaveLink = types.NavigationItem{
	Name:       "NavigationLinks.Leave",
	Icon:       icons.AirTrafficControl(icons.Props{Size: "20"}),
	Href:       "/leave",
	Permission: permissions.LeaveView,
}

var NavItems = []types.NavigationItem{LeaveLink}

func quickLinks() []*spotlight.QuickLink {
	return []*spotlight.QuickLink{
		spotlight.NewQuickLink(icons.AirTrafficControl(icons.Props{Size: "18"}), LeaveLink.Name, LeaveLink.Href).
			RequirePermission(permissions.LeaveView),
		spotlight.NewQuickLink(icons.PlusCircle(icons.Props{Size: "18"}), "Leave.List.New", "/leave/new").
			RequirePermission(permissions.LeaveCreate),
	}
}
