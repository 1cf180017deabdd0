package core

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

var DashboardLink = types.NavigationItem{
	Name: "NavigationLinks.Dashboard",
	Icon: icons.Gauge(icons.Props{Size: "20"}),
	Href: "/",
}

var UsersLink = types.NavigationItem{
	Name:       "NavigationLinks.Users",
	Icon:       icons.Users(icons.Props{Size: "20"}),
	Href:       "/users",
	Permission: permissions.UserView,
}

var RolesLink = types.NavigationItem{
	Name:       "NavigationLinks.Roles",
	Icon:       icons.UserCircle(icons.Props{Size: "20"}),
	Href:       "/roles",
	Permission: permissions.RoleView,
}

var AdministrationLink = types.NavigationItem{
	Name:     "NavigationLinks.Administration",
	Icon:     icons.AirTrafficControl(icons.Props{Size: "20"}),
	Children: []types.NavigationItem{UsersLink, RolesLink},
}

var NavItems = []types.NavigationItem{DashboardLink, AdministrationLink}

func quickLinks() []*spotlight.QuickLink {
	return []*spotlight.QuickLink{
		spotlight.NewQuickLink(icons.Gauge(icons.Props{Size: "18"}), DashboardLink.Name, DashboardLink.Href),
		spotlight.NewQuickLink(icons.Users(icons.Props{Size: "18"}), UsersLink.Name, UsersLink.Href).
			RequirePermission(permissions.UserView),
		spotlight.NewQuickLink(icons.PlusCircle(icons.Props{Size: "18"}), "Users.List.New", "/users/new").
			RequirePermission(permissions.UserCreate),
		spotlight.NewQuickLink(icons.UserCircle(icons.Props{Size: "18"}), RolesLink.Name, RolesLink.Href).
			RequirePermission(permissions.RoleView),
		spotlight.NewQuickLink(icons.UserCircle(icons.Props{Size: "18"}), "NavigationLinks.Account", "/account"),
	}
}
