package projects

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

var ProjectsLink = types.NavigationItem{
	Name:       "NavigationLinks.Projects",
	Icon:       icons.PuzzlePiece(icons.Props{Size: "20"}),
	Href:       "/projects",
	Permission: permissions.ProjectView,
}

var TasksLink = types.NavigationItem{
	Name:       "NavigationLinks.Tasks",
	Icon:       icons.List(icons.Props{Size: "20"}),
	Href:       "/tasks",
	Permission: permissions.TaskView,
}

var NavItems = []types.NavigationItem{ProjectsLink, TasksLink}

func quickLinks() []*spotlight.QuickLink {
	return []*spotlight.QuickLink{
		spotlight.NewQuickLink(icons.PuzzlePiece(icons.Props{Size: "18"}), ProjectsLink.Name, ProjectsLink.Href).
			RequirePermission(permissions.ProjectView),
		spotlight.NewQuickLink(icons.PlusCircle(icons.Props{Size: "18"}), "Projects.List.New", "/projects/new").
			RequirePermission(permissions.ProjectCreate),
		spotlight.NewQuickLink(icons.List(icons.Props{Size: "18"}), TasksLink.Name, TasksLink.Href).
			RequirePermission(permissions.TaskView),
		spotlight.NewQuickLink(icons.PlusCircle(icons.Props{Size: "18"}), "Tasks.List.New", "/tasks/new").
			RequirePermission(permissions.TaskCreate),
	}
}
