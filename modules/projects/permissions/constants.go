package permissions

const (
	ProjectView    = "project.view"
	ProjectCreate  = "project.create"
	ProjectUpdate  = "project.update"
	ProjectDelete  = "project.delete"
	ProjectMembers = "project.members"

	TaskView   = "task.view"
	TaskCreate = "task.create"
	TaskUpdate = "task.update"
	TaskDelete = "task.delete"
	TaskAssign = "task.assign"
)

var Permissions = []string{
	ProjectView,
	ProjectCreate,
	ProjectUpdate,
	ProjectDelete,
	ProjectMembers,
	TaskView,
	TaskCreate,
	TaskUpdate,
	TaskDelete,
	TaskAssign,
}
