package permissions

const (
	UserView   = "user.view"
	UserCreate = "user.create"
	UserUpdate = "user.update"
	UserDelete = "user.delete"

	RoleView   = "role.view"
	RoleCreate = "role.create"
	RoleUpdate = "role.update"
	RoleDelete = "role.delete"
)

var Permissions = []string{
	UserView,
	UserCreate,
	UserUpdate,
	UserDelete,
	RoleView,
	RoleCreate,
	RoleUpdate,
	RoleDelete,
}
