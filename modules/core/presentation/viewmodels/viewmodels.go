package viewmodels

type User struct {
	ID        string
	Name      string
	Email     string
	RoleID    string
	RoleName  string
	Active    bool
	Language  string
	CreatedAt string
	// IsSelf marks the signed-in user's own row.
	IsSelf bool
}

type Role struct {
	ID              string
	Name            string
	Description     string
	UsersCount      int
	PermissionCount int
	System          bool
	CanDelete       bool
}

// PermissionOption is one checkbox of the role permission matrix.
type PermissionOption struct {
	ID          string
	Key         string
	Name        string
	Description string
	Checked     bool
}

type PermissionGroup struct {
	Name        string
	Label       string
	Permissions []PermissionOption
}
