package permissions

const (
	LeaveView    = "leave.view"
	LeaveCreate  = "leave.create"
	LeaveUpdate  = "leave.update"
	LeaveDelete  = "leave.delete"
	LeaveApprove = "leave.approve"
)

var Permissions = []string{
	LeaveView,
	LeaveCreate,
	LeaveUpdate,
	LeaveDelete,
	LeaveApprove,
}
