package permissions

const (
	TimesheetView    = "timesheet.view"
	TimesheetCreate  = "timesheet.create"
	TimesheetUpdate  = "timesheet.update"
	TimesheetDelete  = "timesheet.delete"
	TimesheetViewAll = "timesheet.view_all"
	TimesheetExport  = "timesheet.export"
)

var Permissions = []string{
	TimesheetView,
	TimesheetCreate,
	TimesheetUpdate,
	TimesheetDelete,
	TimesheetViewAll,
	TimesheetExport,
}
