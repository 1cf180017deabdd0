package leave

import (
	"context"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID          = "leave-requests"
	ListID           = "leave-list"
	ApprovalsTableID = "leave-approvals"
	ApprovalsID      = "leave-approvals-list"
	DialogID         = "leave-dialog"
	DecideDialogID   = "leave-decide-dialog"
	ChangeEvent      = "leaveChanged"
)

var statusBadges = map[string]base.BadgeVariant{
	string(leaverequest.StatusPending):  base.BadgeYellow,
	string(leaverequest.StatusApproved): base.BadgeGreen,
	string(leaverequest.StatusRejected): base.BadgeRed,
}

func StatusLabel(ctx context.Context, status string) string {
	return intl.T(ctx, "Leave.Statuses."+status, status)
}

func TypeLabel(ctx context.Context, typ string) string {
	switch leaverequest.Type(typ) {
	case leaverequest.TypeAnnual:
		return intl.T(ctx, "Leave.Types.Annual", "Annual")
	case leaverequest.TypeSick:
		return intl.T(ctx, "Leave.Types.Sick", "Sick")
	case leaverequest.TypeUnpaid:
		return intl.T(ctx, "Leave.Types.Unpaid", "Unpaid")
	case leaverequest.TypeOther:
		return intl.T(ctx, "Leave.Types.OtherLeave", "Other")
	}
	return typ
}

func StatusBadge(status string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		variant, ok := statusBadges[status]
		if !ok {
			variant = base.BadgeGray
		}
		b.Component(ctx, base.Badge(StatusLabel(ctx, status), variant))
	})
}

func typeOptions(ctx context.Context) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(leaverequest.Types))
	for _, t := range leaverequest.Types {
		out = append(out, base.SelectOption{Value: string(t), Label: TypeLabel(ctx, string(t))})
	}
	return out
}

func dates(r viewmodels.Request) string {
	if r.StartDate == r.EndDate {
		return r.StartDate
	}
	return r.StartDate + " - " + r.EndDate
}

type IndexPageProps struct {
	Requests   []viewmodels.Request
	Pending    []viewmodels.Request
	BasePath   string
	Page       pagination.State
	CanCreate  bool
	CanUpdate  bool
	CanDelete  bool
	CanApprove bool
}

func decision(r viewmodels.Request) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if r.Pending || r.DecidedBy == "" {
			return
		}
		b.Raw(`<span class="text-gray-600">`).Text(r.DecidedBy)
		if r.DecisionComment != "" {
			b.Raw(`: `).Text(r.DecisionComment)
		}
		b.Raw(`</span>`)
	})
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "type", Label: intl.T(ctx, "Leave.List.Type", "Type")},
			{Key: "dates", Label: intl.T(ctx, "Leave.List.Dates", "Dates")},
			{Key: "days", Label: intl.T(ctx, "Leave.List.Days", "Days"), Class: "px-4 py-2 text-right tabular-nums"},
			{Key: "status", Label: intl.T(ctx, "Leave.List.Status", "Status")},
			{Key: "decision", Label: intl.T(ctx, "Leave.List.Decision", "Decision")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Leave.List.Empty", "No leave requested yet."),
		RowsURL:   p.BasePath,
		RefreshOn: ChangeEvent + " from:body",
	}
	for _, r := range p.Requests {
		props.Rows = append(props.Rows, table.Row{
			ID: "leave-" + r.ID,
			Cells: []templ.Component{
				table.TextCell(TypeLabel(ctx, r.Type)),
				table.TextCell(dates(r)),
				table.TextCell(r.Days),
				StatusBadge(r.Status),
				decision(r),
				actions(p, r),
			},
			Attrs: templ.Attributes{"data-status": r.Status},
		})
	}
	return props
}

// actions offers edit and cancel only while the request is pending.
func actions(p *IndexPageProps, r viewmodels.Request) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if !r.Pending {
			return
		}
		b.Raw(`<div class="flex justify-end gap-1">`)
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.BasePath+"/"+r.ID+"/edit"))
		}
		if p.CanDelete {
			b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
				ID:           "cancel-leave-" + r.ID,
				Title:        intl.T(ctx, "Leave.Cancel.Title", "Cancel request"),
				Text:         intl.T(ctx, "Leave.Cancel.Text", "The request will be withdrawn.", map[string]interface{}{"Dates": dates(r)}),
				ConfirmLabel: intl.T(ctx, "Leave.Cancel.Confirm", "Withdraw"),
				Action:       p.BasePath + "/" + r.ID,
				Swap:         "none",
				Trigger: base.ButtonProps{
					Variant: base.ButtonGhost,
					Label:   intl.T(ctx, "Leave.Cancel.Action", "Cancel"),
					Class:   "px-2 py-1 text-red-600",
					Attrs:   templ.Attributes{"data-action": "delete"},
				},
			}))
		}
		b.Raw(`</div>`)
	})
}

func ApprovalsTableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: ApprovalsTableID,
		Columns: []table.Column{
			{Key: "user", Label: intl.T(ctx, "Leave.List.User", "Employee")},
			{Key: "type", Label: intl.T(ctx, "Leave.List.Type", "Type")},
			{Key: "dates", Label: intl.T(ctx, "Leave.List.Dates", "Dates")},
			{Key: "days", Label: intl.T(ctx, "Leave.List.Days", "Days"), Class: "px-4 py-2 text-right tabular-nums"},
			{Key: "reason", Label: intl.T(ctx, "Leave.List.Reason", "Reason")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Leave.Approvals.Empty", "Nothing waiting for a decision."),
	}
	for _, r := range p.Pending {
		props.Rows = append(props.Rows, table.Row{
			ID: "approval-" + r.ID,
			Cells: []templ.Component{
				table.TextCell(r.UserName),
				table.TextCell(TypeLabel(ctx, r.Type)),
				table.TextCell(dates(r)),
				table.TextCell(r.Days),
				table.TextCell(r.Reason),
				decideButtons(p.BasePath, r),
			},
		})
	}
	return props
}

func decideButtons(basePath string, r viewmodels.Request) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if !r.Pending {
			return
		}
		b.Raw(`<div class="flex justify-end gap-1">`)
		b.Component(ctx, dialog.OpenButton(base.ButtonProps{
			Variant: base.ButtonGhost,
			Label:   intl.T(ctx, "Leave.Approvals.Approve", "Approve"),
			Class:   "px-2 py-1 text-green-700",
			Attrs:   templ.Attributes{"data-action": "approve"},
		}, basePath+"/"+r.ID+"/decide?status="+string(leaverequest.StatusApproved)))
		b.Component(ctx, dialog.OpenButton(base.ButtonProps{
			Variant: base.ButtonGhost,
			Label:   intl.T(ctx, "Leave.Approvals.Reject", "Reject"),
			Class:   "px-2 py-1 text-red-600",
			Attrs:   templ.Attributes{"data-action": "reject"},
		}, basePath+"/"+r.ID+"/decide?status="+string(leaverequest.StatusRejected)))
		b.Raw(`</div>`)
	})
}

// Approvals is the pending queue an approver decides on. It reloads itself
// after every leave change.
func Approvals(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", ApprovalsID).
			Attr("hx-get", p.BasePath+"/approvals").
			Attr("hx-trigger", ChangeEvent+" from:body").
			Attr("hx-swap", "outerHTML").Raw(`>`)
		b.Component(ctx, table.Table(ApprovalsTableProps(ctx, p)))
		b.Raw(`</div>`)
	})
}

func List(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", ListID).Raw(`>`)
		b.Component(ctx, table.Table(TableProps(ctx, p)))
		b.Component(ctx, pagination.Pagination(p.Page))
		b.Raw(`</div>`)
	})
}

func Rows(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, table.Rows(TableProps(ctx, p)))
	})
}

func Index(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Leave.Meta.Title", "Leave")
		var create templ.Component
		if p.CanCreate {
			create = dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Leave.List.New", "Request leave"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, p.BasePath+"/new")
		}
		sections := []templ.Component{
			base.PageHeader(title, "", create),
			base.Card(intl.T(ctx, "Leave.List.Mine", "My requests"), List(p)),
		}
		if p.CanApprove {
			sections = append(sections, base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<div class="mt-6">`)
				b.Component(ctx, base.Card(intl.T(ctx, "Leave.Approvals.Title", "Pending approvals"), Approvals(p)))
				b.Raw(`</div>`)
			}))
		}
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, base.Join(sections...)))
	})
}

type FormProps struct {
	Request  viewmodels.Request
	Errors   map[string]string
	Error    string
	IsNew    bool
	BasePath string
}

func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		fields := []templ.Component{
			base.Select(base.SelectProps{
				Name: "Type", Label: intl.T(ctx, "Leave.Single.Type", "Type"),
				Options: typeOptions(ctx), Selected: p.Request.Type, Required: true, Error: p.Errors["Type"],
			}),
			base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<div class="grid grid-cols-2 gap-4">`)
				b.Component(ctx, base.Input(base.InputProps{
					Name: "StartDate", Type: "date", Label: intl.T(ctx, "Leave.Single.StartDate", "From"),
					Value: p.Request.StartDate, Required: true, Error: p.Errors["StartDate"],
				}))
				b.Component(ctx, base.Input(base.InputProps{
					Name: "EndDate", Type: "date", Label: intl.T(ctx, "Leave.Single.EndDate", "To"),
					Value: p.Request.EndDate, Required: true, Error: p.Errors["EndDate"],
				}))
				b.Raw(`</div>`)
			}),
			base.Textarea(base.TextareaProps{
				Name: "Reason", Label: intl.T(ctx, "Leave.Single.Reason", "Reason"),
				Value: p.Request.Reason, Rows: 3, Error: p.Errors["Reason"],
			}),
		}
		props := dialog.FormDialogProps{
			ID:          DialogID,
			Title:       intl.T(ctx, "Leave.New.Title", "Request leave"),
			Action:      p.BasePath,
			SubmitLabel: intl.T(ctx, "Leave.New.Submit", "Submit"),
			Body:        base.Join(fields...),
			Error:       p.Error,
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "Leave.Edit.Title", "Edit request")
			props.SubmitLabel = ""
			props.Action = p.BasePath + "/" + p.Request.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}

type DecideProps struct {
	Request  viewmodels.Request
	Status   string
	Comment  string
	Errors   map[string]string
	BasePath string
}

// DecideForm asks for an optional comment before approving or rejecting.
func DecideForm(p *DecideProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Leave.Decide.ApproveTitle", "Approve leave")
		submit := intl.T(ctx, "Leave.Approvals.Approve", "Approve")
		if p.Status == string(leaverequest.StatusRejected) {
			title = intl.T(ctx, "Leave.Decide.RejectTitle", "Reject leave")
			submit = intl.T(ctx, "Leave.Approvals.Reject", "Reject")
		}
		body := base.Join(
			base.Hidden("Status", p.Status),
			base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<p class="text-sm text-gray-600" data-request>`).
					Text(p.Request.UserName).Raw(` · `).Text(TypeLabel(ctx, p.Request.Type)).Raw(` · `).Text(dates(p.Request)).
					Raw(`</p>`)
			}),
			base.Textarea(base.TextareaProps{
				Name: "Comment", Label: intl.T(ctx, "Leave.Decide.Comment", "Comment"),
				Value: p.Comment, Rows: 3, Error: p.Errors["Comment"],
			}),
		)
		b.Component(ctx, dialog.FormDialog(dialog.FormDialogProps{
			ID:          DecideDialogID,
			Title:       title,
			Action:      p.BasePath + "/" + p.Request.ID + "/status",
			Method:      "PATCH",
			SubmitLabel: submit,
			Body:        body,
			Error:       p.Errors["Status"],
		}))
	})
}
