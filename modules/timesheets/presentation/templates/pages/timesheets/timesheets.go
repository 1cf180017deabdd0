package timesheets

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/filters"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID     = "timesheets"
	ListID      = "timesheets-list"
	FilterID    = "timesheets-filter"
	DialogID    = "timesheet-dialog"
	TotalsID    = "timesheet-totals"
	ChangeEvent = "timesheetsChanged"
	// TaskFieldID wraps the task select that follows the project.
	TaskFieldID = "timesheet-task-field"
)

func selectOptions(opts []viewmodels.Option) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, base.SelectOption{Value: o.Value, Label: o.Label})
	}
	return out
}

type IndexPageProps struct {
	Week   viewmodels.Week
	Sheets []viewmodels.DailySheet
	// UserID is set when an approver looks at someone else's week.
	UserID     string
	Users      []viewmodels.Option
	BasePath   string
	CanCreate  bool
	CanUpdate  bool
	CanDelete  bool
	CanExport  bool
	CanViewAll bool
}

// WeekURL is the list URL of the week starting at start.
func (p *IndexPageProps) WeekURL(start string) string {
	q := url.Values{}
	q.Set("week", start)
	if p.UserID != "" {
		q.Set("user_id", p.UserID)
	}
	return p.BasePath + "?" + q.Encode()
}

func (p *IndexPageProps) exportURL() string {
	q := url.Values{}
	q.Set("from", p.Week.Start)
	q.Set("to", p.Week.End)
	if p.UserID != "" {
		q.Set("user_id", p.UserID)
	}
	return p.BasePath + "/export?" + q.Encode()
}

func weekdayLabel(ctx context.Context, d viewmodels.Day) string {
	return intl.T(ctx, "Weekdays."+d.Weekday, d.Weekday)
}

func weekNav(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		link := func(start, label, rel string) {
			b.Raw(`<a class="rounded-md border border-gray-300 bg-white px-3 py-1.5 text-sm text-gray-700 hover:bg-gray-50"`).
				Attr("href", p.WeekURL(start)).Attr("rel", rel).
				Attr("hx-get", p.WeekURL(start)).Attr("hx-target", "#"+ListID).Attr("hx-swap", "outerHTML").Attr("hx-push-url", "true").
				Raw(`>`).Text(label).Raw(`</a>`)
		}
		b.Raw(`<div class="mb-3 flex items-center justify-between gap-2">`)
		link(p.Week.Prev, intl.T(ctx, "Timesheets.List.PrevWeek", "Previous week"), "prev")
		b.Raw(`<span class="text-sm font-medium text-gray-800" data-week>`).
			Text(intl.T(ctx, "Timesheets.List.WeekRange", p.Week.Start+" - "+p.Week.End, map[string]interface{}{"Start": p.Week.Start, "End": p.Week.End})).
			Raw(`</span>`)
		link(p.Week.Next, intl.T(ctx, "Timesheets.List.NextWeek", "Next week"), "next")
		b.Raw(`</div>`)
	})
}

// Totals is the strip of per-day hour sums. Days above 24 hours are flagged.
func Totals(w viewmodels.Week) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="mb-4 grid grid-cols-8 gap-2"`).Attr("id", TotalsID).Raw(`>`)
		for _, d := range w.Days {
			class := "rounded-md border border-gray-200 bg-white p-2 text-center"
			if d.Today {
				class = "rounded-md border border-brand-600 bg-white p-2 text-center"
			}
			b.Raw(`<div`).Attr("class", class).Attr("data-day", d.Date).Flag("data-over", d.Over).Raw(`>`)
			b.Raw(`<div class="text-xs uppercase text-gray-500">`).Text(weekdayLabel(ctx, d)).Raw(`</div>`)
			if d.Over {
				b.Raw(`<div class="text-lg font-semibold text-red-600">`).Text(d.Total).Raw(`</div>`)
			} else {
				b.Raw(`<div class="text-lg font-semibold text-gray-900">`).Text(d.Total).Raw(`</div>`)
			}
			b.Raw(`</div>`)
		}
		b.Raw(`<div class="rounded-md bg-gray-50 p-2 text-center" data-week-total><div class="text-xs uppercase text-gray-500">`).
			Text(intl.T(ctx, "Timesheets.List.WeekTotal", "Week")).
			Raw(`</div><div class="text-lg font-semibold text-gray-900">`).Text(w.Total).Raw(`</div></div>`)
		b.Raw(`</div>`)
	})
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "date", Label: intl.T(ctx, "Timesheets.List.Date", "Date")},
			{Key: "project", Label: intl.T(ctx, "Timesheets.List.Project", "Project")},
			{Key: "task", Label: intl.T(ctx, "Timesheets.List.Task", "Task")},
			{Key: "hours", Label: intl.T(ctx, "Timesheets.List.Hours", "Hours"), Class: "px-4 py-2 text-right tabular-nums"},
			{Key: "note", Label: intl.T(ctx, "Timesheets.List.Note", "Note")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Timesheets.List.Empty", "Nothing logged this week."),
	}
	for _, s := range p.Sheets {
		props.Rows = append(props.Rows, table.Row{
			ID: "sheet-" + s.ID,
			Cells: []templ.Component{
				table.TextCell(s.Date),
				table.TextCell(s.ProjectName),
				table.TextCell(s.TaskTitle),
				table.TextCell(s.Hours),
				table.TextCell(s.Note),
				actions(p.BasePath, p.CanUpdate, p.CanDelete, s),
			},
		})
	}
	return props
}

func actions(basePath string, canUpdate, canDelete bool, s viewmodels.DailySheet) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		if canUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, basePath+"/"+s.ID+"/edit"))
		}
		if canDelete {
			b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
				ID:    "delete-sheet-" + s.ID,
				Title: intl.T(ctx, "Timesheets.Delete.Title", "Delete entry"),
				Text: intl.T(ctx, "Timesheets.Delete.Text", "The entry will be removed.",
					map[string]interface{}{"Date": s.Date, "Hours": s.Hours}),
				ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
				Action:       basePath + "/" + s.ID,
				Swap:         "none",
				Trigger: base.ButtonProps{
					Variant: base.ButtonGhost,
					Label:   intl.T(ctx, "Actions.Delete", "Delete"),
					Class:   "px-2 py-1 text-red-600",
					Attrs:   templ.Attributes{"data-action": "delete"},
				},
			}))
		}
		b.Raw(`</div>`)
	})
}

func filterForm(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		fp := filters.Props{ID: FilterID, URL: p.BasePath, Target: "#" + ListID}
		fp.Fields = []templ.Component{
			filters.Date(fp, "week", p.Week.Start, intl.T(ctx, "Timesheets.List.Week", "Week of")),
		}
		if p.CanViewAll {
			fp.Fields = append(fp.Fields,
				filters.Select("user_id", p.UserID, intl.T(ctx, "Timesheets.List.Me", "My timesheet"), selectOptions(p.Users)))
		}
		b.Component(ctx, filters.Form(fp))
	})
}

// List is the swappable week: navigation, totals and entries. It reloads
// itself whenever an entry changes.
func List(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", ListID).
			Attr("hx-get", p.WeekURL(p.Week.Start)).
			Attr("hx-trigger", ChangeEvent+" from:body").
			Attr("hx-swap", "outerHTML").Raw(`>`)
		b.Component(ctx, weekNav(p))
		b.Component(ctx, Totals(p.Week))
		b.Component(ctx, table.Table(TableProps(ctx, p)))
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
		title := intl.T(ctx, "Timesheets.Meta.Title", "Timesheet")
		var buttons []templ.Component
		if p.CanExport {
			buttons = append(buttons, base.Button(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "Timesheets.List.Export", "Export"),
				Href:    p.exportURL(),
				Attrs:   templ.Attributes{"data-action": "export", "hx-boost": "false"},
			}))
		}
		if p.CanCreate {
			buttons = append(buttons, dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Timesheets.List.New", "Log time"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, p.BasePath+"/new"))
		}
		content := base.Join(base.PageHeader(title, "", base.Join(buttons...)), filterForm(p), List(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type FormProps struct {
	Sheet    viewmodels.DailySheet
	Projects []viewmodels.Option
	Tasks    []viewmodels.Option
	Errors   map[string]string
	Error    string
	IsNew    bool
	BasePath string
}

// TaskField is the optional task select. It is re-rendered when the project
// select changes.
func TaskField(selected, errText string, options []viewmodels.Option) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", TaskFieldID).Raw(`>`)
		b.Component(ctx, base.Select(base.SelectProps{
			Name: "TaskID", Label: intl.T(ctx, "Timesheets.Single.TaskID", "Task"),
			Options: selectOptions(options), Selected: selected, Error: errText,
			Placeholder: intl.T(ctx, "Timesheets.Single.NoTask", "None"),
		}))
		b.Raw(`</div>`)
	})
}

func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		fields := []templ.Component{
			base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<div class="grid grid-cols-2 gap-4">`)
				b.Component(ctx, base.Input(base.InputProps{
					Name: "Date", Type: "date", Label: intl.T(ctx, "Timesheets.Single.Date", "Date"),
					Value: p.Sheet.Date, Required: true, Error: p.Errors["Date"],
				}))
				b.Component(ctx, base.Input(base.InputProps{
					Name: "Hours", Type: "number", Label: intl.T(ctx, "Timesheets.Single.Hours", "Hours"),
					Value: p.Sheet.Hours, Required: true, Error: p.Errors["Hours"],
					Attrs: templ.Attributes{"min": "0.25", "max": "24", "step": "0.25"},
				}))
				b.Raw(`</div>`)
			}),
			base.Select(base.SelectProps{
				Name: "ProjectID", Label: intl.T(ctx, "Timesheets.Single.ProjectID", "Project"),
				Options: selectOptions(p.Projects), Selected: p.Sheet.ProjectID, Required: true, Error: p.Errors["ProjectID"],
				Placeholder: intl.T(ctx, "Timesheets.Single.SelectProject", "Select a project"),
				Attrs: templ.Attributes{
					"hx-get":     p.BasePath + "/task-options",
					"hx-target":  "#" + TaskFieldID,
					"hx-swap":    "outerHTML",
					"hx-trigger": "change",
				},
			}),
			TaskField(p.Sheet.TaskID, p.Errors["TaskID"], p.Tasks),
			base.Textarea(base.TextareaProps{
				Name: "Note", Label: intl.T(ctx, "Timesheets.Single.Note", "Note"),
				Value: p.Sheet.Note, Rows: 3, Error: p.Errors["Note"],
			}),
		}

		props := dialog.FormDialogProps{
			ID:     DialogID,
			Title:  intl.T(ctx, "Timesheets.New.Title", "Log time"),
			Action: p.BasePath,
			Body:   base.Join(fields...),
			Error:  p.Error,
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "Timesheets.Edit.Title", "Edit entry")
			props.Action = p.BasePath + "/" + p.Sheet.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}
