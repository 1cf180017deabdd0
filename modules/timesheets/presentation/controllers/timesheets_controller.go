package controllers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/table"
	coreservices "github.com/worktrack/worktrack/modules/core/services"
	projectservices "github.com/worktrack/worktrack/modules/projects/services"
	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/permissions"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/mappers"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/templates/pages/timesheets"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/timesheets/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/excel"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
)

type TimesheetsControllerOptions struct {
	BasePath string
}

type TimesheetsController struct {
	app              application.Application
	basePath         string
	timesheetService *services.TimesheetService
	projectService   *projectservices.ProjectService
	taskService      *projectservices.TaskService
	userService      *coreservices.UserService
}

func NewTimesheetsController(app application.Application, opts *TimesheetsControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("TimesheetsController requires explicit BasePath in options")
	}
	return &TimesheetsController{
		app:              app,
		basePath:         opts.BasePath,
		timesheetService: app.Service(services.TimesheetService{}).(*services.TimesheetService),
		projectService:   app.Service(projectservices.ProjectService{}).(*projectservices.ProjectService),
		taskService:      app.Service(projectservices.TaskService{}).(*projectservices.TaskService),
		userService:      app.Service(coreservices.UserService{}).(*coreservices.UserService),
	}
}

func (c *TimesheetsController) Key() string {
	return c.basePath
}

func (c *TimesheetsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/task-options", c.TaskOptions).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/edit", c.GetEdit).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

// week reads ?week=, any date inside the wanted week. A missing or invalid
// value means the current week.
func (c *TimesheetsController) week(r *http.Request) dailysheet.Week {
	d, err := shared.ParseDateOnly(composables.GetLastQueryParam(r, "week"))
	if err != nil || d.IsZero() {
		return dailysheet.WeekOf(c.timesheetService.Today())
	}
	return dailysheet.WeekOf(d.Time())
}

// selectedUser is the user filter. It only applies with timesheet.view_all.
func (c *TimesheetsController) selectedUser(r *http.Request) int64 {
	if !composables.CanUser(r.Context(), permissions.TimesheetViewAll) {
		return 0
	}
	return parseID(composables.GetLastQueryParam(r, "user_id"))
}

func (c *TimesheetsController) projectOptions(r *http.Request) []viewmodels.Option {
	ps, err := c.projectService.Options(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load project options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(p.ID, 10), Label: p.Name})
	}
	return out
}

func (c *TimesheetsController) taskOptions(r *http.Request, projectID int64) []viewmodels.Option {
	ts, err := c.taskService.Options(r.Context(), projectID)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load task options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(ts))
	for _, t := range ts {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(t.ID, 10), Label: t.Title})
	}
	return out
}

func (c *TimesheetsController) userOptions(r *http.Request) []viewmodels.Option {
	us, err := c.userService.Options(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load user options")
		return nil
	}
	out := make([]viewmodels.Option, 0, len(us))
	for _, u := range us {
		out = append(out, viewmodels.Option{Value: strconv.FormatInt(u.ID, 10), Label: u.Name})
	}
	return out
}

func (c *TimesheetsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	week := c.week(r)
	props := &timesheets.IndexPageProps{
		BasePath:   c.basePath,
		CanCreate:  composables.CanUser(ctx, permissions.TimesheetCreate),
		CanUpdate:  composables.CanUser(ctx, permissions.TimesheetUpdate),
		CanDelete:  composables.CanUser(ctx, permissions.TimesheetDelete),
		CanExport:  composables.CanUser(ctx, permissions.TimesheetExport),
		CanViewAll: composables.CanUser(ctx, permissions.TimesheetViewAll),
	}
	isRows := htmx.Target(r) == (table.Props{ID: timesheets.TableID}).BodyID()
	if props.CanViewAll && !isRows && !htmx.IsHxRequest(r) {
		props.Users = c.userOptions(r)
	}

	view, err := c.timesheetService.Week(ctx, c.selectedUser(r), week)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
		view = &services.WeekView{Week: week, Totals: week.Totals(nil)}
	}
	if me, err := composables.UseUser(ctx); err == nil && view.UserID != 0 && view.UserID != me.ID {
		props.UserID = strconv.FormatInt(view.UserID, 10)
	}
	props.Week = mappers.WeekToViewModel(view.Week, view.Totals, c.timesheetService.Today())
	props.Sheets = mapping.MapViewModels(view.Sheets, mappers.DailySheetToViewModel)

	var comp templ.Component
	switch {
	case isRows:
		comp = timesheets.Rows(props)
	case htmx.IsHxRequest(r):
		comp = timesheets.List(props)
	default:
		comp = timesheets.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetsController) renderForm(w http.ResponseWriter, r *http.Request, props *timesheets.FormProps) {
	props.BasePath = c.basePath
	if props.Projects == nil {
		props.Projects = c.projectOptions(r)
	}
	if props.Tasks == nil {
		props.Tasks = c.taskOptions(r, parseID(props.Sheet.ProjectID))
	}
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(timesheets.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetsController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.TimesheetCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	day := c.timesheetService.Today()
	if d, err := shared.ParseDateOnly(r.URL.Query().Get("date")); err == nil && !d.IsZero() {
		day = d.Time()
	}
	c.renderForm(w, r, &timesheets.FormProps{
		Sheet: viewmodels.DailySheet{
			Date:      shared.DateOnly(day).String(),
			ProjectID: r.URL.Query().Get("project_id"),
		},
		IsNew: true,
	})
}

func (c *TimesheetsController) GetEdit(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.TimesheetUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	s, err := c.timesheetService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load daily sheet"))
		return
	}
	c.renderForm(w, r, &timesheets.FormProps{Sheet: mappers.DailySheetToViewModel(s)})
}

// TaskOptions re-renders the task select for the chosen project.
func (c *TimesheetsController) TaskOptions(w http.ResponseWriter, r *http.Request) {
	projectID := parseID(composables.GetLastQueryParam(r, "ProjectID"))
	comp := timesheets.TaskField("", "", c.taskOptions(r, projectID))
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetsController) weekURL(date string) string {
	return c.basePath + "?week=" + date
}

func (c *TimesheetsController) rejectHours(w http.ResponseWriter, r *http.Request) {
	shared.Reject(w, r, http.StatusUnprocessableEntity,
		intl.T(r.Context(), "Timesheets.Errors.InvalidHours", "Hours must be greater than 0 and at most 24."))
}

func (c *TimesheetsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.DailySheetDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &timesheets.FormProps{Sheet: sheetDTOToViewModel(dto), Errors: errs, IsNew: true})
		return
	}
	created, err := c.timesheetService.Create(ctx, dto.ToSaveData())
	if errors.Is(err, dailysheet.ErrInvalidHours) {
		c.rejectHours(w, r)
		return
	}
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	hours := created.Hours.String()
	shared.Done(w, r, timesheets.ChangeEvent,
		intl.T(ctx, "Timesheets.Messages.Created", hours+"h logged", map[string]interface{}{"Hours": hours}),
		c.weekURL(dto.Date.String()))
}

func (c *TimesheetsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.DailySheetDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := sheetDTOToViewModel(dto)
		vm.ID = strconv.FormatInt(id, 10)
		c.renderForm(w, r, &timesheets.FormProps{Sheet: vm, Errors: errs})
		return
	}
	_, changed, err := c.timesheetService.Update(ctx, id, dto.ToSaveData())
	if errors.Is(err, dailysheet.ErrInvalidHours) {
		c.rejectHours(w, r)
		return
	}
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	composables.UseLogger(ctx).WithField("daily_sheet_id", id).WithField("fields", changed).Info("daily sheet updated")
	shared.Done(w, r, timesheets.ChangeEvent, intl.T(ctx, "Timesheets.Messages.Updated", "Entry saved"),
		c.weekURL(dto.Date.String()))
}

func (c *TimesheetsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.timesheetService.Delete(ctx, id); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, timesheets.ChangeEvent, intl.T(ctx, "Timesheets.Messages.Deleted", "Entry deleted"), c.basePath)
}

func (c *TimesheetsController) exportLabels(r *http.Request) services.ExportLabels {
	ctx := r.Context()
	d := services.DefaultExportLabels
	headers := make([]string, 0, len(d.Headers))
	for _, h := range d.Headers {
		headers = append(headers, intl.T(ctx, "Timesheets.Export.Headers."+h, h))
	}
	return services.ExportLabels{
		Sheet:   intl.T(ctx, "Timesheets.Export.Sheet", d.Sheet),
		Headers: headers,
		Total:   intl.T(ctx, "Timesheets.Export.Total", d.Total),
	}
}

// Export downloads the entries between ?from and ?to as xlsx. Without a
// range it exports the current week.
func (c *TimesheetsController) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseQuery(&dtos.ExportDTO{}, r)
	if err != nil {
		shared.Reject(w, r, http.StatusBadRequest, intl.T(ctx, "Timesheets.Errors.InvalidRange", "Pick a valid date range of at most a year."))
		return
	}
	from, to := dto.From.Time(), dto.To.Time()
	if dto.From.IsZero() && dto.To.IsZero() {
		week := dailysheet.WeekOf(c.timesheetService.Today())
		from, to = week.Start, week.End()
	}
	userID := dto.UserID
	if !composables.CanUser(ctx, permissions.TimesheetViewAll) {
		userID = 0
	}
	data, err := c.timesheetService.Export(ctx, services.ExportParams{
		UserID: userID,
		From:   from,
		To:     to,
		Labels: c.exportLabels(r),
	})
	if errors.Is(err, dailysheet.ErrInvalidRange) {
		shared.Reject(w, r, http.StatusUnprocessableEntity, intl.T(ctx, "Timesheets.Errors.InvalidRange", "Pick a valid date range of at most a year."))
		return
	}
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	name := "timesheet-" + shared.DateOnly(from).String() + "-" + shared.DateOnly(to).String() + ".xlsx"
	w.Header().Set("Content-Type", excel.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("timesheet export interrupted")
	}
}

func sheetDTOToViewModel(d *dtos.DailySheetDTO) viewmodels.DailySheet {
	vm := viewmodels.DailySheet{
		Date:      d.Date.String(),
		ProjectID: idString(d.ProjectID),
		TaskID:    idString(d.TaskID),
		Note:      d.Note,
	}
	if !d.Hours.IsZero() {
		vm.Hours = d.Hours.String()
	}
	return vm
}
