package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/permissions"
	"github.com/worktrack/worktrack/modules/leave/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/leave/presentation/mappers"
	"github.com/worktrack/worktrack/modules/leave/presentation/templates/pages/leave"
	"github.com/worktrack/worktrack/modules/leave/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/leave/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
)

// ApprovalsLimit caps the pending queue rendered under the own requests.
const ApprovalsLimit = 100

type LeaveControllerOptions struct {
	BasePath string
}

type LeaveController struct {
	app          application.Application
	basePath     string
	leaveService *services.LeaveService
}

func NewLeaveController(app application.Application, opts *LeaveControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("LeaveController requires explicit BasePath in options")
	}
	return &LeaveController{
		app:          app,
		basePath:     opts.BasePath,
		leaveService: app.Service(services.LeaveService{}).(*services.LeaveService),
	}
}

func (c *LeaveController) Key() string {
	return c.basePath
}

func (c *LeaveController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/approvals", c.Approvals).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/edit", c.GetEdit).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/decide", c.GetDecide).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Cancel).Methods(http.MethodDelete)
	router.HandleFunc("/{id:[0-9]+}/status", c.Decide).Methods(http.MethodPatch, http.MethodPost)
}

func (c *LeaveController) props(r *http.Request) *leave.IndexPageProps {
	ctx := r.Context()
	return &leave.IndexPageProps{
		BasePath:   c.basePath,
		CanCreate:  composables.CanUser(ctx, permissions.LeaveCreate),
		CanUpdate:  composables.CanUser(ctx, permissions.LeaveUpdate),
		CanDelete:  composables.CanUser(ctx, permissions.LeaveDelete),
		CanApprove: composables.CanUser(ctx, permissions.LeaveApprove),
	}
}

func (c *LeaveController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := composables.UsePaginated(r)
	props := c.props(r)
	props.Page = pagination.State{
		Page:     params.Page,
		PageSize: params.Limit,
		BaseURL:  r.URL.RequestURI(),
		Target:   "#" + leave.ListID,
	}

	items, total, err := c.leaveService.Mine(ctx, params.Page, params.Limit)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props.Page.Total = total
	props.Requests = mapping.MapViewModels(items, mappers.RequestToViewModel)

	isRows := htmx.Target(r) == (table.Props{ID: leave.TableID}).BodyID()
	if !isRows && !htmx.IsHxRequest(r) && props.CanApprove {
		pending, _, err := c.leaveService.Pending(ctx, 1, ApprovalsLimit)
		if err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to load pending leave")
		}
		props.Pending = mapping.MapViewModels(pending, mappers.RequestToViewModel)
	}

	var comp templ.Component
	switch {
	case isRows:
		comp = leave.Rows(props)
	case htmx.IsHxRequest(r):
		comp = leave.List(props)
	default:
		comp = leave.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LeaveController) Approvals(w http.ResponseWriter, r *http.Request) {
	props := c.props(r)
	pending, _, err := c.leaveService.Pending(r.Context(), 1, ApprovalsLimit)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props.Pending = mapping.MapViewModels(pending, mappers.RequestToViewModel)
	templ.Handler(leave.Approvals(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LeaveController) renderForm(w http.ResponseWriter, r *http.Request, props *leave.FormProps) {
	props.BasePath = c.basePath
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(leave.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

// rejectClosed answers edits and decisions on requests that are no longer
// pending, and decisions that neither approve nor reject.
func (c *LeaveController) rejectClosed(w http.ResponseWriter, r *http.Request, err error) bool {
	ctx := r.Context()
	switch {
	case errors.Is(err, leaverequest.ErrNotPending):
		shared.Reject(w, r, http.StatusUnprocessableEntity,
			intl.T(ctx, "Leave.Errors.NotPending", "This request was already decided."))
	case errors.Is(err, leaverequest.ErrInvalidDecision):
		shared.Reject(w, r, http.StatusUnprocessableEntity,
			intl.T(ctx, "Leave.Errors.InvalidDecision", "Choose approve or reject."))
	case errors.Is(err, leaverequest.ErrInvalidRange):
		shared.Reject(w, r, http.StatusUnprocessableEntity,
			intl.T(ctx, "Leave.Errors.InvalidRange", "The end date must not be before the start date."))
	default:
		return false
	}
	return true
}

func (c *LeaveController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.LeaveCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, &leave.FormProps{
		Request: viewmodels.Request{Type: string(leaverequest.TypeAnnual)},
		IsNew:   true,
	})
}

func (c *LeaveController) GetEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := composables.RequirePermission(ctx, permissions.LeaveUpdate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	req, err := c.leaveService.GetByID(ctx, id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load leave request"))
		return
	}
	if !req.IsPending() {
		c.rejectClosed(w, r, leaverequest.ErrNotPending)
		return
	}
	c.renderForm(w, r, &leave.FormProps{Request: mappers.RequestToViewModel(req)})
}

func (c *LeaveController) GetDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := composables.RequirePermission(ctx, permissions.LeaveApprove); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	status := leaverequest.Status(r.URL.Query().Get("status"))
	if !status.IsDecision() {
		c.rejectClosed(w, r, leaverequest.ErrInvalidDecision)
		return
	}
	req, err := c.leaveService.GetByID(ctx, id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load leave request"))
		return
	}
	if !req.IsPending() {
		c.rejectClosed(w, r, leaverequest.ErrNotPending)
		return
	}
	templ.Handler(leave.DecideForm(&leave.DecideProps{
		Request:  mappers.RequestToViewModel(req),
		Status:   string(status),
		Errors:   map[string]string{},
		BasePath: c.basePath,
	}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LeaveController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.LeaveDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &leave.FormProps{Request: leaveDTOToViewModel(dto), Errors: errs, IsNew: true})
		return
	}
	created, err := c.leaveService.Create(ctx, dto.ToSaveData())
	if err != nil {
		if !c.rejectClosed(w, r, err) {
			shared.HandleError(w, r, err)
		}
		return
	}
	shared.Done(w, r, leave.ChangeEvent,
		intl.T(ctx, "Leave.Messages.Created", "Leave requested", map[string]interface{}{"Days": created.Days()}),
		c.basePath)
}

func (c *LeaveController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.LeaveDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := leaveDTOToViewModel(dto)
		vm.ID = idString(id)
		c.renderForm(w, r, &leave.FormProps{Request: vm, Errors: errs})
		return
	}
	_, changed, err := c.leaveService.Update(ctx, id, dto.ToSaveData())
	if err != nil {
		if !c.rejectClosed(w, r, err) {
			shared.HandleError(w, r, err)
		}
		return
	}
	composables.UseLogger(ctx).WithField("leave_id", id).WithField("fields", changed).Info("leave request updated")
	shared.Done(w, r, leave.ChangeEvent, intl.T(ctx, "Leave.Messages.Updated", "Request saved"), c.basePath)
}

func (c *LeaveController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.leaveService.Cancel(ctx, id); err != nil {
		if !c.rejectClosed(w, r, err) {
			shared.HandleError(w, r, err)
		}
		return
	}
	shared.Done(w, r, leave.ChangeEvent, intl.T(ctx, "Leave.Messages.Cancelled", "Request withdrawn"), c.basePath)
}

func (c *LeaveController) Decide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.DecisionDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		if _, bad := errs["Status"]; bad {
			c.rejectClosed(w, r, leaverequest.ErrInvalidDecision)
			return
		}
		req, err := c.leaveService.GetByID(ctx, id)
		if err != nil {
			shared.HandleError(w, r, err)
			return
		}
		templ.Handler(leave.DecideForm(&leave.DecideProps{
			Request:  mappers.RequestToViewModel(req),
			Status:   dto.Status,
			Comment:  dto.Comment,
			Errors:   errs,
			BasePath: c.basePath,
		}), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	decided, err := c.leaveService.Decide(ctx, id, dto.ToDecision())
	if err != nil {
		if !c.rejectClosed(w, r, err) {
			shared.HandleError(w, r, err)
		}
		return
	}
	label := leave.StatusLabel(ctx, string(decided.Status))
	shared.Done(w, r, leave.ChangeEvent,
		intl.T(ctx, "Leave.Messages.Decided", "Request "+label, map[string]interface{}{"Status": label}),
		c.basePath)
}

func leaveDTOToViewModel(d *dtos.LeaveDTO) viewmodels.Request {
	return viewmodels.Request{
		Type:      d.Type,
		StartDate: d.StartDate.String(),
		EndDate:   d.EndDate.String(),
		Reason:    d.Reason,
		Pending:   true,
	}
}
