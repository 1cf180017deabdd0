package controllers

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/modules/core/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/core/presentation/mappers"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/users"
	"github.com/worktrack/worktrack/modules/core/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
)

type UsersControllerOptions struct {
	BasePath string
}

type UsersController struct {
	app         application.Application
	basePath    string
	userService *services.UserService
	roleService *services.RoleService
}

func NewUsersController(app application.Application, opts *UsersControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("UsersController requires explicit BasePath in options")
	}
	return &UsersController{
		app:         app,
		basePath:    opts.BasePath,
		userService: app.Service(services.UserService{}).(*services.UserService),
		roleService: app.Service(services.RoleService{}).(*services.RoleService),
	}
}

func (c *UsersController) Key() string {
	return c.basePath
}

func (c *UsersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.Users).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetEdit).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *UsersController) roleOptions(r *http.Request) []viewmodels.Role {
	roles, err := c.roleService.Options(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load role options")
		return nil
	}
	return mapping.MapViewModels(roles, mappers.RoleToViewModel)
}

func (c *UsersController) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := composables.UsePaginated(r)
	search := composables.GetLastQueryParam(r, "search")
	roleParam := composables.GetLastQueryParam(r, "role_id")
	roleID, _ := strconv.ParseInt(roleParam, 10, 64)

	props := &users.IndexPageProps{
		Roles:     c.roleOptions(r),
		Search:    search,
		RoleID:    roleParam,
		BasePath:  c.basePath,
		CanCreate: composables.CanUser(ctx, permissions.UserCreate),
		CanUpdate: composables.CanUser(ctx, permissions.UserUpdate),
		CanDelete: composables.CanUser(ctx, permissions.UserDelete),
		Page: pagination.State{
			Page:     params.Page,
			PageSize: params.Limit,
			BaseURL:  r.URL.RequestURI(),
			Target:   "#" + users.ListID,
		},
	}

	us, total, err := c.userService.GetPaginated(ctx, &user.FindParams{
		Page:   params.Page,
		Limit:  params.Limit,
		Search: search,
		RoleID: roleID,
	})
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
		ctx = r.Context()
	}
	props.Page.Total = total

	me, _ := composables.UseUser(ctx)
	for _, u := range us {
		vm := mappers.UserToViewModel(u)
		vm.IsSelf = u.ID == me.ID
		props.Users = append(props.Users, vm)
	}

	var comp templ.Component
	switch {
	case htmx.Target(r) == (table.Props{ID: users.TableID}).BodyID():
		comp = users.Rows(props)
	case htmx.IsHxRequest(r):
		comp = users.List(props)
	default:
		comp = users.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *UsersController) renderForm(w http.ResponseWriter, r *http.Request, props *users.FormProps) {
	props.BasePath = c.basePath
	if props.Roles == nil {
		props.Roles = c.roleOptions(r)
	}
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(users.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *UsersController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.UserCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, &users.FormProps{
		User:  viewmodels.User{Active: true, Language: string(user.UILanguage("").OrDefault())},
		IsNew: true,
	})
}

func (c *UsersController) GetEdit(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	u, err := c.userService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load user"))
		return
	}
	c.renderForm(w, r, &users.FormProps{User: mappers.UserToViewModel(u)})
}

func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.CreateUserDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &users.FormProps{User: createDTOToViewModel(dto), Errors: errs, IsNew: true})
		return
	}
	created, err := c.userService.Create(ctx, dto.ToCreateData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, users.ChangeEvent,
		intl.T(ctx, "Users.Messages.Created", "User "+created.Name+" created", map[string]interface{}{"Name": created.Name}),
		c.basePath)
}

func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.UpdateUserDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		vm := updateDTOToViewModel(dto)
		vm.ID = strconv.FormatInt(id, 10)
		c.renderForm(w, r, &users.FormProps{User: vm, Errors: errs})
		return
	}
	updated, changed, err := c.userService.Update(ctx, id, dto.ToUpdateData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	composables.UseLogger(ctx).WithField("user_id", id).WithField("fields", changed).Info("user updated")
	shared.Done(w, r, users.ChangeEvent,
		intl.T(ctx, "Users.Messages.Updated", "User "+updated.Name+" saved", map[string]interface{}{"Name": updated.Name}),
		c.basePath)
}

func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.userService.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrCannotDeleteSelf) {
			shared.Reject(w, r, http.StatusUnprocessableEntity,
				intl.T(ctx, "Users.Errors.CannotDeleteSelf", "You cannot delete your own account."))
			return
		}
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, users.ChangeEvent, intl.T(ctx, "Users.Messages.Deleted", "User deleted"), c.basePath)
}

func createDTOToViewModel(d *dtos.CreateUserDTO) viewmodels.User {
	return viewmodels.User{
		Name:     d.Name,
		Email:    d.Email,
		RoleID:   idString(d.RoleID),
		Active:   d.Active,
		Language: d.Language,
	}
}

func updateDTOToViewModel(d *dtos.UpdateUserDTO) viewmodels.User {
	return viewmodels.User{
		Name:     d.Name,
		Email:    d.Email,
		RoleID:   idString(d.RoleID),
		Active:   d.Active,
		Language: d.Language,
	}
}

func idString(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
