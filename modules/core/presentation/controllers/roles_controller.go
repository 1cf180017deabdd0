package controllers

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/modules/core/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/core/presentation/mappers"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/roles"
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

type RolesControllerOptions struct {
	BasePath string
}

type RolesController struct {
	app               application.Application
	basePath          string
	roleService       *services.RoleService
	permissionService *services.PermissionService
}

func NewRolesController(app application.Application, opts *RolesControllerOptions) application.Controller {
	if opts == nil || opts.BasePath == "" {
		panic("RolesController requires explicit BasePath in options")
	}
	return &RolesController{
		app:               app,
		basePath:          opts.BasePath,
		roleService:       app.Service(services.RoleService{}).(*services.RoleService),
		permissionService: app.Service(services.PermissionService{}).(*services.PermissionService),
	}
}

func (c *RolesController) Key() string {
	return c.basePath
}

func (c *RolesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetEdit).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/permissions", c.GetPermissions).Methods(http.MethodGet)

	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id:[0-9]+}/permissions", c.SetPermissions).Methods(http.MethodPut, http.MethodPost)
}

func (c *RolesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	props := &roles.IndexPageProps{
		BasePath:  c.basePath,
		CanCreate: composables.CanUser(ctx, permissions.RoleCreate),
		CanUpdate: composables.CanUser(ctx, permissions.RoleUpdate),
		CanDelete: composables.CanUser(ctx, permissions.RoleDelete),
	}
	rs, err := c.roleService.GetAll(ctx)
	if err != nil {
		var ok bool
		if r, ok = shared.SoftFail(w, r, err); !ok {
			return
		}
	}
	props.Roles = mapping.MapViewModels(rs, mappers.RoleToViewModel)

	var comp templ.Component
	switch {
	case htmx.Target(r) == (table.Props{ID: roles.TableID}).BodyID():
		comp = roles.Rows(props)
	case htmx.IsHxRequest(r):
		comp = roles.List(props)
	default:
		comp = roles.Index(props)
	}
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *RolesController) renderForm(w http.ResponseWriter, r *http.Request, props *roles.FormProps) {
	props.BasePath = c.basePath
	if props.Errors == nil {
		props.Errors = map[string]string{}
	}
	templ.Handler(roles.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *RolesController) GetNew(w http.ResponseWriter, r *http.Request) {
	if err := composables.RequirePermission(r.Context(), permissions.RoleCreate); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	c.renderForm(w, r, &roles.FormProps{IsNew: true})
}

func (c *RolesController) GetEdit(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	rl, err := c.roleService.GetByID(r.Context(), id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load role"))
		return
	}
	c.renderForm(w, r, &roles.FormProps{Role: mappers.RoleToViewModel(rl)})
}

func (c *RolesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.RoleDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &roles.FormProps{
			Role:   viewmodels.Role{Name: dto.Name, Description: dto.Description},
			Errors: errs,
			IsNew:  true,
		})
		return
	}
	created, err := c.roleService.Create(ctx, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, roles.ChangeEvent,
		intl.T(ctx, "Roles.Messages.Created", "Role "+created.Name+" created", map[string]interface{}{"Name": created.Name}),
		c.basePath)
}

func (c *RolesController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.RoleDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		c.renderForm(w, r, &roles.FormProps{
			Role:   viewmodels.Role{ID: strconv.FormatInt(id, 10), Name: dto.Name, Description: dto.Description},
			Errors: errs,
		})
		return
	}
	updated, err := c.roleService.Update(ctx, id, dto.ToSaveData())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, roles.ChangeEvent,
		intl.T(ctx, "Roles.Messages.Updated", "Role "+updated.Name+" saved", map[string]interface{}{"Name": updated.Name}),
		c.basePath)
}

func (c *RolesController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	if err := c.roleService.Delete(ctx, id); err != nil {
		if errors.Is(err, role.ErrNotDeletable) {
			shared.Reject(w, r, http.StatusConflict,
				intl.T(ctx, "Roles.Errors.NotDeletable", "System roles and roles that still have users cannot be deleted."))
			return
		}
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, roles.ChangeEvent, intl.T(ctx, "Roles.Messages.Deleted", "Role deleted"), c.basePath)
}

func (c *RolesController) GetPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	rl, err := c.roleService.GetByID(ctx, id)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load role"))
		return
	}
	groups, err := c.permissionService.Grouped(ctx, c.app.PermissionSchema())
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "load permissions"))
		return
	}
	props := &roles.PermissionsPageProps{
		Role:      mappers.RoleToViewModel(rl),
		Groups:    mappers.PermissionGroupsToViewModels(groups, rl),
		BasePath:  c.basePath,
		CanUpdate: composables.CanUser(ctx, permissions.RoleUpdate),
	}
	templ.Handler(roles.Permissions(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *RolesController) SetPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.RolePermissionsDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := c.roleService.SetPermissions(ctx, id, dto.PermissionIDs); err != nil {
		shared.HandleError(w, r, err)
		return
	}
	shared.Done(w, r, roles.ChangeEvent,
		intl.T(ctx, "Roles.Messages.PermissionsSaved", "Permissions saved"),
		c.basePath+"/"+strconv.FormatInt(id, 10)+"/permissions")
}
