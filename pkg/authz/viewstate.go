package authz

import (
	"context"
)

// ViewState exposes what the current user may do to the presentation layer.
type ViewState struct {
	Subject            string          `json:"subject"`
	Capabilities       map[string]bool `json:"capabilities"`
	MissingPermissions []string        `json:"missingPermissions"`
	granted            []string
}

// NewViewState builds a ViewState for subject from the backend-granted list.
func NewViewState(subject string, granted []string) *ViewState {
	return &ViewState{
		Subject:      subject,
		Capabilities: map[string]bool{},
		granted:      granted,
	}
}

// Can checks permission against the granted list and remembers the outcome.
func (v *ViewState) Can(permission string) bool {
	if v == nil {
		return false
	}
	key := NormalizePermission(permission)
	if allowed, ok := v.Capabilities[key]; ok {
		return allowed
	}
	allowed := HasPermission(v.granted, key)
	v.Capabilities[key] = allowed
	return allowed
}

// SetCapability overrides the recorded outcome for a permission.
func (v *ViewState) SetCapability(permission string, allowed bool) {
	if v == nil {
		return
	}
	v.Capabilities[NormalizePermission(permission)] = allowed
}

// Capability reports whether permission was previously recorded as allowed.
func (v *ViewState) Capability(permission string) bool {
	allowed, ok := v.CapabilityValue(permission)
	return ok && allowed
}

func (v *ViewState) CapabilityValue(permission string) (bool, bool) {
	if v == nil {
		return false, false
	}
	allowed, ok := v.Capabilities[NormalizePermission(permission)]
	return allowed, ok
}

// AddMissingPermission records a denied permission for the forbidden view.
func (v *ViewState) AddMissingPermission(permission string) {
	if v == nil {
		return
	}
	key := NormalizePermission(permission)
	for _, p := range v.MissingPermissions {
		if p == key {
			return
		}
	}
	v.MissingPermissions = append(v.MissingPermissions, key)
}

type viewStateContextKey struct{}

func WithViewState(ctx context.Context, state *ViewState) context.Context {
	if state == nil {
		return ctx
	}
	return context.WithValue(ctx, viewStateContextKey{}, state)
}

func ViewStateFromContext(ctx context.Context) *ViewState {
	if ctx == nil {
		return nil
	}
	if state, ok := ctx.Value(viewStateContextKey{}).(*ViewState); ok {
		return state
	}
	return nil
}
