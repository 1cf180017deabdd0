package authz

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	granted := []string{"Project.View", "task.*", " leave.create "}

	cases := []struct {
		name     string
		granted  []string
		required string
		want     bool
	}{
		{"exact match ignores case", granted, "project.view", true},
		{"resource wildcard", granted, "task.delete", true},
		{"trimmed grant", granted, "leave.create", true},
		{"missing", granted, "project.delete", false},
		{"superuser", []string{"*"}, "role.update", true},
		{"empty requirement", nil, "", true},
		{"nothing granted", nil, "project.view", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasPermission(tc.granted, tc.required))
		})
	}
}

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny([]string{"leave.approve"}, "leave.view", "leave.approve"))
	assert.False(t, HasAny([]string{"leave.view"}, "leave.approve"))
	assert.True(t, HasAny(nil))
}

func TestRequire(t *testing.T) {
	require.NoError(t, Require([]string{"user.view"}, "user.view"))

	err := Require([]string{"user.view"}, "User.Delete")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "user.delete", fe.Permission)
}

func TestSplitPermission(t *testing.T) {
	res, act := SplitPermission("timesheet.view_all")
	assert.Equal(t, "timesheet", res)
	assert.Equal(t, "view_all", act)

	res, act = SplitPermission("dashboard")
	assert.Equal(t, "dashboard", res)
	assert.Empty(t, act)
}

func TestViewState(t *testing.T) {
	state := NewViewState("7", []string{"project.view"})
	assert.True(t, state.Can("project.view"))
	assert.False(t, state.Can("project.create"))

	allowed, ok := state.CapabilityValue("PROJECT.CREATE")
	assert.True(t, ok)
	assert.False(t, allowed)

	state.SetCapability("project.create", true)
	assert.True(t, state.Capability("project.create"))

	state.AddMissingPermission("role.view")
	state.AddMissingPermission("Role.View")
	assert.Equal(t, []string{"role.view"}, state.MissingPermissions)

	ctx := WithViewState(context.Background(), state)
	assert.Same(t, state, ViewStateFromContext(ctx))

	var nilState *ViewState
	assert.False(t, nilState.Can("project.view"))
}
