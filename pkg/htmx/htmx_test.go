package htmx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHxRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHxRequest(r))
	r.Header.Set(HeaderRequest, "true")
	assert.True(t, IsHxRequest(r))
}

func TestSetTrigger_MergesEvents(t *testing.T) {
	w := httptest.NewRecorder()
	SetTrigger(w, "projectsChanged", nil)
	SetTrigger(w, "showToast", map[string]string{"message": "a"})
	SetTrigger(w, "showToast", map[string]string{"message": "b"})

	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get(HeaderTrigger)), &events))
	assert.Contains(t, events, "projectsChanged")
	toasts, ok := events["showToast"].([]any)
	require.True(t, ok)
	assert.Len(t, toasts, 2)
}

func TestSetTrigger_KeepsPlainEventName(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set(HeaderTrigger, "legacyEvent")
	SetTrigger(w, "other", true)

	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get(HeaderTrigger)), &events))
	assert.Contains(t, events, "legacyEvent")
	assert.Equal(t, true, events["other"])
}

func TestResponseHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	Redirect(w, "/login")
	Retarget(w, "body")
	Reswap(w, "innerHTML")
	PushURL(w, "/projects?page=2")
	Refresh(w)
	assert.Equal(t, "/login", w.Header().Get(HeaderRedirect))
	assert.Equal(t, "body", w.Header().Get(HeaderRetarget))
	assert.Equal(t, "innerHTML", w.Header().Get(HeaderReswap))
	assert.Equal(t, "/projects?page=2", w.Header().Get(HeaderPushURL))
	assert.Equal(t, "true", w.Header().Get(HeaderRefresh))
}
