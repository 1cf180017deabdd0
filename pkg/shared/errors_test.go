package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/toast"
)

func hxRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set(htmx.HeaderRequest, "true")
	return r
}

func TestHandleError_UnauthorizedLogsOut(t *testing.T) {
	r := hxRequest(http.MethodDelete, "/tasks/4")
	r.Header.Set(htmx.HeaderCurrentURL, "http://example.com/tasks?page=2")
	w := httptest.NewRecorder()
	HandleError(w, r, &apiclient.Error{Status: http.StatusUnauthorized})
	assert.Equal(t, "/logout?next=%2Ftasks%3Fpage%3D2", w.Header().Get(htmx.HeaderRedirect))

	w = httptest.NewRecorder()
	HandleError(w, httptest.NewRequest(http.MethodGet, "/projects", nil), &apiclient.Error{Status: http.StatusUnauthorized})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/logout?next=%2Fprojects", w.Header().Get("Location"))

	r = httptest.NewRequest(http.MethodPost, "/projects", nil)
	r.Header.Set("Referer", "https://evil.test/phish")
	w = httptest.NewRecorder()
	HandleError(w, r, &apiclient.Error{Status: http.StatusUnauthorized})
	assert.Equal(t, LogoutPath, w.Header().Get("Location"))
}

func TestReject_RedirectsOnlyToLocalReferer(t *testing.T) {
	cases := map[string]string{
		"http://example.com/projects?page=3": "/projects?page=3",
		"https://evil.test/projects":         "/",
		"":                                   "/",
	}
	for referer, want := range cases {
		r := httptest.NewRequest(http.MethodPost, "/projects", nil)
		if referer != "" {
			r.Header.Set("Referer", referer)
		}
		w := httptest.NewRecorder()
		Reject(w, r, http.StatusUnprocessableEntity, "nope")
		assert.Equal(t, http.StatusSeeOther, w.Code, referer)
		assert.Equal(t, want, w.Header().Get("Location"), referer)
	}
}

func TestHandleError_HtmxGetsToastWithBackendMessage(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, hxRequest(http.MethodPost, "/projects"), &apiclient.Error{Status: http.StatusBadRequest, Message: "code already taken"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "none", w.Header().Get(htmx.HeaderReswap))
	trigger := w.Header().Get(htmx.HeaderTrigger)
	assert.Contains(t, trigger, toast.Event)
	assert.Contains(t, trigger, "code already taken")
}

func TestHandleError_GenericFallback(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, hxRequest(http.MethodDelete, "/projects/1"), &apiclient.Error{Status: http.StatusInternalServerError})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Header().Get(htmx.HeaderTrigger), "Something went wrong")
}

func TestHandleError_ForbiddenUsesResponder(t *testing.T) {
	var got string
	prev := ForbiddenResponder
	t.Cleanup(func() { ForbiddenResponder = prev })
	ForbiddenResponder = func(w http.ResponseWriter, r *http.Request, permission string) {
		got = permission
		w.WriteHeader(http.StatusForbidden)
	}

	w := httptest.NewRecorder()
	HandleError(w, httptest.NewRequest(http.MethodGet, "/roles", nil), authz.Require(nil, "role.view"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "role.view", got)
}

func TestHandleError_NotFoundPage(t *testing.T) {
	called := false
	prev := NotFoundResponder
	t.Cleanup(func() { NotFoundResponder = prev })
	NotFoundResponder = func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNotFound)
	}

	w := httptest.NewRecorder()
	HandleError(w, httptest.NewRequest(http.MethodGet, "/projects/9", nil), &apiclient.Error{Status: http.StatusNotFound})
	assert.True(t, called)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleError_FormPostRedirectsBackWithFlash(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(""))
	r.Header.Set("Referer", "/leave?page=2")
	w := httptest.NewRecorder()
	HandleError(w, r, &apiclient.Error{Status: http.StatusConflict, Message: "overlapping request"})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/leave?page=2", w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies())
}

func TestHandleError_JSONConsumers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/spotlight/search", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	HandleError(w, r, &apiclient.Error{Status: http.StatusServiceUnavailable, Message: "maintenance"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"maintenance"`)
}

func TestSoftFail_HtmxKeepsRendering(t *testing.T) {
	w := httptest.NewRecorder()
	_, ok := SoftFail(w, hxRequest(http.MethodGet, "/projects"), &apiclient.Error{Status: http.StatusBadGateway, Message: "backend down"})
	assert.True(t, ok)
	assert.Contains(t, w.Header().Get(htmx.HeaderTrigger), "backend down")
	assert.Empty(t, w.Header().Get(htmx.HeaderReswap))
}

func TestSoftFail_FullPageCarriesToastInContext(t *testing.T) {
	w := httptest.NewRecorder()
	r, ok := SoftFail(w, httptest.NewRequest(http.MethodGet, "/projects", nil), &apiclient.Error{Status: http.StatusInternalServerError, Message: "backend down"})
	require.True(t, ok)
	toasts, _ := r.Context().Value(constants.FlashToastsKey).([]toast.Toast)
	require.Len(t, toasts, 1)
	assert.Equal(t, "backend down", toasts[0].Message)
	assert.Empty(t, w.Result().Cookies())
}

func TestSoftFail_UnauthorizedEndsRequest(t *testing.T) {
	w := httptest.NewRecorder()
	_, ok := SoftFail(w, httptest.NewRequest(http.MethodGet, "/projects", nil), &apiclient.Error{Status: http.StatusUnauthorized})
	assert.False(t, ok)
	assert.Equal(t, "/logout?next=%2Fprojects", w.Header().Get("Location"))
}

func TestDone_Htmx(t *testing.T) {
	w := httptest.NewRecorder()
	Done(w, hxRequest(http.MethodPost, "/users"), "usersChanged", "User saved", "/users")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", w.Header().Get(htmx.HeaderReswap))
	trigger := w.Header().Get(htmx.HeaderTrigger)
	assert.Contains(t, trigger, "usersChanged")
	assert.Contains(t, trigger, htmx.EventCloseDialog)
	assert.Contains(t, trigger, "User saved")
}

func TestDone_PlainPostRedirects(t *testing.T) {
	w := httptest.NewRecorder()
	Done(w, httptest.NewRequest(http.MethodPost, "/users", nil), "usersChanged", "User saved", "/users")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}
