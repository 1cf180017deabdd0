package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/htmx"
)

type sheetForm struct {
	Date   DateOnly
	Hours  decimal.Decimal
	Billed bool
	Note   string
}

func TestDecoder_CustomTypes(t *testing.T) {
	var dto sheetForm
	err := Decoder.Decode(&dto, url.Values{
		"Date":   {"2026-03-02"},
		"Hours":  {"7.5"},
		"Billed": {"on"},
		"Note":   {"review"},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), dto.Date.Time())
	assert.True(t, decimal.RequireFromString("7.5").Equal(dto.Hours))
	assert.True(t, dto.Billed)
	assert.Equal(t, "2026-03-02", dto.Date.String())
}

func TestDecoder_EmptyDateIsZero(t *testing.T) {
	var dto sheetForm
	require.NoError(t, Decoder.Decode(&dto, url.Values{"Date": {""}}))
	assert.True(t, dto.Date.IsZero())
	assert.Equal(t, "", dto.Date.String())
}

type estimateForm struct {
	Unparsed `form:"-" validate:"-"`

	Title    string `validate:"required"`
	Estimate decimal.Decimal
	Due      DateOnly
}

func TestDecodeForm_KeepsFieldFailuresForValidate(t *testing.T) {
	var dto estimateForm
	err := DecodeForm(&dto, url.Values{
		"Title":    {"Plan"},
		"Estimate": {"lots"},
		"Due":      {"next week"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Plan", dto.Title)
	assert.ElementsMatch(t, []string{"Estimate", "Due"}, dto.UnparsedFields())

	errs, ok := Validate(context.Background(), "Tasks.Single", &dto)
	assert.False(t, ok)
	assert.Equal(t, "Estimate is not a valid value", errs["Estimate"])
	assert.Equal(t, "Due is not a valid value", errs["Due"])
	assert.NotContains(t, errs, "Title")
}

func TestDecodeForm_FailsWithoutUnparsed(t *testing.T) {
	var dto sheetForm
	err := DecodeForm(&dto, url.Values{"Hours": {"abc"}})
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/projects/12", nil), map[string]string{"id": "12"})
	id, err := ParseID(r)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := ParseID(r)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestRedirect(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/projects", nil)
	w := httptest.NewRecorder()
	Redirect(w, r, "/projects/1")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/projects/1", w.Header().Get("Location"))

	r.Header.Set(htmx.HeaderRequest, "true")
	w = httptest.NewRecorder()
	Redirect(w, r, "/projects/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/projects/1", w.Header().Get(htmx.HeaderRedirect))
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestValidate_FallsBackToEnglish(t *testing.T) {
	errs, ok := Validate(context.Background(), "Login", &loginForm{Email: "nope"})
	assert.False(t, ok)
	assert.Contains(t, errs, "Email")
	assert.Contains(t, errs, "Password")
	assert.Contains(t, errs["Password"], "required")

	errs, ok = Validate(context.Background(), "Login", &loginForm{Email: "a@b.co", Password: "x"})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/projects?page=2":   "/projects?page=2",
		"https://evil.test/": "/",
		"//evil.test":        "/",
		"/\\evil.test":       "/",
		"projects":           "/",
		"/logout":            "/",
		"/login?next=/x":     "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeNext(in), in)
	}
}

func TestLogoutURL(t *testing.T) {
	assert.Equal(t, "/logout", LogoutURL("/"))
	assert.Equal(t, "/logout", LogoutURL("https://evil.test"))
	assert.Equal(t, "/logout?next=%2Fleave", LogoutURL("/leave"))
}
