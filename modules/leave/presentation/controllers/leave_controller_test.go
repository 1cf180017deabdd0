package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core"
	"github.com/worktrack/worktrack/modules/leave"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/leave/permissions"
	pages "github.com/worktrack/worktrack/modules/leave/presentation/templates/pages/leave"
	"github.com/worktrack/worktrack/pkg/itf"
	"github.com/worktrack/worktrack/pkg/session"
)

var (
	mia = session.User{ID: 1, Name: "Mia Manager", Email: "mia@example.com", RoleID: 1}

	pending = models.LeaveRequest{
		ID: 5, UserID: 1, User: &models.Ref{ID: 1, Name: "Mia Manager"},
		Type: "annual", StartDate: "2026-11-02", EndDate: "2026-11-04", Status: "pending",
	}
	approved = models.LeaveRequest{
		ID: 6, UserID: 1, User: &models.Ref{ID: 1, Name: "Mia Manager"},
		Type: "sick", StartDate: "2026-10-05", EndDate: "2026-10-05", Status: "approved",
		DecidedBy: &models.Ref{ID: 2, Name: "Ola Owner"}, DecisionComment: "get well",
	}
	colleague = models.LeaveRequest{
		ID: 9, UserID: 3, User: &models.Ref{ID: 3, Name: "Cy Newcomer"},
		Type: "unpaid", StartDate: "2026-12-01", EndDate: "2026-12-02", Status: "pending", Reason: "move",
	}
)

func suite(t *testing.T, perms ...string) *itf.Suite {
	t.Helper()
	return itf.Setup(t,
		itf.WithModules(core.NewModule(nil), leave.NewModule(nil)),
		itf.WithUser(mia, perms...),
	)
}

// requests answers the own list or the pending queue depending on the query.
func requests(s *itf.Suite) {
	s.Backend.Handle("GET /api/leave", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") == "pending" {
			itf.OK(w, itf.Page([]models.LeaveRequest{colleague}, 1, 1, 100))
			return
		}
		itf.OK(w, itf.Page([]models.LeaveRequest{pending, approved}, 2, 1, 25))
	})
}

func TestLeaveController_List(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveCreate, permissions.LeaveUpdate, permissions.LeaveDelete)
	requests(s)

	res := s.GET("/leave").Do()
	require.Equal(t, http.StatusOK, res.Status())

	doc := res.HTML()
	assert.True(t, doc.Exists(`//tr[@id="leave-5" and @data-status="pending"]//*[@data-action="edit"]`))
	assert.True(t, doc.Exists(`//tr[@id="leave-5"]//*[@data-action="delete"]`))
	assert.False(t, doc.Exists(`//tr[@id="leave-6"]//*[@data-action="edit"]`), "decided requests are read-only")
	assert.Contains(t, doc.Text(`//tr[@id="leave-6"]`), "get well")
	assert.True(t, doc.Exists(`//*[@data-action="create"]`))
	assert.False(t, doc.Exists(`//div[@id="`+pages.ApprovalsID+`"]`), "approvals need leave.approve")

	calls := s.Backend.CallsTo(http.MethodGet, "/api/leave")
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "1", q.Get("user_id"))
}

func TestLeaveController_ListShowsApprovals(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveApprove)
	requests(s)

	res := s.GET("/leave").Do()
	require.Equal(t, http.StatusOK, res.Status())

	doc := res.HTML()
	assert.True(t, doc.Exists(`//div[@id="`+pages.ApprovalsID+`"]//tr[@id="approval-9"]`))
	assert.True(t, doc.Exists(`//tr[@id="approval-9"]//*[@data-action="approve"]`))
	assert.True(t, doc.Exists(`//tr[@id="approval-9"]//*[@data-action="reject"]`))
	assert.Len(t, s.Backend.CallsTo(http.MethodGet, "/api/leave"), 2)
}

func TestLeaveController_ApprovalsFragment(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveApprove)
	requests(s)

	res := s.GET("/leave/approvals").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.True(t, res.HTML().Exists(`//div[@id="`+pages.ApprovalsID+`"]//tr[@id="approval-9"]`))
}

func TestLeaveController_ListWithoutPermissionIsForbidden(t *testing.T) {
	s := suite(t)

	res := s.GET("/leave").Do()
	assert.Equal(t, http.StatusForbidden, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodGet, "/api/leave"))
}

func TestLeaveController_CreateRejectsReversedDates(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveCreate)

	res := s.POST("/leave").HTMX().Form(url.Values{
		"Type":      {"annual"},
		"StartDate": {"2026-11-04"},
		"EndDate":   {"2026-11-02"},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), `id="`+pages.DialogID+`"`)
	assert.Empty(t, s.Backend.CallsTo(http.MethodPost, "/api/leave"))
}

func TestLeaveController_Create(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveCreate)
	s.Backend.Respond("POST /api/leave", pending)

	res := s.POST("/leave").HTMX().Form(url.Values{
		"Type":      {"annual"},
		"StartDate": {"2026-11-02"},
		"EndDate":   {"2026-11-04"},
		"Reason":    {" family trip "},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), pages.ChangeEvent)

	var body map[string]any
	s.Backend.LastCall(http.MethodPost, "/api/leave").Decode(t, &body)
	assert.Equal(t, "annual", body["type"])
	assert.Equal(t, "2026-11-02", body["start_date"])
	assert.Equal(t, "2026-11-04", body["end_date"])
	assert.Equal(t, "family trip", body["reason"])
}

func TestLeaveController_CancelPending(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveDelete)
	s.Backend.Respond("GET /api/leave/5", pending)
	s.Backend.Respond("DELETE /api/leave/5", nil)

	res := s.DELETE("/leave/5").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), pages.ChangeEvent)
	assert.Len(t, s.Backend.CallsTo(http.MethodDelete, "/api/leave/5"), 1)
}

func TestLeaveController_CancelDecidedIsRefused(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveDelete)
	s.Backend.Respond("GET /api/leave/6", approved)

	res := s.DELETE("/leave/6").HTMX().Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Contains(t, res.Header().Get("HX-Trigger"), "already decided")
	assert.Empty(t, s.Backend.CallsTo(http.MethodDelete, "/api/leave/6"))
}

func TestLeaveController_DecideForm(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveApprove)
	s.Backend.Respond("GET /api/leave/9", colleague)

	res := s.GET("/leave/9/decide?status=rejected").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())

	doc := res.HTML()
	assert.True(t, doc.Exists(`//*[@id="`+pages.DecideDialogID+`"]`))
	assert.Equal(t, "rejected", doc.Attr(`//input[@name="Status"]`, "value"))
}

func TestLeaveController_Decide(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveApprove)
	s.Backend.Respond("GET /api/leave/9", colleague)
	decided := colleague
	decided.Status = "approved"
	s.Backend.Respond("PATCH /api/leave/9/status", decided)

	res := s.PATCH("/leave/9/status").HTMX().Form(url.Values{
		"Status":  {"approved"},
		"Comment": {"enjoy"},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), pages.ChangeEvent)
	assert.Contains(t, res.Trigger(), "closeDialog")

	var body map[string]any
	s.Backend.LastCall(http.MethodPatch, "/api/leave/9/status").Decode(t, &body)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, "enjoy", body["comment"])
}

func TestLeaveController_DecideRejectsUnknownStatus(t *testing.T) {
	s := suite(t, permissions.LeaveView, permissions.LeaveApprove)

	res := s.PATCH("/leave/9/status").HTMX().Form(url.Values{"Status": {"pending"}}).Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodPatch, "/api/leave/9/status"))
}
