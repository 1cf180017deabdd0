package persistence

import (
	"time"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence/models"
)

func parseDate(s string) time.Time {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ToDomainRequest(m models.LeaveRequest) leaverequest.Request {
	r := leaverequest.Request{
		ID:              m.ID,
		UserID:          m.UserID,
		Type:            leaverequest.Type(m.Type),
		StartDate:       parseDate(m.StartDate),
		EndDate:         parseDate(m.EndDate),
		Reason:          m.Reason,
		Status:          leaverequest.Status(m.Status),
		DecisionComment: m.DecisionComment,
		CreatedAt:       m.CreatedAt,
	}
	if r.Status == "" {
		r.Status = leaverequest.StatusPending
	}
	if m.User != nil {
		r.UserName = m.User.Name
		if r.UserID == 0 {
			r.UserID = m.User.ID
		}
	}
	if m.DecidedBy != nil {
		r.DecidedBy = m.DecidedBy.Name
	}
	if m.DecidedAt != nil {
		r.DecidedAt = *m.DecidedAt
	}
	return r
}
