package mappers

import (
	"strconv"
	"time"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/constants"
)

func id(v int64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

func RequestToViewModel(r leaverequest.Request) viewmodels.Request {
	vm := viewmodels.Request{
		ID:              id(r.ID),
		UserID:          id(r.UserID),
		UserName:        r.UserName,
		Type:            string(r.Type),
		StartDate:       date(r.StartDate),
		EndDate:         date(r.EndDate),
		Reason:          r.Reason,
		Status:          string(r.Status),
		DecidedBy:       r.DecidedBy,
		DecisionComment: r.DecisionComment,
		DecidedAt:       date(r.DecidedAt),
		CreatedAt:       date(r.CreatedAt),
		Pending:         r.IsPending(),
	}
	if n := r.Days(); n > 0 {
		vm.Days = strconv.Itoa(n)
	}
	return vm
}
