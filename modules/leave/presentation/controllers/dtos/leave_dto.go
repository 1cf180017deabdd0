package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/pkg/shared"
)

const ns = "Leave.Single"

type LeaveDTO struct {
	shared.Unparsed `form:"-" validate:"-"`

	Type      string `validate:"required,oneof=annual sick unpaid other"`
	StartDate shared.DateOnly
	EndDate   shared.DateOnly
	Reason    string `validate:"max=2000"`
}

func (d *LeaveDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Reason = strings.TrimSpace(d.Reason)
	errs, _ := shared.Validate(ctx, ns, d)
	if _, bad := errs["StartDate"]; !bad && d.StartDate.IsZero() {
		errs["StartDate"] = shared.FieldError(ctx, ns, "StartDate", "required", "")
	}
	if _, bad := errs["EndDate"]; !bad && d.EndDate.IsZero() {
		errs["EndDate"] = shared.FieldError(ctx, ns, "EndDate", "required", "")
	}
	shared.CheckDateRange(ctx, ns, errs, "StartDate", d.StartDate, "EndDate", d.EndDate)
	return errs, len(errs) == 0
}

func (d *LeaveDTO) ToSaveData() leaverequest.SaveData {
	return leaverequest.SaveData{
		Type:      leaverequest.Type(d.Type),
		StartDate: d.StartDate.String(),
		EndDate:   d.EndDate.String(),
		Reason:    d.Reason,
	}
}

type DecisionDTO struct {
	Status  string `validate:"required,oneof=approved rejected"`
	Comment string `validate:"max=1000"`
}

func (d *DecisionDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Comment = strings.TrimSpace(d.Comment)
	return shared.Validate(ctx, "Leave.Decide", d)
}

func (d *DecisionDTO) ToDecision() leaverequest.Decision {
	return leaverequest.Decision{Status: leaverequest.Status(d.Status), Comment: d.Comment}
}
