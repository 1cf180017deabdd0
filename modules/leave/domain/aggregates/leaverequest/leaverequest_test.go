package leaverequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Days(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Request{StartDate: start, EndDate: start}.Days())
	assert.Equal(t, 5, Request{StartDate: start, EndDate: start.AddDate(0, 0, 4)}.Days())
	assert.Zero(t, Request{StartDate: start, EndDate: start.AddDate(0, 0, -1)}.Days())
	assert.Zero(t, Request{}.Days())
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusApproved.IsDecision())
	assert.True(t, StatusRejected.IsDecision())
	assert.False(t, StatusPending.IsDecision())
	assert.False(t, Status("archived").IsValid())
	assert.True(t, TypeSick.IsValid())
	assert.False(t, Type("sabbatical").IsValid())
}

func TestSaveData_Validate(t *testing.T) {
	ok := SaveData{Type: TypeAnnual, StartDate: "2026-10-26", EndDate: "2026-10-26"}
	assert.NoError(t, ok.Validate())

	reversed := SaveData{Type: TypeAnnual, StartDate: "2026-10-27", EndDate: "2026-10-26"}
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidRange)

	missing := SaveData{Type: TypeAnnual, StartDate: "2026-10-27"}
	assert.ErrorIs(t, missing.Validate(), ErrInvalidRange)

	assert.Error(t, SaveData{Type: "sabbatical", StartDate: "2026-10-26", EndDate: "2026-10-26"}.Validate())
}
