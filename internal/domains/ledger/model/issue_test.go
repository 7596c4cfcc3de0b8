package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var finePerDay = decimal.RequireFromString("0.50")

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		issue   BookIssue
		overdue bool
	}{
		{
			name:    "due in the future",
			issue:   BookIssue{Status: StatusIssued, DueDate: now.Add(time.Hour)},
			overdue: false,
		},
		{
			name:    "past due and still out",
			issue:   BookIssue{Status: StatusIssued, DueDate: now.Add(-time.Hour)},
			overdue: true,
		},
		{
			name:    "past due but already returned",
			issue:   BookIssue{Status: StatusReturned, DueDate: now.Add(-time.Hour)},
			overdue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overdue, tt.issue.IsOverdue(now))
		})
	}
}

func TestFine_NotLate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	issue := BookIssue{Status: StatusIssued, DueDate: now.Add(time.Hour)}

	assert.True(t, issue.Fine(now, finePerDay).IsZero())
}

func TestFine_LessThanFullDayLate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	issue := BookIssue{Status: StatusIssued, DueDate: now.Add(-23 * time.Hour)}

	// Only full days count
	assert.True(t, issue.Fine(now, finePerDay).IsZero())
}

func TestFine_ThreeDaysLate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	issue := BookIssue{Status: StatusIssued, DueDate: now.Add(-3 * 24 * time.Hour)}

	assert.Equal(t, "1.50", issue.Fine(now, finePerDay).StringFixed(2))
}

func TestFine_ReturnedIssueUsesReturnDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	returnedAt := now.Add(-10 * 24 * time.Hour)
	issue := BookIssue{
		Status:     StatusReturned,
		DueDate:    returnedAt.Add(-2 * 24 * time.Hour),
		ReturnDate: &returnedAt,
	}

	// The fine froze at return time; it does not keep growing
	assert.Equal(t, "1.00", issue.Fine(now, finePerDay).StringFixed(2))
}

func TestToResponse_DerivedFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	issue := BookIssue{
		ID:      5,
		UserID:  7,
		BookID:  3,
		Status:  StatusIssued,
		DueDate: now.Add(-2 * 24 * time.Hour),
	}

	resp := issue.ToResponse(now, finePerDay)

	assert.True(t, resp.Overdue)
	assert.Equal(t, "1.00", resp.Fine)
	assert.Equal(t, StatusIssued, resp.Status)
	assert.Nil(t, resp.ReturnDate)
}
