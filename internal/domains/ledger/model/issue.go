package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Issue status values. "overdue" is never stored: it is derived at read
// time from due_date and surfaced on the response only.
const (
	StatusIssued   = "issued"
	StatusReturned = "returned"
)

// BookIssue represents the database entity for the book_issues table.
// Created when a copy is lent out; flipped to returned exactly once.
type BookIssue struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	BookID     int64      `db:"book_id"`
	IssueDate  time.Time  `db:"issue_date"`
	DueDate    time.Time  `db:"due_date"`
	ReturnDate *time.Time `db:"return_date"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// IsOverdue derives the point-in-time overdue state
func (i *BookIssue) IsOverdue(now time.Time) bool {
	return i.Status == StatusIssued && i.DueDate.Before(now)
}

// Fine computes the late fee accrued by this issue: finePerDay for each
// full day past the due date. For returned issues the return date is the
// reference point, so the preview is stable after return.
func (i *BookIssue) Fine(now time.Time, finePerDay decimal.Decimal) decimal.Decimal {
	reference := now
	if i.ReturnDate != nil {
		reference = *i.ReturnDate
	}
	if !reference.After(i.DueDate) {
		return decimal.Zero
	}
	daysLate := int64(reference.Sub(i.DueDate).Hours() / 24)
	if daysLate <= 0 {
		return decimal.Zero
	}
	return finePerDay.Mul(decimal.NewFromInt(daysLate))
}

// IssueResponse is the public view of an issue with derived fields
type IssueResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"`
	Fine       string     `json:"fine"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ToResponse builds the response view, deriving overdue state and fine
func (i *BookIssue) ToResponse(now time.Time, finePerDay decimal.Decimal) IssueResponse {
	return IssueResponse{
		ID:         i.ID,
		UserID:     i.UserID,
		BookID:     i.BookID,
		IssueDate:  i.IssueDate,
		DueDate:    i.DueDate,
		ReturnDate: i.ReturnDate,
		Status:     i.Status,
		Overdue:    i.IsOverdue(now),
		Fine:       i.Fine(now, finePerDay).StringFixed(2),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(issues []BookIssue, now time.Time, finePerDay decimal.Decimal) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		out = append(out, issues[i].ToResponse(now, finePerDay))
	}
	return out
}

// DueSoonIssue joins an active issue with borrower and title details
// for the reminder scan
type DueSoonIssue struct {
	IssueID   int64
	UserID    int64
	Username  string
	Email     string
	BookTitle string
	DueDate   time.Time
}
