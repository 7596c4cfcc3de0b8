package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// IssueBookRequest is the body of POST /books/:id/issue
type IssueBookRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

func (r IssueBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DueDate,
			validation.Required.Error("due_date is required"),
			validation.By(func(interface{}) error {
				if r.DueDate.Before(time.Now().Add(-time.Minute)) {
					return validation.NewError("due_date_past", "due_date must not be in the past")
				}
				return nil
			}),
		),
	)
}

// ListIssuesRequest covers the admin pagination view
type ListIssuesRequest struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}
