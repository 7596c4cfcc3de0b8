package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueBookRequest_Validate(t *testing.T) {
	future := IssueBookRequest{DueDate: time.Now().Add(14 * 24 * time.Hour)}
	assert.NoError(t, future.Validate())

	past := IssueBookRequest{DueDate: time.Now().Add(-time.Hour)}
	assert.Error(t, past.Validate())

	assert.Error(t, IssueBookRequest{}.Validate())
}
