package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ChatMessage represents the database entity for the chat_messages table.
// Every assistant exchange is persisted, fallback answers included.
type ChatMessage struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Message   string    `db:"message"`
	Response  *string   `db:"response"`
	CreatedAt time.Time `db:"created_at"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 2000),
		),
	)
}

// ChatResponse carries the assistant answer and the persisted message id
type ChatResponse struct {
	Response  string `json:"response"`
	MessageID int64  `json:"message_id"`
}

// HistoryEntry is one transcript row in GET /chat/history
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Response  *string   `json:"response,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) ToHistoryEntry() HistoryEntry {
	return HistoryEntry{
		ID:        m.ID,
		Message:   m.Message,
		Response:  m.Response,
		CreatedAt: m.CreatedAt,
	}
}
