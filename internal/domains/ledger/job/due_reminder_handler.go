package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"smartlib-backend/internal/domains/ledger/repository"
	"smartlib-backend/internal/infrastructure/email"
	"smartlib-backend/pkg/logger"
)

// DueReminderScanPayload configures one reminder scan run
type DueReminderScanPayload struct {
	WindowHours int `json:"window_hours,omitempty"`
}

// DueReminderHandler emails borrowers whose books are due soon
type DueReminderHandler struct {
	repo   repository.RepositoryInterface
	mailer email.EmailService
	window time.Duration
}

func NewDueReminderHandler(repo repository.RepositoryInterface, mailer email.EmailService, windowHours int) *DueReminderHandler {
	if windowHours <= 0 {
		windowHours = 24
	}
	return &DueReminderHandler{
		repo:   repo,
		mailer: mailer,
		window: time.Duration(windowHours) * time.Hour,
	}
}

func (h *DueReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload DueReminderScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("failed to unmarshal due reminder payload", err)
		return err
	}

	window := h.window
	if payload.WindowHours > 0 {
		window = time.Duration(payload.WindowHours) * time.Hour
	}

	log.Info().
		Dur("window", window).
		Msg("Starting due reminder scan")

	dueSoon, err := h.repo.ListDueSoon(ctx, window)
	if err != nil {
		logger.Error("due reminder scan failed", err)
		return err
	}

	sent := 0
	for _, issue := range dueSoon {
		err := h.mailer.SendDueReminder(ctx, email.DueReminderData{
			Email:     issue.Email,
			Username:  issue.Username,
			BookTitle: issue.BookTitle,
			DueDate:   issue.DueDate,
		})
		if err != nil {
			// Keep going; a single bad mailbox must not starve the rest
			logger.Error("failed to send reminder", err)
			continue
		}
		sent++
	}

	log.Info().
		Int("due_soon", len(dueSoon)).
		Int("reminders_sent", sent).
		Msg("Due reminder scan finished")

	return nil
}
