package main

import (
	"github.com/hibiken/asynq"

	ledgerJob "smartlib-backend/internal/domains/ledger/job"
	"smartlib-backend/internal/shared"
	"smartlib-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	dueReminderScan *ledgerJob.DueReminderHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		dueReminderScan: c.DueReminderHandler,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDueReminderScan, h.dueReminderScan.ProcessTask)
}
