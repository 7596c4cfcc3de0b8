package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	ledgerJob "smartlib-backend/internal/domains/ledger/job"
	"smartlib-backend/internal/shared"
	"smartlib-backend/pkg/logger"
)

// Scheduler registers cron-driven ledger jobs with asynq
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs registers all scheduled jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerDueReminderScanJob()
}

// ================================================
// JOB: Due Reminder Scan (Daily at 2 AM UTC)
// ================================================
// Runs before most users wake up so the reminder lands in their inbox the
// morning a book comes due. An empty payload means the handler uses the
// configured default window.
func (s *Scheduler) registerDueReminderScanJob() error {
	payload, err := json.Marshal(ledgerJob.DueReminderScanPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeDueReminderScan, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *", // Daily at 2 AM
		task,
		asynq.Queue(shared.QueueLedger),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register DueReminderScan job", err)
		return err
	}

	logger.Info("Registered DueReminderScan: daily at 2 AM UTC", map[string]interface{}{})
	return nil
}

// Start runs the scheduler loop; blocks until Shutdown
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

// Shutdown stops the scheduler
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
