package shared

// Asynq task types and queues
const (
	TypeDueReminderScan = "ledger:due_reminder_scan"

	QueueLedger = "default"
)
