package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"smartlib-backend/pkg/logger"
)

// DueReminderData carries everything needed to remind a borrower
type DueReminderData struct {
	Email     string
	Username  string
	BookTitle string
	DueDate   time.Time
}

type EmailService interface {
	SendDueReminder(ctx context.Context, data DueReminderData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendDueReminder(ctx context.Context, data DueReminderData) error {
	subject := "SmartLib: your book is due soon"
	body := fmt.Sprintf(`Hi %s,

"%s" is due back on %s.

Please return it on time to avoid late fees, or visit the library to renew.

— SmartLib`, data.Username, data.BookTitle, data.DueDate.Format("Mon, 02 Jan 2006"))

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body,
	))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Error("failed to send due reminder email", err)
		return fmt.Errorf("send due reminder: %w", err)
	}

	logger.Info("due reminder sent", map[string]interface{}{
		"email": data.Email,
		"title": data.BookTitle,
	})
	return nil
}
