// Package mailer delivers task reminder emails. The store only records
// reminder intent and emits (recipient, task content) through the Sender
// interface; whether anything actually goes out depends on which Sender is
// wired in.
package mailer

import (
	"fmt"
	"log/slog"
	"net/mail"

	"gopkg.in/gomail.v2"
)

// Sender is the delivery collaborator invoked by SendEmailReminder.
type Sender interface {
	SendReminder(recipient, taskContent string) error
}

// ValidAddress reports whether s parses as a plain email address.
func ValidAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// SMTPConfig holds the settings for the SMTP sender.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether enough settings are present to dial a server.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0 && c.From != ""
}

// SMTPSender sends reminders through an SMTP server using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a sender from config.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendReminder delivers a reminder email for a task.
func (s *SMTPSender) SendReminder(recipient, taskContent string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", "Task reminder: "+taskContent)

	body := fmt.Sprintf(`
		<h2>Task reminder</h2>
		<p>This is a reminder for your task:</p>
		<p><strong>%s</strong></p>
	`, taskContent)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

// LogSender records reminder emissions to the log instead of delivering
// them. Used when no SMTP server is configured.
type LogSender struct{}

var _ Sender = LogSender{}

func (LogSender) SendReminder(recipient, taskContent string) error {
	slog.Info("email reminder emitted", "recipient", recipient, "task", taskContent)
	return nil
}

// FromConfig picks the SMTP sender when configured, the log sender otherwise.
func FromConfig(cfg SMTPConfig) Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return LogSender{}
}
