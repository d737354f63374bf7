package email

import (
	"guidehub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail over SMTP. Callers treat delivery as
// best effort: state transitions are committed before any mail goes out.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (e *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUsername,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
