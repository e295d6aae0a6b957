package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"artculture/internal/config"
)

type Mailer interface {
	Send(to, subject, text, html string) error
}

type smtpMailer struct {
	cfg config.SMTP
}

func NewMailer(cfg *config.Config) Mailer {
	return &smtpMailer{cfg: cfg.SMTP}
}

func (m *smtpMailer) Send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("ошибка отправки письма: %w", err)
	}

	return nil
}
