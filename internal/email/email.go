// Package email sends plain-text mail over SMTP.  Delivery happens in the
// background consumer, never inside a request.
package email

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/painelweb/painel/internal/config"
)

// Mailer holds the SMTP settings injected from configuration.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewMailer builds a Mailer from the application config.  The result is
// usable even when no SMTP host is configured; Send then fails and the
// caller decides whether that matters.
func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		host: cfg.EmailHost,
		port: cfg.EmailPort,
		user: cfg.EmailUser,
		pass: cfg.EmailPass,
		from: cfg.EmailFrom,
	}
}

// Configured reports whether an SMTP host was provided.
func (m *Mailer) Configured() bool { return m.host != "" }

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, text string) error {
	if !m.Configured() {
		return fmt.Errorf("email: no SMTP host configured")
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, text)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	addr := net.JoinHostPort(m.host, m.port)
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
