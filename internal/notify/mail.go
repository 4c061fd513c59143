// Package notify sends operational email. Delivery is best effort: a
// notification failure is logged and never surfaces to the caller.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/model"
)

// Mailer sends login notifications over SMTP in a background goroutine so
// interactive flows never wait on mail delivery.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
	send     sendFunc
	log      zerolog.Logger
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// NewMailer returns a mailer for the given SMTP account. to lists the
// recipients of every notification.
func NewMailer(host string, port int, username, password, from string, to []string, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		send:     smtp.SendMail,
		log:      log,
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && len(m.to) > 0
}

// LoginSucceeded emails a login notice. It returns immediately; delivery
// happens on a goroutine and failures are only logged.
func (m *Mailer) LoginSucceeded(user model.User, at time.Time) {
	if !m.Enabled() {
		return
	}
	subject := fmt.Sprintf("Dashboard login: %s", user.Email)
	body := fmt.Sprintf("%s (%s, %s) logged in at %s.",
		user.Name, user.Email, user.Role, at.Format(time.RFC1123))
	go m.deliver(subject, body)
}

func (m *Mailer) deliver(subject, body string) {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + strings.Join(m.to, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var a smtp.Auth
	if m.username != "" {
		a = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := m.send(addr, a, m.from, m.to, []byte(msg)); err != nil {
		m.log.Warn().Err(err).Str("subject", subject).Msg("send notification mail")
		return
	}
	m.log.Debug().Str("subject", subject).Msg("notification mail sent")
}
