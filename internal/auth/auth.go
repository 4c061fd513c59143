// Package auth implements the shared-password login gate. Identity comes
// from the configured user directory; the password is one application-wide
// secret, not per-user credentials.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/model"
)

var (
	// ErrNotAuthorized means the email is not in the user directory.
	ErrNotAuthorized = errors.New("email not authorized")
	// ErrBadPassword means the email is known but the password is wrong.
	ErrBadPassword = errors.New("incorrect password")
)

// Notifier receives successful-login events. Implementations must not
// block the login path.
type Notifier interface {
	LoginSucceeded(user model.User, at time.Time)
}

// Service validates logins against the directory and issues sessions.
type Service struct {
	users        map[string]model.User
	password     string
	skipPassword bool
	notifier     Notifier
	now          func() time.Time
	log          zerolog.Logger
}

// NewService builds the login service. users is keyed however the caller
// likes; lookup is by lowercased trimmed email. skipPassword disables the
// password check for local development only.
func NewService(users []model.User, password string, skipPassword bool, notifier Notifier, log zerolog.Logger) *Service {
	byEmail := make(map[string]model.User, len(users))
	for _, u := range users {
		byEmail[canonEmail(u.Email)] = u
	}
	return &Service{
		users:        byEmail,
		password:     password,
		skipPassword: skipPassword,
		notifier:     notifier,
		now:          time.Now,
		log:          log,
	}
}

func canonEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the email against the directory and the password against
// the shared secret, returning a session on success. The two failure modes
// are deliberately distinguishable so users know whether to fix their email
// or their password.
func (s *Service) Login(email, password string) (model.Session, error) {
	user, ok := s.users[canonEmail(email)]
	if !ok {
		s.log.Warn().Str("email", canonEmail(email)).Msg("login rejected: unknown email")
		return model.Session{}, ErrNotAuthorized
	}
	if !s.skipPassword && password != s.password {
		s.log.Warn().Str("email", user.Email).Msg("login rejected: bad password")
		return model.Session{}, ErrBadPassword
	}

	sess := model.Session{
		ID:      uuid.New(),
		User:    user,
		LoginAt: s.now(),
	}
	s.log.Info().
		Str("email", user.Email).
		Str("role", user.Role.String()).
		Str("session", sess.ID.String()).
		Msg("login")
	if s.notifier != nil {
		s.notifier.LoginSucceeded(user, sess.LoginAt)
	}
	return sess, nil
}

// Logout ends a session. Sessions hold no server-side state beyond logging,
// so this only records the event.
func (s *Service) Logout(sess model.Session) {
	s.log.Info().
		Str("email", sess.User.Email).
		Str("session", sess.ID.String()).
		Msg("logout")
}

// Lookup returns the directory entry for an email without authenticating.
func (s *Service) Lookup(email string) (model.User, bool) {
	u, ok := s.users[canonEmail(email)]
	return u, ok
}
