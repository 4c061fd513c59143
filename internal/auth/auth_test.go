package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/model"
)

func testUsers() []model.User {
	return []model.User{
		{Email: "admin@hudsonrx.com", Name: "Admin", Role: model.RoleAdmin},
		{Email: "amy@hudsonrx.com", Name: "Amy Harper", Role: model.RoleBizDev, RepName: "Harper, Amy"},
	}
}

type captureNotifier struct {
	emails []string
}

func (n *captureNotifier) LoginSucceeded(u model.User, _ time.Time) {
	n.emails = append(n.emails, u.Email)
}

func TestLoginSuccess(t *testing.T) {
	n := &captureNotifier{}
	s := NewService(testUsers(), "secret", false, n, zerolog.Nop())

	sess, err := s.Login("amy@hudsonrx.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.User.Role != model.RoleBizDev || sess.User.RepName != "Harper, Amy" {
		t.Errorf("session user = %+v", sess.User)
	}
	if sess.ID == uuid.Nil {
		t.Error("session id not assigned")
	}
	if len(n.emails) != 1 || n.emails[0] != "amy@hudsonrx.com" {
		t.Errorf("notifier calls = %v", n.emails)
	}
}

func TestLoginEmailNormalization(t *testing.T) {
	s := NewService(testUsers(), "secret", false, nil, zerolog.Nop())
	if _, err := s.Login("  AMY@HudsonRX.com ", "secret"); err != nil {
		t.Fatalf("case and whitespace must not matter: %v", err)
	}
}

func TestLoginDistinguishesFailures(t *testing.T) {
	n := &captureNotifier{}
	s := NewService(testUsers(), "secret", false, n, zerolog.Nop())

	_, err := s.Login("stranger@example.com", "secret")
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("unknown email err = %v", err)
	}
	_, err = s.Login("amy@hudsonrx.com", "wrong")
	if !errors.Is(err, ErrBadPassword) {
		t.Errorf("bad password err = %v", err)
	}
	if len(n.emails) != 0 {
		t.Errorf("failed logins must not notify, got %v", n.emails)
	}
}

func TestSkipPasswordBypass(t *testing.T) {
	s := NewService(testUsers(), "secret", true, nil, zerolog.Nop())
	if _, err := s.Login("amy@hudsonrx.com", "anything"); err != nil {
		t.Fatalf("skip-password login: %v", err)
	}
	// Unknown emails stay rejected even with the bypass on.
	if _, err := s.Login("stranger@example.com", "anything"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("bypass must not admit unknown emails: %v", err)
	}
}

func TestSessionIDsUnique(t *testing.T) {
	s := NewService(testUsers(), "secret", false, nil, zerolog.Nop())
	a, _ := s.Login("amy@hudsonrx.com", "secret")
	b, _ := s.Login("amy@hudsonrx.com", "secret")
	if a.ID == b.ID {
		t.Error("sessions must get distinct ids")
	}
}
