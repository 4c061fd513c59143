package notify

import (
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/model"
)

type sendCapture struct {
	mu   sync.Mutex
	wg   sync.WaitGroup
	addr string
	to   []string
	msg  string
	err  error
}

func (c *sendCapture) fn(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
	defer c.wg.Done()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addr = addr
	c.to = to
	c.msg = string(msg)
	return c.err
}

func TestLoginSucceededSendsMail(t *testing.T) {
	m := NewMailer("smtp.test", 587, "u", "p", "noreply@hudsonrx.com",
		[]string{"ops@hudsonrx.com"}, zerolog.Nop())
	cap := &sendCapture{}
	cap.wg.Add(1)
	m.send = cap.fn

	user := model.User{Email: "amy@hudsonrx.com", Name: "Amy Harper", Role: model.RoleBizDev}
	m.LoginSucceeded(user, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	cap.wg.Wait()

	cap.mu.Lock()
	defer cap.mu.Unlock()
	if cap.addr != "smtp.test:587" {
		t.Errorf("addr = %q", cap.addr)
	}
	if len(cap.to) != 1 || cap.to[0] != "ops@hudsonrx.com" {
		t.Errorf("to = %v", cap.to)
	}
	if !strings.Contains(cap.msg, "Subject: Dashboard login: amy@hudsonrx.com") {
		t.Errorf("subject missing:\n%s", cap.msg)
	}
	if !strings.Contains(cap.msg, "Amy Harper") {
		t.Errorf("body missing user name:\n%s", cap.msg)
	}
}

func TestDeliveryFailureDoesNotPanic(t *testing.T) {
	m := NewMailer("smtp.test", 587, "", "", "noreply@hudsonrx.com",
		[]string{"ops@hudsonrx.com"}, zerolog.Nop())
	cap := &sendCapture{err: errors.New("connection refused")}
	cap.wg.Add(1)
	m.send = cap.fn

	m.LoginSucceeded(model.User{Email: "x@y"}, time.Now())
	cap.wg.Wait()
}

func TestDisabledMailerIsNoop(t *testing.T) {
	m := NewMailer("", 0, "", "", "", nil, zerolog.Nop())
	if m.Enabled() {
		t.Fatal("mailer without host must be disabled")
	}
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Error("disabled mailer must not send")
		return nil
	}
	m.LoginSucceeded(model.User{}, time.Now())
	time.Sleep(10 * time.Millisecond)
}
