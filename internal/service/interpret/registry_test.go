package interpret

import (
	"errors"
	"testing"
)

type recordingSender struct {
	messages []any
	err      error
}

func (s *recordingSender) Send(v any) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, v)
	return nil
}

func TestRegistry_SendToRegistered(t *testing.T) {
	r := NewRegistry()
	s := &recordingSender{}
	r.Register("user-1", s)

	if !r.SendTo("user-1", "hello") {
		t.Fatal("expected send to succeed")
	}
	if len(s.messages) != 1 || s.messages[0] != "hello" {
		t.Errorf("unexpected messages: %v", s.messages)
	}
}

func TestRegistry_SendToUnknownUser(t *testing.T) {
	r := NewRegistry()
	if r.SendTo("nobody", "hello") {
		t.Error("send to unknown user should report false")
	}
}

func TestRegistry_SendFailure(t *testing.T) {
	r := NewRegistry()
	r.Register("user-1", &recordingSender{err: errors.New("broken pipe")})

	if r.SendTo("user-1", "hello") {
		t.Error("send failure should report false")
	}
}

func TestRegistry_RegisterSupersedes(t *testing.T) {
	r := NewRegistry()
	old := &recordingSender{}
	replacement := &recordingSender{}

	r.Register("user-1", old)
	r.Register("user-1", replacement)

	r.SendTo("user-1", "hello")
	if len(old.messages) != 0 {
		t.Error("superseded connection should not receive messages")
	}
	if len(replacement.messages) != 1 {
		t.Error("replacement connection should receive the message")
	}
}

func TestRegistry_UnregisterRemovesBinding(t *testing.T) {
	r := NewRegistry()
	s := &recordingSender{}
	r.Register("user-1", s)
	r.Unregister("user-1", s)

	if r.SendTo("user-1", "hello") {
		t.Error("unregistered user should be unreachable")
	}
}

func TestRegistry_StaleUnregisterKeepsSuccessor(t *testing.T) {
	r := NewRegistry()
	old := &recordingSender{}
	replacement := &recordingSender{}

	r.Register("user-1", old)
	r.Register("user-1", replacement)

	// The superseded connection tears down late; the live binding
	// must survive it.
	r.Unregister("user-1", old)

	if !r.SendTo("user-1", "hello") {
		t.Fatal("successor binding should survive the stale unregister")
	}
	if len(replacement.messages) != 1 {
		t.Error("successor should receive the message")
	}
}
