package subscriber

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"notifyd/internal/engine"
)

// Message is one outbound notification produced by Notifier.
type Message struct {
	To      string
	Subject string
	Body    string
	SentAt  time.Time
}

// Sender delivers a Message. It must honor ctx.
type Sender func(ctx context.Context, m Message) error

// ErrNoRecipient is returned by Notifier when it has nowhere to send.
var ErrNoRecipient = errors.New("notifier has no recipient")

// Notifier turns notifications into email-style messages and hands them to a
// Sender. Sent messages are kept in an outbox for inspection.
type Notifier[T any] struct {
	Recipient string
	Send      Sender

	mu     sync.Mutex
	outbox []Message
}

// NewNotifier returns a Notifier for recipient. A nil send only fills the outbox.
func NewNotifier[T any](recipient string, send Sender) *Notifier[T] {
	return &Notifier[T]{Recipient: recipient, Send: send}
}

func (s *Notifier[T]) Receive(ctx context.Context, n engine.Notification[T]) error {
	if s.Recipient == "" {
		return ErrNoRecipient
	}
	m := Message{
		To:      s.Recipient,
		Subject: fmt.Sprintf("%s update #%d", n.Topic, n.Seq),
		Body:    fmt.Sprintf("%s is now %v", n.Topic, n.Value),
		SentAt:  time.Now(),
	}
	if s.Send != nil {
		if err := s.Send(ctx, m); err != nil {
			return fmt.Errorf("send to %s: %w", s.Recipient, err)
		}
	}
	s.mu.Lock()
	s.outbox = append(s.outbox, m)
	s.mu.Unlock()
	return nil
}

// Outbox returns the messages sent so far.
func (s *Notifier[T]) Outbox() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.outbox...)
}
