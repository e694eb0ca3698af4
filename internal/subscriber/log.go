package subscriber

import (
	"context"

	"github.com/rs/zerolog"

	"notifyd/internal/engine"
)

// Log writes every notification as a structured log line.
type Log[T any] struct {
	Label  string
	Logger zerolog.Logger
}

func NewLog[T any](label string, l zerolog.Logger) *Log[T] {
	return &Log[T]{Label: label, Logger: l}
}

func (s *Log[T]) Receive(ctx context.Context, n engine.Notification[T]) error {
	s.Logger.Info().
		Str("subscriber", s.Label).
		Str("topic", n.Topic).
		Interface("value", n.Value).
		Uint64("seq", n.Seq).
		Msg("notification")
	return nil
}

func (s *Log[T]) OnUnsubscribed(topic string, id engine.HandleID) {
	s.Logger.Info().Str("subscriber", s.Label).Str("topic", topic).Str("handle", string(id)).Msg("unsubscribed")
}
