package subscriber

import (
	"github.com/rs/zerolog"

	"notifyd/internal/engine"
)

// LogPublisher writes engine lifecycle events through zerolog at debug level.
// Delivery failures are already logged at warn by the engine itself.
type LogPublisher struct {
	Logger zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher { return &LogPublisher{Logger: l} }

func (p *LogPublisher) Publish(ev engine.Event) {
	p.Logger.Debug().Str("event", ev.Name).Str("topic", ev.Topic).Fields(ev.Fields).Msg("engine event")
}
