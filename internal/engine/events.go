package engine

// Event represents an engine lifecycle event.
// Minimal and stable: name + topic and optional fields via key/values.
type Event struct {
	Name   string
	Topic  string
	Fields map[string]any
}

// Event names emitted by the engine.
const (
	EventTopicCreated   = "topic_created"
	EventTopicPublished = "topic_published"
	EventTopicRemoved   = "topic_removed"
	EventSubscribed     = "subscribed"
	EventUnsubscribed   = "unsubscribed"
	EventDeliveryFailed = "delivery_failed"
)

// EventPublisher receives events from the engine. Implementations should be
// lightweight and non-blocking; Publish must not panic. It may be called from
// delivery goroutines.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
