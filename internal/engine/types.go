package engine

import (
	"sync"
	"time"
)

// HandleID identifies one subscription of one subscriber to one topic.
type HandleID string

// Notification is the immutable record handed to subscribers for every publish.
type Notification[T any] struct {
	Topic       string
	Value       T
	Seq         uint64
	PublishedAt time.Time
}

// State represents the lifecycle state of the engine.
type State string

const (
	StateRunning State = "running"
	StateClosed  State = "closed"
)

// TopicInfo is a read-only projection of one topic.
type TopicInfo[T any] struct {
	Name        string
	Value       T
	Seq         uint64
	Subscribers int
	UpdatedAt   time.Time
}

// handle is a topic's reference to a subscribed party.
type handle[T any] struct {
	id  HandleID
	sub Subscriber[T]
	// mbox serializes deliveries to this handle in ordered mode; nil otherwise.
	mbox *mailbox[T]
}

// topic holds the mutable state of one named channel. handles is only ever
// replaced under mu (copy-on-write), so a slice taken under mu stays valid
// as a snapshot after mu is released.
type topic[T any] struct {
	name string

	mu        sync.RWMutex
	value     T
	seq       uint64
	handles   []*handle[T]
	updatedAt time.Time
}

// snapshot returns the handle list as of now.
func (t *topic[T]) snapshot() []*handle[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.handles
}
