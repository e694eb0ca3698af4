package engine

import (
	"fmt"
	"strings"
	"time"
)

// DeliveryMode selects how a notification reaches each subscriber handle.
type DeliveryMode string

const (
	// DeliveryOrdered gives every handle a FIFO mailbox drained by at most one
	// goroutine at a time: fan-out stays concurrent across handles, and each
	// handle sees a topic's sequence numbers in publish order.
	DeliveryOrdered DeliveryMode = "ordered"
	// DeliveryUnordered spawns one goroutine per (notification, handle) pair
	// with no ordering between successive notifications.
	DeliveryUnordered DeliveryMode = "unordered"
)

// ParseDeliveryMode maps a config string to a DeliveryMode. Empty means ordered.
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DeliveryOrdered):
		return DeliveryOrdered, nil
	case string(DeliveryUnordered):
		return DeliveryUnordered, nil
	default:
		return "", fmt.Errorf("unknown delivery mode: %q", s)
	}
}

// Defaults applied when corresponding EngineConfig fields are unset.
const (
	defaultFailureBuffer = 64
	defaultDeliveryMode  = DeliveryOrdered
)

// EngineConfig encapsulates all tunables for Engine construction.
type EngineConfig[T any] struct {
	// DeliveryMode defaults to DeliveryOrdered.
	DeliveryMode DeliveryMode
	// MaxConcurrency bounds concurrently running Receive calls across the
	// engine. Zero or negative means unbounded.
	MaxConcurrency int
	// FailureBuffer is the capacity of the Failures stream. Failures that do
	// not fit are counted and dropped.
	FailureBuffer int
	// DeliveryTimeout bounds each Receive call through its context. Zero disables.
	DeliveryTimeout time.Duration
	// AutoCreate makes Publish create unknown topics instead of failing.
	AutoCreate bool
	// Validate rejects payloads at CreateTopic and Publish. Nil uses DefaultValidate.
	Validate func(T) error
	// OnFailure is invoked for every delivery failure, in addition to the stream.
	OnFailure FailureHandler
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
}
