package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Engine is the publisher API: it composes the topic registry, the
// subscription manager and the dispatcher for payloads of type T.
type Engine[T any] struct {
	mu     sync.RWMutex
	topics map[string]*topic[T]
	closed bool

	validate   func(T) error
	autoCreate bool
	disp       *dispatcher[T]
	publisher  atomic.Pointer[publisherBox]
	published  atomic.Uint64
	startTime  time.Time
}

type publisherBox struct{ p EventPublisher }

// New constructs an Engine with package defaults.
func New[T any]() *Engine[T] {
	return NewWithConfig(EngineConfig[T]{})
}

// NewWithConfig constructs an Engine from EngineConfig, applying defaults to unset fields.
func NewWithConfig[T any](cfg EngineConfig[T]) *Engine[T] {
	if cfg.DeliveryMode == "" {
		cfg.DeliveryMode = defaultDeliveryMode
	}
	if cfg.FailureBuffer <= 0 {
		cfg.FailureBuffer = defaultFailureBuffer
	}
	if cfg.Validate == nil {
		cfg.Validate = DefaultValidate[T]
	}
	e := &Engine[T]{
		topics:     make(map[string]*topic[T]),
		validate:   cfg.Validate,
		autoCreate: cfg.AutoCreate,
		startTime:  time.Now(),
	}
	e.SetEventPublisher(cfg.Publisher)
	e.disp = newDispatcher(cfg, e.emit)
	return e
}

// SetEventPublisher installs a lifecycle event sink. Nil restores the no-op default.
func (e *Engine[T]) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	e.publisher.Store(&publisherBox{p: p})
}

func (e *Engine[T]) emit(ev Event) {
	if ev.Fields == nil {
		ev.Fields = map[string]any{}
	}
	e.publisher.Load().p.Publish(ev)
}

// Failures returns the stream of delivery failures. It is closed after Close
// once the last outstanding delivery has finished.
func (e *Engine[T]) Failures() <-chan DeliveryFailure { return e.disp.failures }

// Ready reports whether the engine accepts operations.
func (e *Engine[T]) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.closed
}

// State returns the engine lifecycle state.
func (e *Engine[T]) State() State {
	if e.Ready() {
		return StateRunning
	}
	return StateClosed
}

// Drain waits until every notification published so far has been delivered
// (or has failed) to every handle it targeted, or until ctx is done.
func (e *Engine[T]) Drain(ctx context.Context) error {
	return e.disp.drainIdle(ctx)
}

// Close stops accepting operations and waits for outstanding deliveries until
// ctx is done. Delivery contexts are canceled on return. Close is idempotent.
func (e *Engine[T]) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()
	logger().Debug().Msg("engine closing")
	return e.disp.shutdown(ctx)
}
