package engine

import "github.com/google/uuid"

// Subscribe attaches s to a topic and returns the new handle's id. Subscribing
// the same subscriber twice creates two independent handles, each receiving
// every notification.
func (e *Engine[T]) Subscribe(name string, s Subscriber[T]) (HandleID, error) {
	if s == nil {
		return "", ErrNilSubscriber
	}
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return "", ErrEngineClosed
	}
	t := e.topics[name]
	if t == nil {
		e.mu.RUnlock()
		return "", ErrUnknownTopic(name)
	}
	h := e.disp.newHandle(HandleID(uuid.NewString()), s)
	t.mu.Lock()
	next := make([]*handle[T], len(t.handles), len(t.handles)+1)
	copy(next, t.handles)
	t.handles = append(next, h)
	t.mu.Unlock()
	e.mu.RUnlock()

	subscriptionsGauge.Inc()
	logger().Debug().Str("topic", name).Str("handle", string(h.id)).Msg("subscribed")
	e.emit(Event{Name: EventSubscribed, Topic: name, Fields: map[string]any{"handle": string(h.id)}})
	return h.id, nil
}

// Unsubscribe detaches a handle from a topic. Notifications published after
// it returns never reach the handle; deliveries already scheduled still run.
// Unsubscribing a handle that is not attached is a logged no-op.
func (e *Engine[T]) Unsubscribe(name string, id HandleID) error {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return ErrEngineClosed
	}
	t := e.topics[name]
	if t == nil {
		e.mu.RUnlock()
		return ErrUnknownTopic(name)
	}
	t.mu.Lock()
	idx := -1
	for i, h := range t.handles {
		if h.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		e.mu.RUnlock()
		logger().Debug().Str("topic", name).Str("handle", string(id)).Msg("subscriber not found")
		return nil
	}
	h := t.handles[idx]
	next := make([]*handle[T], 0, len(t.handles)-1)
	next = append(next, t.handles[:idx]...)
	t.handles = append(next, t.handles[idx+1:]...)
	e.disp.retire(h, name)
	t.mu.Unlock()
	e.mu.RUnlock()

	subscriptionsGauge.Dec()
	logger().Debug().Str("topic", name).Str("handle", string(id)).Msg("unsubscribed")
	e.emit(Event{Name: EventUnsubscribed, Topic: name, Fields: map[string]any{"handle": string(id)}})
	return nil
}

// Subscribers returns the topic's handle ids in registration order.
func (e *Engine[T]) Subscribers(name string) ([]HandleID, error) {
	e.mu.RLock()
	t := e.topics[name]
	e.mu.RUnlock()
	if t == nil {
		return nil, ErrUnknownTopic(name)
	}
	handles := t.snapshot()
	out := make([]HandleID, len(handles))
	for i, h := range handles {
		out[i] = h.id
	}
	return out, nil
}
