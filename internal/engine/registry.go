package engine

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// checkTopicName rejects names that are empty or contain whitespace or '/'.
func checkTopicName(name string) error {
	if name == "" || strings.ContainsRune(name, '/') || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return invalidTopicNameError{name: name}
	}
	return nil
}

// CreateTopic registers a topic with an initial value, an empty subscriber
// list and sequence 0.
func (e *Engine[T]) CreateTopic(name string, initial T) error {
	if err := checkTopicName(name); err != nil {
		return err
	}
	if err := e.validate(initial); err != nil {
		rejectedTotal.WithLabelValues("invalid_value").Inc()
		return ErrInvalidValue(name, err.Error())
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	if _, exists := e.topics[name]; exists {
		e.mu.Unlock()
		return ErrDuplicateTopic(name)
	}
	e.topics[name] = &topic[T]{name: name, value: initial, updatedAt: time.Now()}
	e.mu.Unlock()

	topicsGauge.Inc()
	logger().Debug().Str("topic", name).Msg("topic created")
	e.emit(Event{Name: EventTopicCreated, Topic: name, Fields: map[string]any{"value": initial}})
	return nil
}

// Publish stores value as the topic's current value, assigns the next
// sequence number and hands the notification to the dispatcher. It returns
// once the registry is updated; delivery happens asynchronously. A rejected
// value leaves the topic unchanged and produces no notification.
func (e *Engine[T]) Publish(name string, value T) (Notification[T], error) {
	if err := e.validate(value); err != nil {
		rejectedTotal.WithLabelValues("invalid_value").Inc()
		return Notification[T]{}, ErrInvalidValue(name, err.Error())
	}

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return Notification[T]{}, ErrEngineClosed
	}
	t := e.topics[name]
	if t == nil && e.autoCreate {
		e.mu.RUnlock()
		if err := e.CreateTopic(name, value); err != nil && !IsDuplicateTopic(err) {
			return Notification[T]{}, err
		}
		e.mu.RLock()
		if e.closed {
			e.mu.RUnlock()
			return Notification[T]{}, ErrEngineClosed
		}
		t = e.topics[name]
	}
	if t == nil {
		e.mu.RUnlock()
		rejectedTotal.WithLabelValues("unknown_topic").Inc()
		return Notification[T]{}, ErrUnknownTopic(name)
	}

	t.mu.Lock()
	t.seq++
	t.value = value
	t.updatedAt = time.Now()
	n := Notification[T]{Topic: name, Value: value, Seq: t.seq, PublishedAt: t.updatedAt}
	subscribers := len(t.handles)
	e.disp.notify(n, t.handles)
	t.mu.Unlock()
	// Counted under e.mu so RemoveTopic cannot delete the series first.
	publishedTotal.WithLabelValues(name).Inc()
	e.mu.RUnlock()

	e.published.Add(1)
	e.emit(Event{Name: EventTopicPublished, Topic: name, Fields: map[string]any{
		"seq":         n.Seq,
		"subscribers": subscribers,
	}})
	return n, nil
}

// RemoveTopic deletes a topic. Every handle still attached is retired and
// its subscriber's OnUnsubscribed hook fires.
func (e *Engine[T]) RemoveTopic(name string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	t := e.topics[name]
	if t == nil {
		e.mu.Unlock()
		return ErrUnknownTopic(name)
	}
	delete(e.topics, name)
	t.mu.Lock()
	handles := t.handles
	t.handles = nil
	for _, h := range handles {
		e.disp.retire(h, name)
	}
	t.mu.Unlock()
	e.mu.Unlock()

	topicsGauge.Dec()
	publishedTotal.DeleteLabelValues(name)
	subscriptionsGauge.Sub(float64(len(handles)))
	logger().Debug().Str("topic", name).Int("subscribers", len(handles)).Msg("topic removed")
	e.emit(Event{Name: EventTopicRemoved, Topic: name, Fields: map[string]any{"subscribers": len(handles)}})
	return nil
}

// Value returns the topic's current value and last sequence number.
func (e *Engine[T]) Value(name string) (T, uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t := e.topics[name]
	if t == nil {
		var zero T
		return zero, 0, ErrUnknownTopic(name)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value, t.seq, nil
}

// Topic returns a projection of one topic.
func (e *Engine[T]) Topic(name string) (TopicInfo[T], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t := e.topics[name]
	if t == nil {
		return TopicInfo[T]{}, ErrUnknownTopic(name)
	}
	return t.info(), nil
}

// Topics returns a snapshot of every topic sorted by name.
func (e *Engine[T]) Topics() []TopicInfo[T] {
	e.mu.RLock()
	out := make([]TopicInfo[T], 0, len(e.topics))
	for _, t := range e.topics {
		out = append(out, t.info())
	}
	e.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *topic[T]) info() TopicInfo[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TopicInfo[T]{
		Name:        t.name,
		Value:       t.value,
		Seq:         t.seq,
		Subscribers: len(t.handles),
		UpdatedAt:   t.updatedAt,
	}
}
