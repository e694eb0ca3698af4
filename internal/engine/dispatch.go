package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// dispatcher fans notifications out to subscriber handles. It is owned by one
// Engine and never blocks the publish path: every Receive call runs on a
// goroutine it tracks, so shutdown can wait for outstanding work.
type dispatcher[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc

	mode    DeliveryMode
	sem     *semaphore.Weighted // nil when unbounded
	maxConc int
	timeout time.Duration

	wg      sync.WaitGroup
	pending idleCounter

	failures  chan DeliveryFailure
	onFailure FailureHandler
	emit      func(Event)

	delivered atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

func newDispatcher[T any](cfg EngineConfig[T], emit func(Event)) *dispatcher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	d := &dispatcher[T]{
		ctx:       ctx,
		cancel:    cancel,
		mode:      cfg.DeliveryMode,
		timeout:   cfg.DeliveryTimeout,
		failures:  make(chan DeliveryFailure, cfg.FailureBuffer),
		onFailure: cfg.OnFailure,
		emit:      emit,
	}
	if cfg.MaxConcurrency > 0 {
		d.maxConc = cfg.MaxConcurrency
		d.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	}
	return d
}

// newHandle builds a handle suited to the dispatcher's delivery mode.
func (d *dispatcher[T]) newHandle(id HandleID, s Subscriber[T]) *handle[T] {
	h := &handle[T]{id: id, sub: s}
	if d.mode == DeliveryOrdered {
		h.mbox = &mailbox[T]{}
	}
	return h
}

// notify fans n out to handles, which must be a point-in-time snapshot.
// The caller holds the topic lock, so in ordered mode each mailbox receives
// a topic's notifications in sequence order.
func (d *dispatcher[T]) notify(n Notification[T], handles []*handle[T]) {
	if len(handles) == 0 {
		return
	}
	if d.mode == DeliveryOrdered {
		for _, h := range handles {
			d.enqueue(h, mail[T]{n: n})
		}
		return
	}

	// One task per handle, grouped per notification.
	d.pending.Add(int64(len(handles)))
	d.wg.Add(1)
	var g errgroup.Group
	for _, h := range handles {
		h := h
		g.Go(func() error {
			defer d.pending.Add(-1)
			return d.deliver(h, n)
		})
	}
	go func() {
		defer d.wg.Done()
		if err := g.Wait(); err != nil {
			logger().Debug().Str("topic", n.Topic).Uint64("seq", n.Seq).Err(err).Msg("fan-out finished with failures")
		}
	}()
}

// retire schedules the OnUnsubscribed hook for a handle that has just been
// detached from its topic. In ordered mode it runs after the handle's queued
// notifications.
func (d *dispatcher[T]) retire(h *handle[T], topicName string) {
	if d.mode == DeliveryOrdered {
		d.enqueue(h, mail[T]{n: Notification[T]{Topic: topicName}, retire: true})
		return
	}
	d.pending.Add(1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.pending.Add(-1)
		d.unsubscribed(h, topicName)
	}()
}

func (d *dispatcher[T]) enqueue(h *handle[T], m mail[T]) {
	d.pending.Add(1)
	if h.mbox.push(m) {
		d.wg.Add(1)
		go d.drain(h)
	}
}

// drain delivers a handle's queued mail in order until the mailbox is empty.
func (d *dispatcher[T]) drain(h *handle[T]) {
	defer d.wg.Done()
	for {
		m, ok := h.mbox.next()
		if !ok {
			return
		}
		if m.retire {
			d.unsubscribed(h, m.n.Topic)
		} else {
			_ = d.deliver(h, m.n)
		}
		d.pending.Add(-1)
	}
}

// deliver runs one Receive call and reports its failure, if any.
func (d *dispatcher[T]) deliver(h *handle[T], n Notification[T]) error {
	if d.sem != nil {
		if err := d.sem.Acquire(d.ctx, 1); err != nil {
			return d.fail(h, n, err)
		}
		defer d.sem.Release(1)
	}
	ctx := d.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	deliveriesInflight.Inc()
	start := time.Now()
	err := receive(ctx, h.sub, n)
	deliveryDuration.Observe(time.Since(start).Seconds())
	deliveriesInflight.Dec()

	if err != nil {
		return d.fail(h, n, err)
	}
	d.delivered.Add(1)
	deliveriesTotal.WithLabelValues("ok").Inc()
	return nil
}

// receive calls s.Receive, converting a panic into an error.
func receive[T any](ctx context.Context, s Subscriber[T], n Notification[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{v: r}
		}
	}()
	return s.Receive(ctx, n)
}

func (d *dispatcher[T]) fail(h *handle[T], n Notification[T], err error) error {
	f := DeliveryFailure{Topic: n.Topic, Handle: h.id, Seq: n.Seq, Err: err}
	d.failed.Add(1)
	deliveriesTotal.WithLabelValues("error").Inc()
	logger().Warn().
		Str("topic", n.Topic).
		Str("handle", string(h.id)).
		Uint64("seq", n.Seq).
		Err(err).
		Msg("delivery failed")
	d.emit(Event{Name: EventDeliveryFailed, Topic: n.Topic, Fields: map[string]any{
		"handle": string(h.id),
		"seq":    n.Seq,
		"error":  err.Error(),
	}})
	if d.onFailure != nil {
		d.onFailure(f)
	}
	select {
	case d.failures <- f:
	default:
		d.dropped.Add(1)
		failuresDroppedTotal.Inc()
	}
	return f
}

func (d *dispatcher[T]) unsubscribed(h *handle[T], topicName string) {
	un, ok := h.sub.(UnsubscribeNotifier)
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger().Warn().Str("topic", topicName).Str("handle", string(h.id)).Interface("panic", r).Msg("OnUnsubscribed panicked")
		}
	}()
	un.OnUnsubscribed(topicName, h.id)
}

// drainIdle waits until no delivery is queued or running, or ctx is done.
func (d *dispatcher[T]) drainIdle(ctx context.Context) error {
	idle := d.pending.Idle()
	select {
	case <-idle:
		return nil
	default:
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shutdown waits for outstanding deliveries until ctx is done, cancels the
// delivery context, and closes the failure stream once the last task exits.
func (d *dispatcher[T]) shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		close(d.failures)
		return nil
	case <-ctx.Done():
		d.cancel()
		go func() {
			<-done
			close(d.failures)
		}()
		return ctx.Err()
	}
}
