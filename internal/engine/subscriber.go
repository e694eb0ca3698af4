package engine

import "context"

// Subscriber receives notifications for the topics it is subscribed to.
// Receive may be called concurrently for different topics and, in unordered
// mode, for the same topic. A returned error (or a panic) is reported as a
// DeliveryFailure and never affects other subscribers.
type Subscriber[T any] interface {
	Receive(ctx context.Context, n Notification[T]) error
}

// UnsubscribeNotifier is implemented by subscribers that want to know when one
// of their handles stops receiving notifications, either through Unsubscribe
// or because the topic was removed.
type UnsubscribeNotifier interface {
	OnUnsubscribed(topic string, id HandleID)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc[T any] func(ctx context.Context, n Notification[T]) error

func (f SubscriberFunc[T]) Receive(ctx context.Context, n Notification[T]) error { return f(ctx, n) }
