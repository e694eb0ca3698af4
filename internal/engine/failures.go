package engine

import (
	"errors"
	"fmt"
)

// DeliveryFailure records one subscriber's failure to process one notification.
// It is reported on the failure stream and never returned to publishers.
type DeliveryFailure struct {
	Topic  string
	Handle HandleID
	Seq    uint64
	Err    error
}

func (f DeliveryFailure) Error() string {
	return fmt.Sprintf("delivery of %s#%d to %s failed: %v", f.Topic, f.Seq, f.Handle, f.Err)
}

func (f DeliveryFailure) Unwrap() error { return f.Err }

// IsDeliveryFailure reports whether err is (or wraps) a DeliveryFailure.
func IsDeliveryFailure(err error) bool {
	var f DeliveryFailure
	return errors.As(err, &f)
}

// FailureHandler is called synchronously, on the delivering goroutine, for
// every DeliveryFailure. It must not block for long.
type FailureHandler func(DeliveryFailure)

// panicError wraps a value recovered from a panicking subscriber.
type panicError struct{ v any }

func (e panicError) Error() string { return fmt.Sprintf("subscriber panic: %v", e.v) }
