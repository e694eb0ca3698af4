package engine

import "errors"

var (
	// ErrEngineClosed is returned by every mutating operation after Close.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrNilSubscriber is returned when Subscribe is called with a nil subscriber.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")
)

// unknownTopicError signals an operation on a topic that does not exist.
type unknownTopicError struct{ name string }

func (e unknownTopicError) Error() string { return "unknown topic: " + e.name }

// ErrUnknownTopic returns an error for a topic name that is not registered.
func ErrUnknownTopic(name string) error { return unknownTopicError{name: name} }

// IsUnknownTopic reports whether err indicates a missing topic.
func IsUnknownTopic(err error) bool {
	var e unknownTopicError
	return errors.As(err, &e)
}

// duplicateTopicError signals CreateTopic on an existing name.
type duplicateTopicError struct{ name string }

func (e duplicateTopicError) Error() string { return "duplicate topic: " + e.name }

// ErrDuplicateTopic returns an error for a topic name that is already registered.
func ErrDuplicateTopic(name string) error { return duplicateTopicError{name: name} }

// IsDuplicateTopic reports whether err indicates an already registered topic.
func IsDuplicateTopic(err error) bool {
	var e duplicateTopicError
	return errors.As(err, &e)
}

// invalidValueError signals a payload rejected by the engine's validator.
type invalidValueError struct {
	topic  string
	reason string
}

func (e invalidValueError) Error() string {
	return "invalid value for topic " + e.topic + ": " + e.reason
}

// ErrInvalidValue returns an error for a rejected payload.
func ErrInvalidValue(topic, reason string) error {
	return invalidValueError{topic: topic, reason: reason}
}

// IsInvalidValue reports whether err indicates a rejected payload.
func IsInvalidValue(err error) bool {
	var e invalidValueError
	return errors.As(err, &e)
}

// invalidTopicNameError signals an empty or otherwise unusable topic name.
type invalidTopicNameError struct{ name string }

func (e invalidTopicNameError) Error() string { return "invalid topic name: " + quote(e.name) }

// IsInvalidTopicName reports whether err indicates an unusable topic name.
func IsInvalidTopicName(err error) bool {
	var e invalidTopicNameError
	return errors.As(err, &e)
}

func quote(s string) string { return "\"" + s + "\"" }
