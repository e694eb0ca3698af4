package engine

import "math"

// Validator is implemented by payload types that can check themselves.
type Validator interface {
	Validate() error
}

// DefaultValidate rejects NaN floating point payloads and delegates to
// Validator when the payload implements it. Every other value is accepted.
func DefaultValidate[T any](v T) error {
	switch x := any(v).(type) {
	case float64:
		if math.IsNaN(x) {
			return errNaN
		}
	case float32:
		if math.IsNaN(float64(x)) {
			return errNaN
		}
	case Validator:
		return x.Validate()
	}
	return nil
}

type reasonError string

func (e reasonError) Error() string { return string(e) }

const errNaN = reasonError("value is NaN")
