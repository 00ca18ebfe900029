package entries

import "errors"

// Kind classifies why an entry was rejected
type Kind int

const (
	MissingField Kind = iota + 1
	InvalidTimestamp
	InvalidFlow
	InvalidFraction
)

// Sentinels for errors.Is checks against a *ValidationError
var (
	ErrMissingField     = errors.New("missing field")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidFlow      = errors.New("invalid flow")
	ErrInvalidFraction  = errors.New("invalid fraction")
)

// ValidationError is returned when Add rejects its input
type ValidationError struct {
	Kind   Kind
	Reason string
}

func (e *ValidationError) Error() string {
	return e.sentinel().Error() + ": " + e.Reason
}

// Is lets errors.Is match a ValidationError against its kind's sentinel
func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Kind {
	case MissingField:
		return ErrMissingField
	case InvalidTimestamp:
		return ErrInvalidTimestamp
	case InvalidFlow:
		return ErrInvalidFlow
	default:
		return ErrInvalidFraction
	}
}

func invalid(kind Kind, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Reason: reason}
}
