package signals

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed registration or emission calls:
	// nil receivers, an explicitly nil sender, a nil signal or a key value that
	// cannot be used as a map key.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingArgument is returned when a receiver requires a payload entry
	// that was not sent.
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnsupportedSignature is returned when a receiver declares a parameter
	// kind that cannot be bound from a keyword payload.
	ErrUnsupportedSignature = errors.New("unsupported receiver signature")

	// ErrArgumentType is returned when a payload value cannot be assigned to the
	// parameter a typed receiver declares for it.
	ErrArgumentType = errors.New("argument type mismatch")

	// ErrUnknownName is returned when removing a name that is not in a Names set.
	ErrUnknownName = errors.New("unknown name")
)

// MissingArgumentError identifies the receiver and the parameter that could
// not be bound from the payload.
type MissingArgumentError struct {
	Receiver string
	Param    string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("receiver %q expects argument %q, but it was not sent", e.Receiver, e.Param)
}

// Unwrap makes errors.Is(err, ErrMissingArgument) hold.
func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}
