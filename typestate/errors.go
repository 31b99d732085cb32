package typestate

import (
	"errors"
	"fmt"
)

// ErrConsumed is matched by every *ConsumedError via errors.Is
var ErrConsumed = errors.New("typestate: handle already consumed")

// ConsumedError is the panic value raised when a handle is used after a
// transition moved its document into a new handle.
type ConsumedError struct {
	State     string
	Operation string
}

func (e *ConsumedError) Error() string {
	return fmt.Sprintf("typestate: %s called on consumed %s handle", e.Operation, e.State)
}

// Is lets errors.Is match any ConsumedError against ErrConsumed
func (e *ConsumedError) Is(target error) bool {
	return target == ErrConsumed
}
