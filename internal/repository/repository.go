package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeout marks a storage round trip that ran out of its context budget,
// so the transport layer can answer 504 instead of a generic 500.
var ErrTimeout = errors.New("storage timeout")

func wrap(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
