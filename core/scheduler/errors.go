package scheduler

import "errors"

// ErrInvalidInterval is the panic value for Every with a non-positive interval.
var ErrInvalidInterval = errors.New("scheduler: interval must be positive")
