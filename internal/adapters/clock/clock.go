// Package clock provides the system clock adapter.
package clock

import (
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// System is the wall-clock implementation of the Clock port.
type System struct{}

// New creates a system clock.
func New() *System {
	return &System{}
}

// Now returns the current time.
func (*System) Now() time.Time {
	return time.Now()
}

// Ensure System implements the interface
var _ secondary.Clock = (*System)(nil)
