package secondary

import "time"

// Clock abstracts wall-clock time so services stay deterministic in tests.
type Clock interface {
	// Now returns the current timestamp.
	Now() time.Time
}
