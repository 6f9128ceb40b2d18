package core

import "time"

// TimeProvider abstracts the clock so transaction timestamps are testable
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
