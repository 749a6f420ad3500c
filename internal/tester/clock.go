package tester

import "time"

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }
