package lifecycle

import "time"

// Clock abstracts "today" so overdue and delay computations are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
