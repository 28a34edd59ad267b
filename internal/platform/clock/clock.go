package clock

import "time"

// Clock abstracts time to keep the countdown and its records deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
