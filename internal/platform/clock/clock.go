package clock

import "time"

// Clock abstracts time to keep session lifecycle logic deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
