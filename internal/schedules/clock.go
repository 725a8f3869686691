package schedules

import "time"

// Clock supplies the current time so tests can pin it. The generator uses it
// for past-date clamping and the default travel date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
