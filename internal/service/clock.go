package service

import "time"

// now returns the current time in UTC at millisecond precision, the
// resolution every store round-trips exactly.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
