package todo

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock reports the current calendar date.
type Clock func() civil.Date

// Today returns the local calendar date. Time zones are otherwise ignored.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// FixedClock returns a clock that always reports date.
func FixedClock(date civil.Date) Clock {
	return func() civil.Date { return date }
}
