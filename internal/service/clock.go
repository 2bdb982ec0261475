package service

import (
	"time"

	"habit-tracker/internal/model"
)

// Clock is the single time source deciding what "today" is.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock reads wall-clock time in loc (UTC when nil).
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{now: time.Now, loc: loc}
}

// FixedClock always reports t, in t's own location.
func FixedClock(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }, loc: t.Location()}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().In(c.location())
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(model.DateLayout)
}

func (c Clock) location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}
