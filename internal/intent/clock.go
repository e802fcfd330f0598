package intent

import "time"

// DateLayout is the canonical date form used for relative-day resolution.
const DateLayout = "2006-01-02"

// ReferenceClock is an immutable snapshot of "now", captured once per parse
// request. Every relative date in a single parse resolves against this
// snapshot, never against a later clock read, so one parse cannot straddle
// midnight and produce inconsistent dates.
type ReferenceClock struct {
	Now          time.Time
	Today        string
	TodayName    string
	Tomorrow     string
	TomorrowName string
}

// NewReferenceClock decomposes now into the canonical today/tomorrow date
// strings and weekday names used by prompt construction and date selection.
func NewReferenceClock(now time.Time) ReferenceClock {
	tomorrow := now.AddDate(0, 0, 1)
	return ReferenceClock{
		Now:          now,
		Today:        now.Format(DateLayout),
		TodayName:    now.Weekday().String(),
		Tomorrow:     tomorrow.Format(DateLayout),
		TomorrowName: tomorrow.Weekday().String(),
	}
}

// TodayAt returns a concrete timestamp on the snapshot's today.
func (c ReferenceClock) TodayAt(hour, minute int) time.Time {
	return dateAt(c.Now, hour, minute)
}

// TomorrowAt returns a concrete timestamp on the snapshot's tomorrow.
func (c ReferenceClock) TomorrowAt(hour, minute int) time.Time {
	return dateAt(c.Now.AddDate(0, 0, 1), hour, minute)
}

func dateAt(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
