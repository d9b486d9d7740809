package booking

import (
	"errors"
	"time"
)

var ErrInvalidTimeWindow = errors.New("invalid time window")

// TimeWindow is the half-open rental interval [start, end). The start must be
// strictly before the end and must not lie in the past at creation time; it is
// never re-validated afterwards.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end, now time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	if start.Before(now) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

// ReconstructTimeWindow rehydrates a window from storage without the
// creation-time checks.
func ReconstructTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{start: start, end: end}
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// IsPast reports whether the window finished strictly before now.
func (w TimeWindow) IsPast(now time.Time) bool {
	return w.end.Before(now)
}

// IsFuture reports whether the window begins strictly after now.
func (w TimeWindow) IsFuture(now time.Time) bool {
	return w.start.After(now)
}

// IsCurrent reports start <= now < end.
func (w TimeWindow) IsCurrent(now time.Time) bool {
	return !w.start.After(now) && now.Before(w.end)
}
