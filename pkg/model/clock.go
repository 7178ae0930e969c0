package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" (or "H:MM").
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 {
		s = "0" + s
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// MustParseClock is ParseClock for constants; it panics on bad input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Window is an allowed time-of-day range, both ends inclusive.
type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// ParseWindow parses both ends and checks that start comes before end.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	w := Window{Start: s, End: e}
	if !w.Valid() {
		return Window{}, fmt.Errorf("window %s must start before it ends", w)
	}
	return w, nil
}

// IsZero reports whether the window was left unset.
func (w Window) IsZero() bool {
	return w.Start == 0 && w.End == 0
}

func (w Window) Valid() bool {
	return w.Start < w.End
}

// Contains reports whether c lies in [Start, End].
func (w Window) Contains(c Clock) bool {
	return w.Start <= c && c <= w.End
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
