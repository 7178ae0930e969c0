package model

import (
	"errors"
	"fmt"
)

var ErrInvalidInterval = errors.New("invalid interval")

// TimeSlot is one weekly meeting of a section.
type TimeSlot struct {
	Day   Day   `json:"day"`
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewTimeSlot validates the day and requires start to come before end.
func NewTimeSlot(day Day, start, end Clock) (TimeSlot, error) {
	if !day.Valid() {
		return TimeSlot{}, fmt.Errorf("%w: %d", ErrInvalidDay, int(day))
	}
	if start >= end {
		return TimeSlot{}, fmt.Errorf("%w: %s %s-%s ends before it starts", ErrInvalidInterval, day, start, end)
	}
	return TimeSlot{Day: day, Start: start, End: end}, nil
}

// ParseTimeSlot builds a slot from the raw day and "HH:MM" strings of a course row.
func ParseTimeSlot(day, start, end string) (TimeSlot, error) {
	d, err := ParseDay(day)
	if err != nil {
		return TimeSlot{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(d, s, e)
}

// ConflictsWith reports whether both slots are on the same day and overlap.
// Back-to-back slots do not conflict.
func (t TimeSlot) ConflictsWith(other TimeSlot) bool {
	if t.Day != other.Day {
		return false
	}
	return !(t.End <= other.Start || other.End <= t.Start)
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", t.Day, t.Start, t.End)
}
