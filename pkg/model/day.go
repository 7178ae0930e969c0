package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDay = errors.New("invalid day")

// Day is a day of the week, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of Day values.
const DaysInWeek = 7

// Weekdays is the domain of the free day concept.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

var dayNames = [DaysInWeek]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// Course lists are published in English or Turkish.
var dayAliases = map[string]Day{
	"MON": Monday, "TUE": Tuesday, "TUES": Tuesday, "WED": Wednesday, "THU": Thursday, "THUR": Thursday,
	"THURS": Thursday, "FRI": Friday, "SAT": Saturday, "SUN": Sunday,
	"PAZARTESİ": Monday, "PAZARTESI": Monday, "SALI": Tuesday, "ÇARŞAMBA": Wednesday, "CARSAMBA": Wednesday,
	"PERŞEMBE": Thursday, "PERSEMBE": Thursday, "CUMA": Friday, "CUMARTESİ": Saturday, "CUMARTESI": Saturday,
	"PAZAR": Sunday,
}

func init() {
	for i, name := range dayNames {
		dayAliases[name] = Day(i)
	}
}

// ParseDay resolves an English or Turkish day name, case-insensitively.
func ParseDay(s string) (Day, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if d, ok := dayAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Title returns the day name with only the first letter capitalised.
func (d Day) Title() string {
	s := d.String()
	return s[:1] + strings.ToLower(s[1:])
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
