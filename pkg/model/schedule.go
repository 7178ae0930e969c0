package model

import (
	"encoding/json"
	"slices"
)

// Schedule assigns one section option to each course code. Codes are unique
// and keep the order they were first set in.
type Schedule struct {
	codes   []string
	options map[string]*SectionOption
}

type ScheduleCSVRow struct {
	Program    int    `csv:"program"`
	Person     string `csv:"person"`
	CourseCode string `csv:"course_code"`
	Section    string `csv:"section"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
}

/* NewSchedule creates an empty schedule. */
func NewSchedule() *Schedule {
	return &Schedule{options: make(map[string]*SectionOption)}
}

// Set assigns opt to code. An existing assignment is replaced in place.
func (s *Schedule) Set(code string, opt *SectionOption) {
	if _, ok := s.options[code]; !ok {
		s.codes = append(s.codes, code)
	}
	s.options[code] = opt
}

func (s *Schedule) Get(code string) (*SectionOption, bool) {
	if s == nil {
		return nil, false
	}
	opt, ok := s.options[code]
	return opt, ok
}

func (s *Schedule) Delete(code string) {
	if _, ok := s.options[code]; !ok {
		return
	}
	delete(s.options, code)
	if i := slices.Index(s.codes, code); i >= 0 {
		s.codes = slices.Delete(s.codes, i, i+1)
	}
}

func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.codes)
}

// Codes returns the course codes in assignment order.
func (s *Schedule) Codes() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.codes)
}

// Options returns the assigned options in assignment order.
func (s *Schedule) Options() []*SectionOption {
	if s == nil {
		return nil
	}
	out := make([]*SectionOption, len(s.codes))
	for i, c := range s.codes {
		out[i] = s.options[c]
	}
	return out
}

// Clone copies the association. Options are shared; they are never mutated.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return NewSchedule()
	}
	c := &Schedule{
		codes:   slices.Clone(s.codes),
		options: make(map[string]*SectionOption, len(s.options)),
	}
	for k, v := range s.options {
		c.options[k] = v
	}
	return c
}

// ConflictsWith reports whether opt overlaps any option already assigned.
func (s *Schedule) ConflictsWith(opt *SectionOption) bool {
	for _, c := range s.codes {
		if opt.ConflictsWith(s.options[c]) {
			return true
		}
	}
	return false
}

// Slots returns every meeting of the schedule.
func (s *Schedule) Slots() []TimeSlot {
	var slots []TimeSlot
	for _, opt := range s.Options() {
		slots = append(slots, opt.Slots...)
	}
	return slots
}

// MarshalJSON encodes the schedule as an ordered list of options.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	opts := s.Options()
	if opts == nil {
		opts = []*SectionOption{}
	}
	return json.Marshal(opts)
}

// CSVRows flattens the schedule into one row per meeting.
func (s *Schedule) CSVRows(program int, person string) []*ScheduleCSVRow {
	var rows []*ScheduleCSVRow
	for _, opt := range s.Options() {
		for _, slot := range opt.Slots {
			rows = append(rows, &ScheduleCSVRow{
				Program:    program,
				Person:     person,
				CourseCode: opt.Course,
				Section:    opt.Section,
				Day:        slot.Day.String(),
				Start:      slot.Start.String(),
				End:        slot.End.String(),
			})
		}
	}
	return rows
}

// JointSchedule is a pair of schedules, one per student.
type JointSchedule struct {
	Person1 *Schedule `json:"person1"`
	Person2 *Schedule `json:"person2"`
}
