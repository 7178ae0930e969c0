package model

import "strings"

// SectionOption is one offering of a course: a section and its weekly meetings.
type SectionOption struct {
	Course  string     `json:"course"`
	Section string     `json:"section"`
	Label   string     `json:"label"`
	Slots   []TimeSlot `json:"slots"`
}

// SectionLabel turns a raw section identifier into a display label.
func SectionLabel(section string) string {
	return "Section " + section
}

func NewSectionOption(course string, section string, slots []TimeSlot) *SectionOption {
	return &SectionOption{
		Course:  course,
		Section: section,
		Label:   SectionLabel(section),
		Slots:   slots,
	}
}

// ConflictsWith checks every pair of slots and stops at the first overlap.
func (o *SectionOption) ConflictsWith(other *SectionOption) bool {
	for _, s1 := range o.Slots {
		for _, s2 := range other.Slots {
			if s1.ConflictsWith(s2) {
				return true
			}
		}
	}
	return false
}

// SelfConflict returns the first pair of the option's own slots that overlap.
func (o *SectionOption) SelfConflict() (TimeSlot, TimeSlot, bool) {
	for i := 0; i < len(o.Slots); i++ {
		for j := i + 1; j < len(o.Slots); j++ {
			if o.Slots[i].ConflictsWith(o.Slots[j]) {
				return o.Slots[i], o.Slots[j], true
			}
		}
	}
	return TimeSlot{}, TimeSlot{}, false
}

func (o *SectionOption) String() string {
	parts := make([]string, len(o.Slots))
	for i, s := range o.Slots {
		parts[i] = s.String()
	}
	return o.Label + ": [" + strings.Join(parts, ", ") + "]"
}
