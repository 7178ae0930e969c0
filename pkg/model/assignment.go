package model

// Assignment is the choice made for one course of one student in a joint
// search: either a section option or nothing, when the student does not take
// the course.
type Assignment struct {
	option *SectionOption
}

// Unassigned is the assignment of a course the student does not take.
var Unassigned = Assignment{}

func Assigned(opt *SectionOption) Assignment {
	return Assignment{option: opt}
}

// Option returns the assigned option, or false for Unassigned.
func (a Assignment) Option() (*SectionOption, bool) {
	return a.option, a.option != nil
}

func (a Assignment) IsAssigned() bool {
	return a.option != nil
}
