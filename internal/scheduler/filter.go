package scheduler

import "github.com/rhyrak/go-timetable/pkg/model"

// WithinRange reports whether every meeting starts and ends inside the window.
func WithinRange(s *model.Schedule, window model.Window) bool {
	for _, slot := range s.Slots() {
		if !window.Contains(slot.Start) || !window.Contains(slot.End) {
			return false
		}
	}
	return true
}

// JointWithinRange applies WithinRange to both students.
func JointWithinRange(j *model.JointSchedule, window model.Window) bool {
	return WithinRange(j.Person1, window) && WithinRange(j.Person2, window)
}

// FilterSchedules keeps the schedules that fit the window, in order.
func FilterSchedules(schedules []*model.Schedule, window model.Window) []*model.Schedule {
	out := make([]*model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if WithinRange(s, window) {
			out = append(out, s)
		}
	}
	return out
}

// FilterJointSchedules keeps the joint schedules that fit the window, in order.
func FilterJointSchedules(schedules []*model.JointSchedule, window model.Window) []*model.JointSchedule {
	out := make([]*model.JointSchedule, 0, len(schedules))
	for _, j := range schedules {
		if JointWithinRange(j, window) {
			out = append(out, j)
		}
	}
	return out
}
