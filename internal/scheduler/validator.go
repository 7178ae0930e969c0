package scheduler

import (
	"fmt"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Validate checks schedules for overlapping courses and meetings outside the window.
// Returns false and a message for invalid schedules.
func Validate(schedules []*model.Schedule, window model.Window) (bool, string) {
	var message string
	var hasCourseCollision bool = false
	var outOfRange bool = false

	for i, s := range schedules {
		if msg := collisions(s); msg != "" {
			hasCourseCollision = true
			message += fmt.Sprintf("- Program %d: %s", i+1, msg)
		}
		if !WithinRange(s, window) {
			outOfRange = true
			message += fmt.Sprintf("- Program %d has meetings outside %s\n", i+1, window)
		}
	}

	message = statusLine(!outOfRange, "Time window check") + message
	message = statusLine(!hasCourseCollision, "Course collision check") + message
	return !hasCourseCollision && !outOfRange, message
}

// ValidateJoint additionally checks that common courses share a section.
func ValidateJoint(schedules []*model.JointSchedule, common []string, window model.Window) (bool, string) {
	var message string
	var hasCourseCollision bool = false
	var outOfRange bool = false
	var sectionMismatch bool = false

	for i, j := range schedules {
		for person, s := range []*model.Schedule{j.Person1, j.Person2} {
			if msg := collisions(s); msg != "" {
				hasCourseCollision = true
				message += fmt.Sprintf("- Program %d person %d: %s", i+1, person+1, msg)
			}
		}
		if !JointWithinRange(j, window) {
			outOfRange = true
			message += fmt.Sprintf("- Program %d has meetings outside %s\n", i+1, window)
		}
		for _, code := range model.NormalizeCodes(common) {
			o1, ok1 := j.Person1.Get(code)
			o2, ok2 := j.Person2.Get(code)
			if ok1 && ok2 && o1.Label != o2.Label {
				sectionMismatch = true
				message += fmt.Sprintf("- Program %d: %s taken in %s and %s\n", i+1, code, o1.Label, o2.Label)
			}
		}
	}

	message = statusLine(!sectionMismatch, "Common section check") + message
	message = statusLine(!outOfRange, "Time window check") + message
	message = statusLine(!hasCourseCollision, "Course collision check") + message
	return !hasCourseCollision && !outOfRange && !sectionMismatch, message
}

func collisions(s *model.Schedule) string {
	var message string
	opts := s.Options()
	for a := 0; a < len(opts); a++ {
		for b := a + 1; b < len(opts); b++ {
			if opts[a].ConflictsWith(opts[b]) {
				message += fmt.Sprintf("%s %s conflicts with %s %s\n", opts[a].Course, opts[a].Label, opts[b].Course, opts[b].Label)
			}
		}
	}
	return message
}

func statusLine(ok bool, check string) string {
	if ok {
		return "[  OK]: " + check + ".\n"
	}
	return "[FAIL]: " + check + ".\n"
}
