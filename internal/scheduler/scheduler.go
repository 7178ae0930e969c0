package scheduler

import (
	"context"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Result holds the schedules found by a single-student search.
// Truncated is set when the limit stopped the search before the whole space
// was explored, so more schedules may exist.
type Result struct {
	Schedules []*model.Schedule
	Truncated bool
}

type search struct {
	ctx     context.Context
	courses []*model.Course
	limit   int
	current *model.Schedule
	result  *Result
	done    bool
}

// GenerateSchedules enumerates every conflict-free choice of one section per
// course, in course order, depth first. A course without options adds no
// constraint and no key. At most limit schedules are returned; limit <= 0
// selects DefaultScheduleLimit.
func GenerateSchedules(ctx context.Context, courses []*model.Course, limit int) *Result {
	s := &search{
		ctx:     ctx,
		courses: courses,
		limit:   limitOrDefault(limit, DefaultScheduleLimit),
		current: model.NewSchedule(),
		result:  &Result{Schedules: []*model.Schedule{}},
	}
	s.backtrack(0)
	return s.result
}

// halt is checked on every node. The limit itself is only enforced at a
// leaf, so Truncated means at least one schedule was left out.
func (s *search) halt() bool {
	if s.done {
		return true
	}
	if s.ctx.Err() != nil {
		s.result.Truncated = true
		s.done = true
	}
	return s.done
}

func (s *search) backtrack(index int) {
	if s.halt() {
		return
	}
	if index == len(s.courses) {
		if len(s.result.Schedules) >= s.limit {
			s.result.Truncated = true
			s.done = true
			return
		}
		s.result.Schedules = append(s.result.Schedules, s.current.Clone())
		return
	}

	course := s.courses[index]
	if course == nil || len(course.Options) == 0 {
		s.backtrack(index + 1)
		return
	}
	for _, option := range course.Options {
		if s.done {
			return
		}
		if s.current.ConflictsWith(option) {
			continue
		}
		s.current.Set(course.Code, option)
		s.backtrack(index + 1)
		s.current.Delete(course.Code)
	}
}
