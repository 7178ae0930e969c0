package scheduler

import (
	"context"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// JointResult holds the joint schedules found for two students.
type JointResult struct {
	Schedules []*model.JointSchedule
	Truncated bool
}

type jointSearch struct {
	ctx    context.Context
	codes  []string
	p1, p2 map[string]*model.Course
	common map[string]bool
	limit  int
	left   *model.Schedule
	right  *model.Schedule
	result *JointResult
	done   bool
}

// GenerateJointSchedules searches both students' courses at once. Each code of
// the union is assigned independently per student, a student who does not
// take the code stays unassigned, and a common code taken by both must resolve
// to the same section label. limit <= 0 selects DefaultJointLimit.
func GenerateJointSchedules(ctx context.Context, p1, p2 []*model.Course, common []string, limit int) *JointResult {
	s := &jointSearch{
		ctx:    ctx,
		p1:     indexCourses(p1),
		p2:     indexCourses(p2),
		common: make(map[string]bool, len(common)),
		limit:  limitOrDefault(limit, DefaultJointLimit),
		left:   model.NewSchedule(),
		right:  model.NewSchedule(),
		result: &JointResult{Schedules: []*model.JointSchedule{}},
	}
	for _, c := range common {
		s.common[model.NormalizeCode(c)] = true
	}
	s.codes = unionCodes(p1, p2)
	s.backtrack(0)
	return s.result
}

// indexCourses keys courses by code. Courses without options are left out so
// they never enter the union.
func indexCourses(courses []*model.Course) map[string]*model.Course {
	m := make(map[string]*model.Course, len(courses))
	for _, c := range courses {
		if c == nil || len(c.Options) == 0 {
			continue
		}
		if _, ok := m[c.Code]; !ok {
			m[c.Code] = c
		}
	}
	return m
}

func unionCodes(lists ...[]*model.Course) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, list := range lists {
		for _, c := range list {
			if c == nil || len(c.Options) == 0 || seen[c.Code] {
				continue
			}
			seen[c.Code] = true
			codes = append(codes, c.Code)
		}
	}
	return codes
}

func candidates(course *model.Course) []model.Assignment {
	if course == nil {
		return []model.Assignment{model.Unassigned}
	}
	out := make([]model.Assignment, len(course.Options))
	for i, opt := range course.Options {
		out[i] = model.Assigned(opt)
	}
	return out
}

func (s *jointSearch) halt() bool {
	if s.done {
		return true
	}
	if s.ctx.Err() != nil {
		s.result.Truncated = true
		s.done = true
	}
	return s.done
}

func (s *jointSearch) backtrack(index int) {
	if s.halt() {
		return
	}
	if index == len(s.codes) {
		if len(s.result.Schedules) >= s.limit {
			s.result.Truncated = true
			s.done = true
			return
		}
		s.result.Schedules = append(s.result.Schedules, &model.JointSchedule{
			Person1: s.left.Clone(),
			Person2: s.right.Clone(),
		})
		return
	}

	code := s.codes[index]
	isCommon := s.common[code]
	for _, a1 := range candidates(s.p1[code]) {
		opt1, ok1 := a1.Option()
		if ok1 && s.left.ConflictsWith(opt1) {
			continue
		}
		for _, a2 := range candidates(s.p2[code]) {
			if s.done {
				return
			}
			opt2, ok2 := a2.Option()
			if ok2 && s.right.ConflictsWith(opt2) {
				continue
			}
			if !ok1 && !ok2 {
				continue
			}
			if isCommon && ok1 && ok2 && opt1.Label != opt2.Label {
				continue
			}

			if ok1 {
				s.left.Set(code, opt1)
			}
			if ok2 {
				s.right.Set(code, opt2)
			}
			s.backtrack(index + 1)
			if ok1 {
				s.left.Delete(code)
			}
			if ok2 {
				s.right.Delete(code)
			}
		}
	}
}
