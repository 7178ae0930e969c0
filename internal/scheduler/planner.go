package scheduler

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var ErrNoCourses = errors.New("at least one course code is required")

// PlanRequest is the input of a single-student planning call.
type PlanRequest struct {
	Courses   []string
	Rows      []*model.CourseRow
	Preferred model.PreferredSections
	Window    model.Window
	Order     Order
}

// PlanOutcome carries the ranked schedules that fit the window.
// Generated counts schedules before the window filter.
type PlanOutcome struct {
	Schedules []*model.Schedule
	Generated int
	Truncated bool
	Window    model.Window
	Report    *BuildReport
}

// Person is one student of a joint request.
type Person struct {
	Courses   []string
	Preferred model.PreferredSections
}

type JointPlanRequest struct {
	Person1 Person
	Person2 Person
	Rows    []*model.CourseRow
	Window  model.Window
}

type JointPlanOutcome struct {
	Schedules []*model.JointSchedule
	Generated int
	Truncated bool
	Window    model.Window
	Common    []string
	Reports   [2]*BuildReport
}

// Planner runs the grouping, search, filter and ranking steps.
type Planner struct {
	cfg *Configuration
	log *zap.Logger
	rec Recorder
}

func NewPlanner(cfg *Configuration, log *zap.Logger, rec Recorder) *Planner {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Planner{cfg: cfg, log: log, rec: rec}
}

func (p *Planner) window(w model.Window) model.Window {
	if w.IsZero() {
		return p.cfg.Window
	}
	return w
}

// Plan builds every schedule for one student.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanOutcome, error) {
	codes := model.NormalizeCodes(req.Courses)
	if len(codes) == 0 {
		return nil, ErrNoCourses
	}
	window := p.window(req.Window)

	courses, report := BuildCourses(codes, req.Rows, req.Preferred, p.log)
	p.rec.ObserveBuild(report)

	start := time.Now()
	var res *Result
	if len(courses) == 0 {
		res = &Result{Schedules: []*model.Schedule{}}
	} else {
		res = GenerateSchedules(ctx, courses, p.cfg.ScheduleLimit)
	}
	elapsed := time.Since(start)
	p.rec.ObserveSearch("single", len(res.Schedules), res.Truncated, elapsed)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schedules := FilterSchedules(res.Schedules, window)
	SortSchedules(schedules, req.Order)

	p.log.Info("single plan finished",
		zap.Strings("courses", codes),
		zap.Int("generated", len(res.Schedules)),
		zap.Int("kept", len(schedules)),
		zap.Bool("truncated", res.Truncated),
		zap.Duration("elapsed", elapsed))
	if res.Truncated {
		p.log.Warn("schedule limit reached, results truncated", zap.Int("limit", limitOrDefault(p.cfg.ScheduleLimit, DefaultScheduleLimit)))
	}

	return &PlanOutcome{
		Schedules: schedules,
		Generated: len(res.Schedules),
		Truncated: res.Truncated,
		Window:    window,
		Report:    report,
	}, nil
}

// CommonCourses returns the normalised codes requested by both students.
func CommonCourses(a, b []string) []string {
	other := model.NormalizeCodes(b)
	common := []string{}
	for _, code := range model.NormalizeCodes(a) {
		if slices.Contains(other, code) {
			common = append(common, code)
		}
	}
	return common
}

// PlanJoint builds joint schedules for two students. Courses both students
// request must be taken in the same section.
func (p *Planner) PlanJoint(ctx context.Context, req JointPlanRequest) (*JointPlanOutcome, error) {
	codes1 := model.NormalizeCodes(req.Person1.Courses)
	codes2 := model.NormalizeCodes(req.Person2.Courses)
	if len(codes1) == 0 && len(codes2) == 0 {
		return nil, ErrNoCourses
	}
	window := p.window(req.Window)

	courses1, report1 := BuildCourses(codes1, req.Rows, req.Person1.Preferred, p.log.With(zap.String("person", "person1")))
	courses2, report2 := BuildCourses(codes2, req.Rows, req.Person2.Preferred, p.log.With(zap.String("person", "person2")))
	p.rec.ObserveBuild(report1)
	p.rec.ObserveBuild(report2)
	common := CommonCourses(codes1, codes2)

	start := time.Now()
	var res *JointResult
	if len(courses1) == 0 && len(courses2) == 0 {
		res = &JointResult{Schedules: []*model.JointSchedule{}}
	} else {
		res = GenerateJointSchedules(ctx, courses1, courses2, common, p.cfg.JointLimit)
	}
	elapsed := time.Since(start)
	p.rec.ObserveSearch("joint", len(res.Schedules), res.Truncated, elapsed)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schedules := FilterJointSchedules(res.Schedules, window)
	SortJointSchedules(schedules)

	p.log.Info("joint plan finished",
		zap.Strings("person1", codes1),
		zap.Strings("person2", codes2),
		zap.Strings("common", common),
		zap.Int("generated", len(res.Schedules)),
		zap.Int("kept", len(schedules)),
		zap.Bool("truncated", res.Truncated),
		zap.Duration("elapsed", elapsed))
	if res.Truncated {
		p.log.Warn("joint schedule limit reached, results truncated", zap.Int("limit", limitOrDefault(p.cfg.JointLimit, DefaultJointLimit)))
	}

	return &JointPlanOutcome{
		Schedules: schedules,
		Generated: len(res.Schedules),
		Truncated: res.Truncated,
		Window:    window,
		Common:    common,
		Reports:   [2]*BuildReport{report1, report2},
	}, nil
}
