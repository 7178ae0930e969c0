package scheduler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Diagnostic describes a row or section that was left out while grouping.
type Diagnostic struct {
	Course  string `json:"course"`
	Section string `json:"section"`
	Message string `json:"message"`
}

// BuildReport summarises what BuildCourses did with its input.
type BuildReport struct {
	Rows      int          `json:"rows"`
	Used      int          `json:"used"`
	Skipped   int          `json:"skipped"`
	Invalid   []Diagnostic `json:"invalid,omitempty"`
	Conflicts []Diagnostic `json:"conflicts,omitempty"`
	Missing   []string     `json:"missing,omitempty"`
}

func (r *BuildReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Rows: %d read, %d used, %d skipped\n", r.Rows, r.Used, r.Skipped)
	for _, d := range r.Invalid {
		fmt.Fprintf(&b, "    invalid row %s %s: %s\n", d.Course, d.Section, d.Message)
	}
	for _, d := range r.Conflicts {
		fmt.Fprintf(&b, "    dropped %s %s: %s\n", d.Course, model.SectionLabel(d.Section), d.Message)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "- No usable section for: %s\n", strings.Join(r.Missing, ", "))
	}
	return b.String()
}

type sectionGroup struct {
	order []string
	slots map[string][]model.TimeSlot
}

// BuildCourses groups course rows into one Course per requested code.
// Rows that are incomplete, not requested, or excluded by preferred sections
// are skipped. Sections whose own meetings overlap are dropped, and codes left
// without a section are omitted from the result and listed in the report.
func BuildCourses(codes []string, rows []*model.CourseRow, preferred model.PreferredSections, log *zap.Logger) ([]*model.Course, *BuildReport) {
	if log == nil {
		log = zap.NewNop()
	}
	report := &BuildReport{Rows: len(rows)}
	requested := model.NormalizeCodes(codes)
	prefs := preferred.Normalize()

	grouped := make(map[string]*sectionGroup, len(requested))
	for _, code := range requested {
		grouped[code] = &sectionGroup{slots: make(map[string][]model.TimeSlot)}
	}

	for _, row := range rows {
		if row == nil || !row.Complete() {
			report.Skipped++
			continue
		}
		code := model.NormalizeCode(row.CourseCode)
		group, ok := grouped[code]
		if !ok {
			report.Skipped++
			continue
		}
		section := strings.TrimSpace(row.Section)
		if !prefs.Allows(code, section) {
			report.Skipped++
			continue
		}
		slot, err := model.ParseTimeSlot(row.Day, row.Start, row.End)
		if err != nil {
			report.Skipped++
			report.Invalid = append(report.Invalid, Diagnostic{Course: code, Section: section, Message: err.Error()})
			log.Warn("invalid course row", zap.String("course", code), zap.String("section", section), zap.Error(err))
			continue
		}
		if _, seen := group.slots[section]; !seen {
			group.order = append(group.order, section)
		}
		group.slots[section] = append(group.slots[section], slot)
		report.Used++
	}

	courses := make([]*model.Course, 0, len(requested))
	for _, code := range requested {
		group := grouped[code]
		var options []*model.SectionOption
		for _, section := range group.order {
			opt := model.NewSectionOption(code, section, group.slots[section])
			if s1, s2, bad := opt.SelfConflict(); bad {
				msg := fmt.Sprintf("%s overlaps %s", s1, s2)
				report.Conflicts = append(report.Conflicts, Diagnostic{Course: code, Section: section, Message: msg})
				log.Warn("section conflicts with itself",
					zap.String("course", code),
					zap.String("section", section),
					zap.Stringer("slot", s1),
					zap.Stringer("other", s2))
				continue
			}
			options = append(options, opt)
		}
		if len(options) == 0 {
			report.Missing = append(report.Missing, code)
			continue
		}
		courses = append(courses, &model.Course{Code: code, Options: options})
	}
	return courses, report
}
