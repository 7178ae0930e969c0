package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func row(section, code, day, start, end string) *model.CourseRow {
	return &model.CourseRow{Section: section, CourseCode: code, Day: day, Start: start, End: end}
}

func sections(c *model.Course) []string {
	var out []string
	for _, o := range c.Options {
		out = append(out, o.Section)
	}
	return out
}

func TestBuildCoursesGroupsRowsBySection(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("2", "CS101", "MONDAY", "11:00", "12:00"),
		row("1", "cs 101", "WEDNESDAY", "09:00", "10:00"),
		row("1", "MA101", "TUESDAY", "09:00", "10:00"),
	}
	courses, report := BuildCourses([]string{"cs101", "MA 101"}, rows, nil, nil)

	require.Len(t, courses, 2)
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, []string{"1", "2"}, sections(courses[0]))
	assert.Len(t, courses[0].Options[0].Slots, 2)
	assert.Equal(t, "Section 1", courses[0].Options[0].Label)
	assert.Equal(t, "MA101", courses[1].Code)
	assert.Equal(t, 4, report.Used)
	assert.Zero(t, report.Skipped)
}

func TestBuildCoursesSkipsIncompleteAndUnrequestedRows(t *testing.T) {
	rows := []*model.CourseRow{
		row("", "CS101", "MONDAY", "09:00", "10:00"),
		row("1", "CS101", "", "09:00", "10:00"),
		row("1", "CS101", "MONDAY", "", "10:00"),
		row("1", "PH101", "MONDAY", "09:00", "10:00"),
		nil,
		row("3", "CS101", "FRIDAY", "13:00", "14:00"),
	}
	courses, report := BuildCourses([]string{"CS101"}, rows, nil, nil)

	require.Len(t, courses, 1)
	assert.Equal(t, []string{"3"}, sections(courses[0]))
	assert.Equal(t, 5, report.Skipped)
	assert.Equal(t, 1, report.Used)
}

func TestBuildCoursesDropsSelfConflictingSection(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("1", "CS101", "MONDAY", "09:30", "10:30"),
		row("2", "CS101", "TUESDAY", "09:00", "10:00"),
	}
	courses, report := BuildCourses([]string{"CS101"}, rows, nil, nil)

	require.Len(t, courses, 1)
	assert.Equal(t, []string{"2"}, sections(courses[0]))
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "1", report.Conflicts[0].Section)
	assert.Contains(t, report.String(), "dropped CS101 Section 1")
}

func TestBuildCoursesOmitsCourseWithoutValidSections(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("1", "MA101", "TUESDAY", "09:00", "10:00"),
	}
	courses, report := BuildCourses([]string{"CS101", "MA101", "PH101"}, rows, nil, nil)

	require.Len(t, courses, 1)
	assert.Equal(t, "MA101", courses[0].Code)
	assert.Equal(t, []string{"CS101", "PH101"}, report.Missing)
}

func TestBuildCoursesRejectsInvalidTimes(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "10:00", "09:00"),
		row("2", "CS101", "NOWHERE", "09:00", "10:00"),
		row("3", "CS101", "MONDAY", "9am", "10:00"),
		row("4", "CS101", "PAZARTESİ", "09:00", "10:00"),
	}
	courses, report := BuildCourses([]string{"CS101"}, rows, nil, nil)

	require.Len(t, courses, 1)
	assert.Equal(t, []string{"4"}, sections(courses[0]))
	assert.Equal(t, model.Monday, courses[0].Options[0].Slots[0].Day)
	assert.Len(t, report.Invalid, 3)
}

func TestBuildCoursesHonoursPreferredSections(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("2", "CS101", "MONDAY", "11:00", "12:00"),
		row("3", "CS101", "MONDAY", "13:00", "14:00"),
		row("1", "MA101", "TUESDAY", "09:00", "10:00"),
	}
	preferred := model.PreferredSections{"cs 101": {"2", " 3"}, "MA101": {}}
	courses, _ := BuildCourses([]string{"CS101", "MA101"}, rows, preferred, nil)

	require.Len(t, courses, 2)
	assert.Equal(t, []string{"2", "3"}, sections(courses[0]))
	assert.Equal(t, []string{"1"}, sections(courses[1]))
}

func TestBuildCoursesOptionsNeverSelfConflict(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("1", "CS101", "MONDAY", "10:00", "11:00"),
		row("2", "CS101", "MONDAY", "09:00", "11:00"),
		row("2", "CS101", "MONDAY", "10:30", "11:30"),
		row("3", "CS101", "THURSDAY", "15:00", "17:00"),
		row("3", "CS101", "FRIDAY", "15:00", "17:00"),
	}
	courses, _ := BuildCourses([]string{"CS101"}, rows, nil, nil)

	for _, c := range courses {
		for _, o := range c.Options {
			for i := range o.Slots {
				for j := i + 1; j < len(o.Slots); j++ {
					assert.False(t, o.Slots[i].ConflictsWith(o.Slots[j]))
				}
			}
		}
	}
}

func TestBuildCoursesIsIndependentOfRowOrder(t *testing.T) {
	rows := []*model.CourseRow{
		row("1", "CS101", "MONDAY", "09:00", "10:00"),
		row("2", "CS101", "TUESDAY", "11:00", "12:00"),
		row("1", "CS101", "WEDNESDAY", "09:00", "10:00"),
	}
	reversed := []*model.CourseRow{rows[2], rows[1], rows[0]}

	a, _ := BuildCourses([]string{"CS101"}, rows, nil, nil)
	b, _ := BuildCourses([]string{"CS101"}, reversed, nil, nil)

	asSet := func(courses []*model.Course) map[string][]model.TimeSlot {
		m := map[string][]model.TimeSlot{}
		for _, o := range courses[0].Options {
			m[o.Section] = o.Slots
		}
		return m
	}
	sa, sb := asSet(a), asSet(b)
	require.Len(t, sb, len(sa))
	for section, slots := range sa {
		assert.ElementsMatch(t, slots, sb[section])
	}
}
