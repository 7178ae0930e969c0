package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func TestReadCourseRowsWithHeader(t *testing.T) {
	in := "Seq;Section;Course_Code;Day;Start_Time;End_Time;Room\n" +
		"1;1;CS101;MONDAY;09:00;10:00;A101\n" +
		"2;2;CS101;Salı;9:00;10:00\n"

	rows, err := ReadCourseRows(strings.NewReader(in), ';')
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, &model.CourseRow{Seq: "1", Section: "1", CourseCode: "CS101", Day: "MONDAY", Start: "09:00", End: "10:00", Room: "A101"}, rows[0])
	assert.Equal(t, "Salı", rows[1].Day)
	assert.Equal(t, "9:00", rows[1].Start)
	assert.Empty(t, rows[1].Room)
}

func TestReadCourseRowsPositional(t *testing.T) {
	in := "\xef\xbb\xbf1,1,CS101,MONDAY,09:00,10:00\n" +
		"2,1,MA101,TUESDAY\n" +
		"3,2,CS101,WEDNESDAY,11:00,12:00,B2\n"

	rows, err := ReadCourseRows(strings.NewReader(in), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2, "short rows are dropped")
	assert.Equal(t, "1", rows[0].Seq)
	assert.Equal(t, "B2", rows[1].Room)
}

func TestReadCourseRowsEmpty(t *testing.T) {
	rows, err := ReadCourseRows(strings.NewReader(""), ';')
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadCourseRowsMissingFile(t *testing.T) {
	_, err := LoadCourseRows(filepath.Join(t.TempDir(), "nope.csv"), ';')
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPreferred(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferred.csv")
	require.NoError(t, os.WriteFile(path, []byte("Course_Code;Section\ncs 101;2\nCS101;3\nMA101;\n"), 0o644))

	preferred, err := LoadPreferred(path, ';')
	require.NoError(t, err)
	assert.Equal(t, model.PreferredSections{"CS101": {"2", "3"}}, preferred)

	none, err := LoadPreferred("", ';')
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSchedule(t *testing.T) *model.Schedule {
	t.Helper()
	s := model.NewSchedule()
	mon, err := model.ParseTimeSlot("MONDAY", "11:00", "12:00")
	require.NoError(t, err)
	tue, err := model.ParseTimeSlot("TUESDAY", "09:00", "10:00")
	require.NoError(t, err)
	early, err := model.ParseTimeSlot("MONDAY", "09:00", "10:00")
	require.NoError(t, err)
	s.Set("CS101", model.NewSectionOption("CS101", "1", []model.TimeSlot{mon, tue}))
	s.Set("MA101", model.NewSectionOption("MA101", "2", []model.TimeSlot{early}))
	return s
}

func TestExportSchedules(t *testing.T) {
	s := testSchedule(t)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportSchedules([]*model.Schedule{s, s}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "program,person,course_code,section,day,start,end", lines[0])
	assert.Equal(t, "1,,CS101,1,MONDAY,11:00,12:00", lines[1])
	assert.Equal(t, "2,,MA101,2,MONDAY,09:00,10:00", lines[6])
}

func TestExportJointSchedulesString(t *testing.T) {
	s := testSchedule(t)
	out, err := ExportJointSchedulesString([]*model.JointSchedule{{Person1: s, Person2: model.NewSchedule()}})
	require.NoError(t, err)
	assert.Contains(t, out, "1,person1,CS101,1,TUESDAY,09:00,10:00")
	assert.NotContains(t, out, "person2")

	out, err = ExportSchedulesString([]*model.Schedule{s})
	require.NoError(t, err)
	assert.Contains(t, out, "1,,MA101,2,MONDAY,09:00,10:00")
}

func TestPrintSchedule(t *testing.T) {
	var buf bytes.Buffer
	PrintSchedule(&buf, testSchedule(t), 1)
	out := buf.String()

	assert.Contains(t, out, " Program 1 ")
	assert.Less(t, strings.Index(out, "MA101"), strings.Index(out, "CS101"), "meetings are ordered by day and time")
	assert.Contains(t, out, "Printed rows: 3")
	assert.Contains(t, out, "Free days: Wednesday, Thursday, Friday")
	assert.Contains(t, out, "Free blocks: 21")
}

func TestPrintJointSchedule(t *testing.T) {
	var buf bytes.Buffer
	PrintJointSchedule(&buf, &model.JointSchedule{Person1: testSchedule(t), Person2: model.NewSchedule()}, 3)
	out := buf.String()

	assert.Contains(t, out, "Person 1")
	assert.Contains(t, out, "Person 2")
	assert.Contains(t, out, "Common free days: Wednesday, Thursday, Friday")
}
