package csvio

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	person1 = "person1"
	person2 = "person2"
)

func scheduleRows(schedules []*model.Schedule) []*model.ScheduleCSVRow {
	rows := []*model.ScheduleCSVRow{}
	for i, s := range schedules {
		rows = append(rows, s.CSVRows(i+1, "")...)
	}
	return rows
}

func jointRows(schedules []*model.JointSchedule) []*model.ScheduleCSVRow {
	rows := []*model.ScheduleCSVRow{}
	for i, j := range schedules {
		rows = append(rows, j.Person1.CSVRows(i+1, person1)...)
		rows = append(rows, j.Person2.CSVRows(i+1, person2)...)
	}
	return rows
}

func writeFile(rows []*model.ScheduleCSVRow, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportSchedules writes one row per meeting of every schedule to the CSV file
// at path. Programs are numbered from 1.
func ExportSchedules(schedules []*model.Schedule, path string) error {
	return writeFile(scheduleRows(schedules), path)
}

// ExportJointSchedules is ExportSchedules for joint results; the person column
// tells the two students apart.
func ExportJointSchedules(schedules []*model.JointSchedule, path string) error {
	return writeFile(jointRows(schedules), path)
}

func ExportSchedulesString(schedules []*model.Schedule) (string, error) {
	rows := scheduleRows(schedules)
	return gocsv.MarshalString(&rows)
}

func ExportJointSchedulesString(schedules []*model.JointSchedule) (string, error) {
	rows := jointRows(schedules)
	return gocsv.MarshalString(&rows)
}

// PrintSchedule prints a weekly schedule ordered by day and start time,
// followed by its free days and free blocks.
func PrintSchedule(w io.Writer, s *model.Schedule, program int) {
	printHeader(w, fmt.Sprintf("Program %d", program))
	printMeetings(w, s)
	fmt.Fprintf(w, "Free days: %s\n", dayList(scheduler.FreeDays(s)))
	fmt.Fprintf(w, "Free blocks: %d\n", scheduler.FreeBlocks(s))
}

// PrintJointSchedule prints both students' schedules and what they share.
func PrintJointSchedule(w io.Writer, j *model.JointSchedule, program int) {
	printHeader(w, fmt.Sprintf("Program %d", program))
	fmt.Fprintln(w, "Person 1")
	printMeetings(w, j.Person1)
	fmt.Fprintln(w, "Person 2")
	printMeetings(w, j.Person2)
	fmt.Fprintf(w, "Common free days: %s\n", dayList(scheduler.CommonFreeDays(j.Person1, j.Person2)))
	fmt.Fprintf(w, "Common free blocks: %d\n", scheduler.CommonFreeBlocks(j.Person1, j.Person2))
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(title))/2), title, strings.Repeat("-", int(0.5+(32-float32(len(title)))/2.0)))
}

type meeting struct {
	slot   model.TimeSlot
	course string
	label  string
}

func printMeetings(w io.Writer, s *model.Schedule) {
	var meetings []meeting
	for _, opt := range s.Options() {
		for _, slot := range opt.Slots {
			meetings = append(meetings, meeting{slot: slot, course: opt.Course, label: opt.Label})
		}
	}
	slices.SortStableFunc(meetings, func(a, b meeting) int {
		if day := int(a.slot.Day) - int(b.slot.Day); day != 0 {
			return day
		}
		if start := int(a.slot.Start) - int(b.slot.Start); start != 0 {
			return start
		}
		return strings.Compare(a.course, b.course)
	})
	for _, m := range meetings {
		fmt.Fprintf(w, "%-12s %s-%s   %-11s %s\n", m.slot.Day.Title(), m.slot.Start, m.slot.End, m.course, m.label)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(meetings))
}

func dayList(days []model.Day) string {
	if len(days) == 0 {
		return "none"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Title()
	}
	return strings.Join(names, ", ")
}
