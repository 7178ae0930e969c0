package scheduler

import (
	"time"

	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	DefaultScheduleLimit = 1000
	DefaultJointLimit    = 500
	DefaultPageSize      = 20
)

type Configuration struct {
	CoursesFile   string
	PreferredFile string
	ExportFile    string
	Delimiter     rune
	ScheduleLimit int
	JointLimit    int
	PageSize      int
	Window        model.Window
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CoursesFile:   "./res/courses.csv",
		PreferredFile: "",
		ExportFile:    "schedules.csv",
		Delimiter:     ';',
		ScheduleLimit: DefaultScheduleLimit,
		JointLimit:    DefaultJointLimit,
		PageSize:      DefaultPageSize,
		Window:        model.Window{Start: model.BlockDayStart, End: model.BlockDayEnd},
	}
}

// Recorder receives search statistics. Implemented by the Prometheus sink.
type Recorder interface {
	ObserveSearch(mode string, results int, truncated bool, elapsed time.Duration)
	ObserveBuild(report *BuildReport)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) ObserveSearch(string, int, bool, time.Duration) {}
func (NopRecorder) ObserveBuild(*BuildReport)                     {}

func limitOrDefault(limit int, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
