package server

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// RowInput accepts a course row either as an object or as a positional array
// of seq, section, code, day, start and end with an optional room.
type RowInput struct {
	Row *model.CourseRow
}

func (r *RowInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var fields []string
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		// Short rows stay nil and are skipped while building courses.
		r.Row, _ = model.RowFromFields(fields)
		return nil
	}
	var row model.CourseRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	r.Row = &row
	return nil
}

func (r RowInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Row)
}

func courseRows(in []RowInput) []*model.CourseRow {
	rows := make([]*model.CourseRow, len(in))
	for i, r := range in {
		rows[i] = r.Row
	}
	return rows
}

// PlanRequest is the body of POST /plan. Rows default to the course table
// loaded at startup.
type PlanRequest struct {
	Courses   []string            `json:"courses" validate:"required,min=1,max=50,dive,max=32"`
	Rows      []RowInput          `json:"rows"`
	Preferred map[string][]string `json:"preferred" validate:"omitempty,max=50"`
	Start     string              `json:"start" validate:"omitempty,clock"`
	End       string              `json:"end" validate:"omitempty,clock"`
	Order     string              `json:"order" validate:"omitempty,oneof=search free-days free-blocks"`
}

type PersonRequest struct {
	Courses   []string            `json:"courses" validate:"max=50,dive,max=32"`
	Preferred map[string][]string `json:"preferred" validate:"omitempty,max=50"`
}

// JointPlanRequest is the body of POST /plan/joint.
type JointPlanRequest struct {
	Person1 PersonRequest `json:"person1"`
	Person2 PersonRequest `json:"person2"`
	Rows    []RowInput    `json:"rows"`
	Start   string        `json:"start" validate:"omitempty,clock"`
	End     string        `json:"end" validate:"omitempty,clock"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", clockValidation)
	return v
}

func clockValidation(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}

// parseWindow returns the zero window, meaning the configured default, when
// both ends are empty. A single empty end takes the default day bound.
func parseWindow(start, end string) (model.Window, error) {
	if start == "" && end == "" {
		return model.Window{}, nil
	}
	if start == "" {
		start = model.BlockDayStart.String()
	}
	if end == "" {
		end = model.BlockDayEnd.String()
	}
	return model.ParseWindow(start, end)
}

type scheduleDTO struct {
	Index      int             `json:"index"`
	Options    *model.Schedule `json:"options"`
	FreeDays   []model.Day     `json:"free_days"`
	FreeBlocks int             `json:"free_blocks"`
}

func newScheduleDTO(index int, s *model.Schedule) scheduleDTO {
	return scheduleDTO{
		Index:      index,
		Options:    s,
		FreeDays:   scheduler.FreeDays(s),
		FreeBlocks: scheduler.FreeBlocks(s),
	}
}

type jointScheduleDTO struct {
	Index            int             `json:"index"`
	Person1          *model.Schedule `json:"person1"`
	Person2          *model.Schedule `json:"person2"`
	CommonFreeDays   []model.Day     `json:"common_free_days"`
	CommonFreeBlocks int             `json:"common_free_blocks"`
}

func newJointScheduleDTO(index int, j *model.JointSchedule) jointScheduleDTO {
	return jointScheduleDTO{
		Index:            index,
		Person1:          j.Person1,
		Person2:          j.Person2,
		CommonFreeDays:   scheduler.CommonFreeDays(j.Person1, j.Person2),
		CommonFreeBlocks: scheduler.CommonFreeBlocks(j.Person1, j.Person2),
	}
}
