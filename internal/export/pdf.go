package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	pageWidth   = 277.0
	timeColumn  = 16.0
	gridHeight  = 140.0
	headerRow   = 7.0
	slotMinutes = 30
)

var errNilSchedule = errors.New("pdf requires a schedule")

// palette cycles fill colours per course.
var palette = [][3]int{
	{174, 198, 232}, {255, 187, 120}, {152, 223, 138}, {255, 152, 150},
	{197, 176, 213}, {196, 156, 148}, {247, 182, 210}, {219, 219, 141},
}

// PDFExporter renders schedules as a weekly grid followed by a course list.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderSchedule creates a one student timetable document.
func (e *PDFExporter) RenderSchedule(s *model.Schedule, title string) ([]byte, error) {
	if s == nil {
		return nil, errNilSchedule
	}
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	drawPage(pdf, tr, s, title)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Free days: %s    Free blocks: %d", dayList(scheduler.FreeDays(s)), scheduler.FreeBlocks(s))), "", 1, "", false, 0, "")
	drawCourseList(pdf, tr, s)

	return output(pdf)
}

// RenderJoint puts each student on its own page and the shared free time on the last one.
func (e *PDFExporter) RenderJoint(j *model.JointSchedule, common []string, title string) ([]byte, error) {
	if j == nil || j.Person1 == nil || j.Person2 == nil {
		return nil, errNilSchedule
	}
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	drawPage(pdf, tr, j.Person1, strings.TrimSpace(title+" - Person 1"))
	drawCourseList(pdf, tr, j.Person1)
	drawPage(pdf, tr, j.Person2, strings.TrimSpace(title+" - Person 2"))
	drawCourseList(pdf, tr, j.Person2)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, "Together", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if len(common) > 0 {
		pdf.CellFormat(0, 6, tr("Common courses: "+strings.Join(common, ", ")), "", 1, "", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Common free days: "+dayList(scheduler.CommonFreeDays(j.Person1, j.Person2))), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Common free blocks: %d", scheduler.CommonFreeBlocks(j.Person1, j.Person2)), "", 1, "", false, 0, "")

	return output(pdf)
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetCreator("go-timetable", false)
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// gridBounds widens the default day to cover every meeting, on whole hours.
func gridBounds(s *model.Schedule) (model.Clock, model.Clock) {
	from, to := model.BlockDayStart, model.BlockDayEnd
	for _, slot := range s.Slots() {
		from = min(from, slot.Start/60*60)
		to = max(to, (slot.End+59)/60*60)
	}
	return from, to
}

func gridDays(s *model.Schedule) []model.Day {
	days := append([]model.Day{}, model.Weekdays...)
	for _, d := range []model.Day{model.Saturday, model.Sunday} {
		for _, slot := range s.Slots() {
			if slot.Day == d {
				days = append(days, d)
				break
			}
		}
	}
	return days
}

func drawPage(pdf *gofpdf.Fpdf, tr func(string) string, s *model.Schedule, title string) {
	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	days := gridDays(s)
	from, to := gridBounds(s)
	rows := int(to-from) / slotMinutes
	rowHeight := gridHeight / float64(rows)
	colWidth := (pageWidth - timeColumn) / float64(len(days))
	left, top := pdf.GetX(), pdf.GetY()

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(timeColumn, headerRow, "", "1", 0, "C", false, 0, "")
	for _, d := range days {
		pdf.CellFormat(colWidth, headerRow, d.Title(), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for r := 0; r < rows; r++ {
		label := ""
		if r%2 == 0 {
			label = (from + model.Clock(r*slotMinutes)).String()
		}
		pdf.CellFormat(timeColumn, rowHeight, label, "1", 0, "C", false, 0, "")
		for range days {
			pdf.CellFormat(colWidth, rowHeight, "", "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	gridTop := top + headerRow
	for i, opt := range s.Options() {
		c := palette[i%len(palette)]
		pdf.SetFillColor(c[0], c[1], c[2])
		for _, slot := range opt.Slots {
			col := -1
			for k, d := range days {
				if d == slot.Day {
					col = k
				}
			}
			if col < 0 {
				continue
			}
			x := left + timeColumn + float64(col)*colWidth
			y := gridTop + float64(slot.Start-from)/slotMinutes*rowHeight
			h := float64(slot.End-slot.Start) / slotMinutes * rowHeight
			pdf.Rect(x+0.5, y, colWidth-1, h, "F")
			pdf.SetXY(x+0.5, y+0.5)
			pdf.SetFont("Arial", "B", 7)
			pdf.CellFormat(colWidth-1, 3.5, tr(opt.Course), "", 2, "C", false, 0, "")
			pdf.SetFont("Arial", "", 6)
			pdf.CellFormat(colWidth-1, 3, tr(fmt.Sprintf("%s  %s-%s", opt.Label, slot.Start, slot.End)), "", 0, "C", false, 0, "")
		}
	}
	pdf.SetXY(left, gridTop+gridHeight+2)
}

func drawCourseList(pdf *gofpdf.Fpdf, tr func(string) string, s *model.Schedule) {
	headers := []string{"Course", "Section", "Meetings"}
	widths := []float64{35, 35, pageWidth - 70}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, opt := range s.Options() {
		meetings := make([]string, len(opt.Slots))
		for i, slot := range opt.Slots {
			meetings[i] = fmt.Sprintf("%s %s-%s", slot.Day.Title(), slot.Start, slot.End)
		}
		pdf.CellFormat(widths[0], 6, tr(opt.Course), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(opt.Label), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(strings.Join(meetings, ", ")), "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}
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
