package model

import (
	"strings"
	"unicode"
)

// CourseRow is one meeting line of a published course table.
type CourseRow struct {
	Seq        string `csv:"Seq" json:"seq"`
	Section    string `csv:"Section" json:"section"`
	CourseCode string `csv:"Course_Code" json:"courseCode"`
	Day        string `csv:"Day" json:"day"`
	Start      string `csv:"Start_Time" json:"start"`
	End        string `csv:"End_Time" json:"end"`
	Room       string `csv:"Room" json:"room"`
}

// RowFields is the number of fields a positional row must carry to be usable.
// The trailing room field is optional.
const RowFields = 6

// RowFromFields reads a positional row
// (seq, section, code, day, start, end[, room]).
// Returns false for rows that are too short.
func RowFromFields(fields []string) (*CourseRow, bool) {
	if len(fields) < RowFields {
		return nil, false
	}
	row := &CourseRow{
		Seq:        fields[0],
		Section:    fields[1],
		CourseCode: fields[2],
		Day:        fields[3],
		Start:      fields[4],
		End:        fields[5],
	}
	if len(fields) > RowFields {
		row.Room = fields[6]
	}
	return row, true
}

// Complete reports whether section, code, day, start and end are all set.
func (r *CourseRow) Complete() bool {
	return strings.TrimSpace(r.Section) != "" &&
		strings.TrimSpace(r.CourseCode) != "" &&
		strings.TrimSpace(r.Day) != "" &&
		strings.TrimSpace(r.Start) != "" &&
		strings.TrimSpace(r.End) != ""
}

// Course is a requested course and the sections it can be taken in.
type Course struct {
	Code    string           `json:"code"`
	Options []*SectionOption `json:"options"`
}

// NormalizeCode uppercases a course code and drops all whitespace, so
// "cs 101" and "CS101" name the same course.
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NormalizeCodes normalises a list of codes, dropping blanks and duplicates
// while keeping the first-seen order.
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		n := NormalizeCode(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
