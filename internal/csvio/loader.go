package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var utf8BOM = []byte("\xef\xbb\xbf")

func newReader(in io.Reader, delim rune) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	return r
}

// ReadCourseRows parses a course table. Files with a header line are mapped by
// column name, header-less files positionally as
// seq, section, code, day, start, end[, room]. Positional rows with fewer
// than six fields are dropped.
func ReadCourseRows(in io.Reader, delim rune) ([]*model.CourseRow, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	first, err := newReader(bytes.NewReader(data), delim).Read()
	if errors.Is(err, io.EOF) {
		return []*model.CourseRow{}, nil
	}
	if err != nil {
		return nil, err
	}

	if hasHeader(first) {
		rows := []*model.CourseRow{}
		if err := gocsv.UnmarshalCSV(newReader(bytes.NewReader(data), delim), &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	records, err := newReader(bytes.NewReader(data), delim).ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([]*model.CourseRow, 0, len(records))
	for _, rec := range records {
		if row, ok := model.RowFromFields(rec); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func hasHeader(record []string) bool {
	for _, field := range record {
		if strings.EqualFold(strings.TrimSpace(field), "Course_Code") {
			return true
		}
	}
	return false
}

// LoadCourseRows reads and parses given csv file for course rows.
func LoadCourseRows(path string, delim rune) ([]*model.CourseRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadCourseRows(f, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data from %s, please check the data integrity and format: %w", path, err)
	}
	return rows, nil
}

// ReadPreferred parses Course_Code/Section rows into preferred sections.
func ReadPreferred(in io.Reader, delim rune) (model.PreferredSections, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return model.PreferredSections{}, nil
	}

	rows := []*model.PreferredRow{}
	if err := gocsv.UnmarshalCSV(newReader(bytes.NewReader(data), delim), &rows); err != nil {
		return nil, err
	}
	return model.PreferredFromRows(rows), nil
}

// LoadPreferred reads the preferred sections file. An empty path yields no preferences.
func LoadPreferred(path string, delim rune) (model.PreferredSections, error) {
	if path == "" {
		return model.PreferredSections{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err)
	}
	defer f.Close()

	preferred, err := ReadPreferred(f, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data from %s, please check the data integrity and format: %w", path, err)
	}
	return preferred, nil
}
