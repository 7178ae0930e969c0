package model

import (
	"slices"
	"strings"
)

// PreferredRow restricts a course to one section. Several rows may name the same course.
type PreferredRow struct {
	CourseCode string `csv:"Course_Code"`
	Section    string `csv:"Section"`
}

// PreferredSections maps a course code to the sections the student accepts.
// A course with no entry, or an empty list, accepts every section.
type PreferredSections map[string][]string

// PreferredFromRows groups preference rows by normalised course code.
func PreferredFromRows(rows []*PreferredRow) PreferredSections {
	p := PreferredSections{}
	for _, r := range rows {
		code := NormalizeCode(r.CourseCode)
		section := strings.TrimSpace(r.Section)
		if code == "" || section == "" {
			continue
		}
		if !slices.Contains(p[code], section) {
			p[code] = append(p[code], section)
		}
	}
	return p
}

// Normalize returns a copy with normalised keys and trimmed, non-empty sections.
func (p PreferredSections) Normalize() PreferredSections {
	out := make(PreferredSections, len(p))
	for code, sections := range p {
		key := NormalizeCode(code)
		for _, s := range sections {
			s = strings.TrimSpace(s)
			if s == "" || slices.Contains(out[key], s) {
				continue
			}
			out[key] = append(out[key], s)
		}
	}
	return out
}

// Allows reports whether section may be used for code. Expects a normalised map.
func (p PreferredSections) Allows(code string, section string) bool {
	allowed := p[code]
	if len(allowed) == 0 {
		return true
	}
	return slices.Contains(allowed, strings.TrimSpace(section))
}
