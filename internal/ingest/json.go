package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/campusforge/timetablecore/internal/catalog"
)

// jsonRow mirrors catalog.Row's external field names for JSON
// ingestion, since catalog.Row itself carries no serialization tags
// (the core stays format-agnostic per spec.md §1).
type jsonRow struct {
	CourseCode string `json:"course_code"`
	Semester   int    `json:"semester"`
	Subject    string `json:"subject"`
	Section    string `json:"section"`
	Teachers   string `json:"teachers"`
	Hours      string `json:"hours"`
	Department string `json:"department"`
	Category   string `json:"category"`
	HasLab     bool   `json:"has_lab"`
}

// ReadJSON parses a catalog JSON array of rows into catalog.Row values.
func ReadJSON(r io.Reader) ([]catalog.Row, error) {
	var parsed []jsonRow
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ingest: decoding json: %w", err)
	}

	rows := make([]catalog.Row, 0, len(parsed))
	for _, p := range parsed {
		rows = append(rows, catalog.Row{
			CourseCode: p.CourseCode,
			Semester:   p.Semester,
			Subject:    p.Subject,
			Section:    p.Section,
			Teachers:   p.Teachers,
			Hours:      p.Hours,
			Department: p.Department,
			Category:   p.Category,
			HasLab:     p.HasLab,
		})
	}
	return rows, nil
}

// TeacherRosterEntry and SectionStrengthEntry below ingest the teacher
// roster and the per-cohort student strengths. Both are small enough
// to decode directly into their domain shape.

// TeacherRosterEntry is one caller-supplied teacher-roster row.
type TeacherRosterEntry struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Dept     string `json:"department"`
}

// ReadTeacherRosterJSON parses a JSON array of teacher roster entries.
func ReadTeacherRosterJSON(r io.Reader) ([]catalog.Teacher, error) {
	var parsed []TeacherRosterEntry
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ingest: decoding teacher roster: %w", err)
	}
	out := make([]catalog.Teacher, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, catalog.Teacher{Name: p.Name, Initials: p.Initials, Dept: p.Dept})
	}
	return out, nil
}

// SectionStrengthEntry is one caller-supplied (course, semester,
// section) enrollment row.
type SectionStrengthEntry struct {
	CourseCode string `json:"course_code"`
	Semester   int    `json:"semester"`
	Section    string `json:"section"`
	Students   int    `json:"students"`
}

// ReadSectionStrengthsJSON parses a JSON array of enrollment rows.
func ReadSectionStrengthsJSON(r io.Reader) ([]catalog.SectionStrength, error) {
	var parsed []SectionStrengthEntry
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ingest: decoding section strengths: %w", err)
	}
	out := make([]catalog.SectionStrength, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, catalog.SectionStrength{
			Course:   catalog.CourseKey{Code: p.CourseCode},
			Semester: p.Semester,
			Section:  p.Section,
			Students: p.Students,
		})
	}
	return out, nil
}
