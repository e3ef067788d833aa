package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one caller-supplied catalog input row, as described in
// spec.md §6 ("Catalog ingestion"). The course, teacher and hours
// cells are raw strings; typed values are produced by ParseRow and
// never reused afterward.
type Row struct {
	CourseCode string // may be "A + B" for a merge, or empty for reserved categories
	Semester   int
	Subject    string
	Section    string
	Teachers   string // "T1,T2" (co-teaching) or "T1|T2" (split teaching)
	Hours      string // "Le,Tu,Pr", pipe-separated parallel to Teachers for split
	Department string
	Category   string
	HasLab     bool
}

// parsedRow is the typed intermediate form of a Row, before it is
// merged with section strengths and expanded into Subjects.
type parsedRow struct {
	courses    []string // one element, two or more for "A + B" merges, none for an empty cell
	semester   int
	subject    string
	section    string
	teacherSets [][]string // outer: split-teaching groups, inner: co-teachers within a group
	hourSets    []Hours    // parallel to teacherSets
	department string
	category   Category
	hasLab     bool
}

// ParseRow validates and parses one input Row into its typed form.
// Parsing is the only place that inspects the row's raw strings; every
// other package consumes typed values.
func ParseRow(r Row) (parsedRow, error) {
	var out parsedRow

	if strings.TrimSpace(r.Subject) == "" {
		return out, fmt.Errorf("row: missing subject name")
	}
	if r.Semester <= 0 {
		return out, fmt.Errorf("row %q: semester must be positive", r.Subject)
	}
	if strings.TrimSpace(r.Category) == "" {
		return out, fmt.Errorf("row %q: missing category", r.Subject)
	}

	courses, err := parseCourseClause(r.CourseCode)
	if err != nil {
		return out, fmt.Errorf("row %q: %w", r.Subject, err)
	}
	if len(courses) == 0 && !Category(r.Category).IsReserved() {
		return out, fmt.Errorf("row %q: course code required for non-reserved category %q", r.Subject, r.Category)
	}

	teacherSets, hourSets, err := parseTeachersAndHours(r.Teachers, r.Hours)
	if err != nil {
		return out, fmt.Errorf("row %q: %w", r.Subject, err)
	}

	out = parsedRow{
		courses:     courses,
		semester:    r.Semester,
		subject:     r.Subject,
		section:     r.Section,
		teacherSets: teacherSets,
		hourSets:    hourSets,
		department:  r.Department,
		category:    Category(r.Category),
		hasLab:      r.HasLab,
	}
	return out, nil
}

// parseCourseClause splits a course-code cell, handling the "A + B"
// merge-declaration syntax. An empty cell returns an empty slice
// (legal only for reserved categories, checked by the caller).
func parseCourseClause(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	if !strings.Contains(cell, "+") {
		return []string{cell}, nil
	}
	parts := strings.Split(cell, "+")
	var courses []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("malformed merge clause %q", cell)
		}
		courses = append(courses, p)
	}
	if len(courses) < 2 {
		return nil, fmt.Errorf("malformed merge clause %q", cell)
	}
	return courses, nil
}

// parseTeachersAndHours parses the teacher-list cell and the parallel
// hours-tuple cell. "|" separates split-teaching groups; "," separates
// co-teachers within one group. The hours cell must have the same
// pipe-count as the teachers cell.
func parseTeachersAndHours(teachersCell, hoursCell string) ([][]string, []Hours, error) {
	teacherGroups := strings.Split(teachersCell, "|")
	hourGroups := strings.Split(hoursCell, "|")

	if len(teacherGroups) != len(hourGroups) {
		return nil, nil, fmt.Errorf("teacher groups (%d) and hour groups (%d) counts differ", len(teacherGroups), len(hourGroups))
	}

	teacherSets := make([][]string, 0, len(teacherGroups))
	hourSets := make([]Hours, 0, len(hourGroups))

	for i := range teacherGroups {
		names := splitTrim(teacherGroups[i], ",")
		if len(names) == 0 {
			return nil, nil, fmt.Errorf("empty teacher group at position %d", i)
		}
		h, err := parseHoursTuple(hourGroups[i])
		if err != nil {
			return nil, nil, fmt.Errorf("hours group at position %d: %w", i, err)
		}
		teacherSets = append(teacherSets, names)
		hourSets = append(hourSets, h)
	}

	return teacherSets, hourSets, nil
}

// parseHoursTuple parses an "Le,Tu,Pr" cell into Hours.
func parseHoursTuple(cell string) (Hours, error) {
	parts := splitTrim(cell, ",")
	if len(parts) != 3 {
		return Hours{}, fmt.Errorf("expected 3 comma-separated hour values, got %q", cell)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Hours{}, fmt.Errorf("invalid hour value %q", p)
		}
		vals[i] = n
	}
	return Hours{Lecture: vals[0], Tutorial: vals[1], Practical: vals[2]}, nil
}

func splitTrim(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
