// Package ingest is the external-interface adapter spec.md §1 and §6
// name but keep deliberately out of the core: reading a catalog's raw
// rows from CSV or JSON into catalog.Row values the Builder can
// consume. Grounded on the teacher's internal/loader/parser_csv.go and
// parser_json.go (encoding/csv and encoding/json directly against the
// standard library, no third-party parser), generalized to produce
// typed Rows instead of [][]string.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/campusforge/timetablecore/internal/catalog"
)

// csvColumns is the set of columns a catalog CSV header must contain,
// in any order, mirroring spec.md §6's row shape.
var csvColumns = []string{
	"course_code", "semester", "subject", "section", "teachers",
	"hours", "department", "category", "has_lab",
}

// ReadCSV parses a catalog CSV file (with a header row matching
// csvColumns, in any column order) into catalog.Row values.
func ReadCSV(r io.Reader) ([]catalog.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ingest: empty csv input")
	}

	header := records[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, want := range csvColumns {
		if _, ok := colIndex[want]; !ok {
			return nil, fmt.Errorf("ingest: csv missing required column %q", want)
		}
	}

	rows := make([]catalog.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := rowFromRecord(record, colIndex)
		if err != nil {
			return nil, fmt.Errorf("ingest: csv row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowFromRecord(record []string, colIndex map[string]int) (catalog.Row, error) {
	col := func(name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	semester, err := strconv.Atoi(strings.TrimSpace(col("semester")))
	if err != nil {
		return catalog.Row{}, fmt.Errorf("invalid semester %q: %w", col("semester"), err)
	}

	hasLab := false
	switch strings.ToLower(strings.TrimSpace(col("has_lab"))) {
	case "true", "yes", "1":
		hasLab = true
	}

	return catalog.Row{
		CourseCode: col("course_code"),
		Semester:   semester,
		Subject:    col("subject"),
		Section:    col("section"),
		Teachers:   col("teachers"),
		Hours:      col("hours"),
		Department: col("department"),
		Category:   col("category"),
		HasLab:     hasLab,
	}, nil
}
