package ingest

import (
	"strings"
	"testing"
)

func TestReadCSVParsesRowsRegardlessOfColumnOrder(t *testing.T) {
	input := "subject,course_code,semester,section,teachers,hours,department,category,has_lab\n" +
		"Data Structures,CSE,1,,AL,\"3,1,0\",CSE,CORE_REQ,false\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.CourseCode != "CSE" || r.Subject != "Data Structures" || r.Semester != 1 {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.Hours != "3,1,0" {
		t.Fatalf("expected hours %q, got %q", "3,1,0", r.Hours)
	}
	if r.HasLab {
		t.Fatal("expected has_lab to parse as false")
	}
}

func TestReadCSVParsesHasLabTruthyVariants(t *testing.T) {
	input := "course_code,semester,subject,section,teachers,hours,department,category,has_lab\n" +
		"CSE,1,Programming Lab,,AL,\"0,0,2\",CSE,CORE_REQ,yes\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rows[0].HasLab {
		t.Fatal("expected has_lab \"yes\" to parse as true")
	}
}

func TestReadCSVMissingColumnIsError(t *testing.T) {
	input := "course_code,semester,subject\nCSE,1,Foo\n"
	if _, err := ReadCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected an error for a csv missing required columns")
	}
}

func TestReadCSVEmptyInputIsError(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for empty csv input")
	}
}
