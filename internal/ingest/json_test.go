package ingest

import (
	"strings"
	"testing"
)

func TestReadJSONParsesRows(t *testing.T) {
	input := `[{"course_code":"CSE","semester":1,"subject":"Data Structures","teachers":"AL","hours":"3,1,0","department":"CSE","category":"CORE_REQ"}]`
	rows, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Subject != "Data Structures" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestReadJSONInvalidIsError(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("not json")); err == nil {
		t.Fatal("expected an error for malformed json")
	}
}

func TestReadTeacherRosterJSONParsesEntries(t *testing.T) {
	input := `[{"name":"Alice","initials":"AL","department":"CSE"}]`
	teachers, err := ReadTeacherRosterJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teachers) != 1 || teachers[0].Initials != "AL" || teachers[0].Dept != "CSE" {
		t.Fatalf("unexpected teachers: %+v", teachers)
	}
}

func TestReadSectionStrengthsJSONParsesEntries(t *testing.T) {
	input := `[{"course_code":"CSE","semester":1,"section":"A","students":60}]`
	strengths, err := ReadSectionStrengthsJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(strengths) != 1 || strengths[0].Students != 60 || strengths[0].Course.Code != "CSE" {
		t.Fatalf("unexpected strengths: %+v", strengths)
	}
}
