package catalog

import "testing"

func TestParseRowSimple(t *testing.T) {
	r := Row{
		CourseCode: "CSE",
		Semester:   1,
		Subject:    "X",
		Teachers:   "T1",
		Hours:      "3,1,0",
		Department: "CSE",
		Category:   "CORE_REQ",
	}
	p, err := ParseRow(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.courses) != 1 || p.courses[0] != "CSE" {
		t.Fatalf("expected single course CSE, got %v", p.courses)
	}
	if len(p.teacherSets) != 1 || p.teacherSets[0][0] != "T1" {
		t.Fatalf("expected single teacher set [T1], got %v", p.teacherSets)
	}
	if p.hourSets[0] != (Hours{Lecture: 3, Tutorial: 1, Practical: 0}) {
		t.Fatalf("unexpected hours: %+v", p.hourSets[0])
	}
}

func TestParseRowMergeClause(t *testing.T) {
	r := Row{
		CourseCode: "A + B",
		Semester:   1,
		Subject:    "X",
		Teachers:   "T1",
		Hours:      "3,0,2",
		Category:   "ELECTIVE",
	}
	p, err := ParseRow(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.courses) != 2 || p.courses[0] != "A" || p.courses[1] != "B" {
		t.Fatalf("expected [A B], got %v", p.courses)
	}
}

func TestParseRowSplitTeaching(t *testing.T) {
	r := Row{
		CourseCode: "CSE",
		Semester:   1,
		Subject:    "Z",
		Teachers:   "T1|T2",
		Hours:      "2,0,0|1,0,0",
		Category:   "CORE_REQ",
	}
	p, err := ParseRow(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.teacherSets) != 2 {
		t.Fatalf("expected 2 split teacher sets, got %d", len(p.teacherSets))
	}
	if p.hourSets[0].Lecture != 2 || p.hourSets[1].Lecture != 1 {
		t.Fatalf("unexpected split hour sets: %+v", p.hourSets)
	}
}

func TestParseRowMismatchedPipeCountsIsError(t *testing.T) {
	r := Row{
		CourseCode: "CSE",
		Semester:   1,
		Subject:    "Z",
		Teachers:   "T1|T2",
		Hours:      "2,0,0",
		Category:   "CORE_REQ",
	}
	if _, err := ParseRow(r); err == nil {
		t.Fatal("expected an error for mismatched teacher/hours pipe counts")
	}
}

func TestParseRowMissingCourseForNonReservedIsError(t *testing.T) {
	r := Row{
		Semester: 1,
		Subject:  "Z",
		Teachers: "T1",
		Hours:    "2,0,0",
		Category: "CORE_REQ",
	}
	if _, err := ParseRow(r); err == nil {
		t.Fatal("expected an error: course code required for non-reserved category")
	}
}

func TestParseRowEmptyCourseAllowedForReservedCategory(t *testing.T) {
	r := Row{
		Semester: 1,
		Subject:  "G",
		Teachers: "T1",
		Hours:    "3,0,0",
		Category: "GENERIC_ELECTIVE",
	}
	if _, err := ParseRow(r); err != nil {
		t.Fatalf("unexpected error for reserved-category row with no course: %v", err)
	}
}
