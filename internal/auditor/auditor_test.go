package auditor

import (
	"testing"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
)

func smallGrid(t *testing.T) catalog.TimeGrid {
	t.Helper()
	grid, err := catalog.NewTimeGrid(
		[]string{"MON", "TUE", "WED", "THU", "FRI"},
		[]string{"1", "2", "3", "4", "5", "6"},
	)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return grid
}

func baseCfg() config.Config {
	return config.Config{
		SemesterParity:        "odd",
		TeacherWeeklyCap:      18,
		AssistantRatio:        20,
		MaxConsecutiveStudent: 4,
		MaxConsecutiveTeacher: 5,
		MaxDailyHoursStudent:  8,
		MaxDailyHoursTeacher:  8,
		TwoHourPracticalBlock: true,
		SolverBudget:          1,
		Weights:               config.DefaultWeights(),
	}
}

func TestAuditTeacherOverCapIsBlockingError(t *testing.T) {
	cat := catalog.Catalog{
		Grid: smallGrid(t),
		Rooms: []catalog.Room{
			{ID: "R1", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
			{ID: "L1", Kind: catalog.RoomKindLab, MinCap: 5, MaxCap: 30, Department: "CSE"},
		},
		Teachers: map[string]catalog.Teacher{"AL": {Name: "Alice", Initials: "AL", Dept: "CSE"}},
		Subjects: []catalog.Subject{
			{ID: "s1", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Overloaded", Category: catalog.CategoryCoreRequired,
				Taught: catalog.Hours{Lecture: 20, Tutorial: 0, Practical: 0},
				PrimaryTeacher: "AL", Students: 60},
		},
	}
	report := Audit(cat, baseCfg())
	if !report.Diagnostics.Blocking() {
		t.Fatal("expected a blocking diagnostic for a teacher over weekly cap")
	}
}

func TestAuditReservedCategoryWithNoWindowIsBlockingError(t *testing.T) {
	cat := catalog.Catalog{
		Grid:     smallGrid(t),
		Teachers: map[string]catalog.Teacher{"AL": {Name: "Alice", Initials: "AL", Dept: "CSE"}},
		Subjects: []catalog.Subject{
			{ID: "s1", Semester: 1, Year: 1, Name: "Generic Elective",
				Category: catalog.CategoryGenericElective,
				Required: catalog.Hours{Lecture: 3, Tutorial: 0, Practical: 0},
				Taught:   catalog.Hours{Lecture: 3, Tutorial: 0, Practical: 0},
				PrimaryTeacher: "AL", Students: 60},
		},
	}
	report := Audit(cat, baseCfg())
	if !report.Diagnostics.Blocking() {
		t.Fatal("expected a blocking diagnostic: reserved category with no declared window")
	}
}

func TestAuditSufficientResourcesProducesNoBlockingDiagnostics(t *testing.T) {
	cat := catalog.Catalog{
		Grid: smallGrid(t),
		Rooms: []catalog.Room{
			{ID: "R1", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
			{ID: "R2", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
			{ID: "L1", Kind: catalog.RoomKindLab, MinCap: 5, MaxCap: 30, Department: "CSE"},
		},
		Teachers: map[string]catalog.Teacher{"AL": {Name: "Alice", Initials: "AL", Dept: "CSE"}},
		Subjects: []catalog.Subject{
			{ID: "s1", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Data Structures", Category: catalog.CategoryCoreRequired,
				Taught:         catalog.Hours{Lecture: 3, Tutorial: 1, Practical: 2},
				PrimaryTeacher: "AL", Students: 60},
		},
	}
	report := Audit(cat, baseCfg())
	if report.Diagnostics.Blocking() {
		t.Fatalf("expected no blocking diagnostics, got: %v", report.Diagnostics.Errors())
	}
	if report.Stats.TotalSubjects != 1 || report.Stats.TotalClassrooms != 2 || report.Stats.TotalLabs != 1 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
}
