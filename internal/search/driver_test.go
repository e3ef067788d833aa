package search

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/localsearch"
)

// s1Catalog builds a minimal one-course, one-semester, two-subject
// catalog: a direct analogue of the S1 seed scenario in spec.md §8
// (small enough to schedule with zero hard-constraint violations).
func s1Catalog(t *testing.T) catalog.Catalog {
	t.Helper()
	grid, err := catalog.NewTimeGrid(
		[]string{"MON", "TUE"},
		[]string{"1", "2", "3", "4"},
	)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return catalog.Catalog{
		Grid: grid,
		Rooms: []catalog.Room{
			{ID: "R1", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
			{ID: "L1", Kind: catalog.RoomKindLab, MinCap: 5, MaxCap: 30, Department: "CSE"},
		},
		Subjects: []catalog.Subject{
			{ID: "s1", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Data Structures", Category: catalog.CategoryCoreRequired, Department: "CSE",
				Taught: catalog.Hours{Lecture: 3, Tutorial: 1}, PrimaryTeacher: "AL", Students: 60},
			{ID: "s2", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Programming Lab", Category: catalog.CategoryCoreRequired, Department: "CSE",
				HasLab: true, LabDept: "CSE",
				Taught: catalog.Hours{Practical: 3}, PrimaryTeacher: "BB", Students: 60},
		},
	}
}

func s1Config() config.Config {
	return config.Config{
		SemesterParity:        "odd",
		TeacherWeeklyCap:      18,
		AssistantRatio:        20,
		MaxConsecutiveStudent: 4,
		MaxConsecutiveTeacher: 5,
		MaxDailyHoursStudent:  8,
		MaxDailyHoursTeacher:  8,
		TwoHourPracticalBlock: false,
		SolverBudget:          3 * time.Second,
		Weights:               config.DefaultWeights(),
	}
}

func TestRunEndToEndSchedulesAllSevenHoursWithNoClashes(t *testing.T) {
	cat := s1Catalog(t)
	cfg := s1Config()
	model := localsearch.New(localsearch.Config{InitialTemp: 40, CoolingRate: 0.9995, MaxSteps: 300000, Seed: 7})

	result, err := Run(context.Background(), zap.NewNop(), model, cat, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeOptimal && result.Outcome != OutcomeFeasible {
		t.Fatalf("expected a successful outcome, got %s", result.Outcome)
	}

	total := result.Summary.LectureCount + result.Summary.TutorialCount + result.Summary.PracticalCount
	if total != 7 {
		t.Fatalf("expected 7 total scheduled hours (3 lecture + 1 tutorial + 3 practical), got %d", total)
	}

	// No teacher should appear twice in the same (day, hour).
	type occupied struct {
		teacher string
		day     int
		hour    int
	}
	seen := make(map[occupied]bool)
	for day, byHour := range result.Schedule {
		for hour, blocks := range byHour {
			for _, b := range blocks {
				for _, teacher := range b.Teachers {
					key := occupied{teacher, day, hour}
					if seen[key] {
						t.Fatalf("teacher %s double-booked at day %d hour %d", teacher, day, hour)
					}
					seen[key] = true
				}
			}
		}
	}
}

func TestDiagnoseMapsOutcomesToExpectedCodes(t *testing.T) {
	if d := Diagnose(OutcomeInfeasible); d.Code != "SOLVER_INFEASIBLE" {
		t.Fatalf("expected SOLVER_INFEASIBLE, got %s", d.Code)
	}
	if d := Diagnose(OutcomeUnknown); d.Code != "SOLVER_TIMEOUT" {
		t.Fatalf("expected SOLVER_TIMEOUT, got %s", d.Code)
	}
}
