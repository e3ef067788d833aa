package objective

import (
	"context"
	"testing"
	"time"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/constraints"
	"github.com/campusforge/timetablecore/internal/localsearch"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

func tinyGrid(t *testing.T) catalog.TimeGrid {
	t.Helper()
	g, err := catalog.NewTimeGrid([]string{"MON"}, []string{"1", "2"})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func tinyConfig() config.Config {
	return config.Config{
		SemesterParity:        "odd",
		TeacherWeeklyCap:      18,
		AssistantRatio:        20,
		MaxConsecutiveStudent: 4,
		MaxConsecutiveTeacher: 5,
		MaxDailyHoursStudent:  8,
		MaxDailyHoursTeacher:  8,
		SolverBudget:          time.Second,
		Weights:               config.DefaultWeights(),
	}
}

// TestBuildAllPrefersWellFittedRoomOverUndersizedRoom checks that, with
// a choice between a room that comfortably fits the class and one far
// too small for it, the search settles on the well-fitted room once
// both hard constraints are satisfied, since only the soft objective
// distinguishes the two choices.
func TestBuildAllPrefersWellFittedRoomOverUndersizedRoom(t *testing.T) {
	g := tinyGrid(t)
	cat := catalog.Catalog{
		Grid: g,
		Rooms: []catalog.Room{
			{ID: "GoodFit", Kind: catalog.RoomKindClassroom, MinCap: 50, MaxCap: 100},
			{ID: "TooSmall", Kind: catalog.RoomKindClassroom, MinCap: 5, MaxCap: 20},
		},
		Subjects: []catalog.Subject{
			{ID: "s1", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Alpha", Category: catalog.CategoryCoreRequired,
				Taught: catalog.Hours{Lecture: 1}, PrimaryTeacher: "AL", Students: 60},
		},
	}

	model := localsearch.New(localsearch.Config{InitialTemp: 50, CoolingRate: 0.998, MaxSteps: 30000, Seed: 1})
	factory := varfactory.New(model, cat)
	cfg := tinyConfig()
	asm := constraints.New(model, cat, cfg, factory)
	asm.AssembleAll()
	obj := New(model, cat, cfg, factory, asm)
	obj.BuildAll()

	result, err := model.Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goodFitUsed := false
	tooSmallUsed := false
	for rk, v := range factory.RoomVar {
		if !result.Assignment.BoolValue(v) {
			continue
		}
		switch rk.Room {
		case "GoodFit":
			goodFitUsed = true
		case "TooSmall":
			tooSmallUsed = true
		}
	}
	if tooSmallUsed {
		t.Fatal("expected the undersized room to be avoided once its heavy penalty is weighed")
	}
	if !goodFitUsed {
		t.Fatal("expected the well-fitted room to be chosen")
	}
}

func newPracticalCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	g := tinyGrid(t)
	return catalog.Catalog{
		Grid: g,
		Rooms: []catalog.Room{
			{ID: "L1", Kind: catalog.RoomKindLab, MinCap: 5, MaxCap: 30, Department: "CSE"},
		},
		Subjects: []catalog.Subject{
			{ID: "s1", Course: catalog.CourseKey{Code: "CSE"}, Semester: 1, Year: 1,
				Name: "Alpha", Category: catalog.CategoryCoreRequired, Department: "CSE",
				HasLab: true, LabDept: "CSE",
				Taught: catalog.Hours{Practical: 1}, PrimaryTeacher: "AL", Students: 20},
		},
	}
}

func TestIsolatedPracticalIndicatorOnlyPopulatedWhenBlockFamilyEnabled(t *testing.T) {
	cat := newPracticalCatalog(t)

	model := localsearch.New(localsearch.DefaultConfig())
	factory := varfactory.New(model, cat)
	cfg := tinyConfig()
	cfg.TwoHourPracticalBlock = true
	asm := constraints.New(model, cat, cfg, factory)
	asm.AssembleAll()

	if len(asm.IsolatedPracticalVar) == 0 {
		t.Fatal("expected an isolated-practical indicator per practical hour with the block family enabled")
	}
}

func TestIsolatedPracticalIndicatorEmptyWhenBlockFamilyDisabled(t *testing.T) {
	cat := newPracticalCatalog(t)

	model := localsearch.New(localsearch.DefaultConfig())
	factory := varfactory.New(model, cat)
	cfg := tinyConfig()
	cfg.TwoHourPracticalBlock = false
	asm := constraints.New(model, cat, cfg, factory)
	asm.AssembleAll()

	if len(asm.IsolatedPracticalVar) != 0 {
		t.Fatal("expected no isolated-practical indicators with the block family disabled")
	}
}
