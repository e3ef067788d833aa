// Package auditor implements the Feasibility Auditor (spec.md §4.1):
// cheap, purely analytical structural checks that catch the common
// operator errors (missing reserved windows, teacher overallocation,
// labs not declared) before an expensive search is attempted.
// Grounded on the teacher's internal/loader/validator.go aggregation
// idiom, generalized into typed, severity-tagged diagnostics.
package auditor

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/xerrors"
)

// Report is the auditor's output: diagnostics plus a few aggregate
// statistics useful for operator-facing summaries.
type Report struct {
	Diagnostics xerrors.Diagnostics
	Stats       Stats
}

// Stats are informational counts computed alongside the checks.
type Stats struct {
	TotalSubjects   int
	TotalTeachers   int
	TotalClassrooms int
	TotalLabs       int
}

// Audit runs every check from spec.md §4.1 and returns an aggregate
// Report. It never modifies cat.
func Audit(cat catalog.Catalog, cfg config.Config) Report {
	var diag xerrors.Diagnostics

	stats := Stats{
		TotalSubjects:   len(cat.Subjects),
		TotalTeachers:   len(cat.Teachers),
		TotalClassrooms: len(cat.RoomsOfKind(catalog.RoomKindClassroom, "")),
		TotalLabs:       len(cat.RoomsOfKind(catalog.RoomKindLab, "")),
	}

	checkTeacherLoad(cat, cfg, &diag)
	checkReservedCapacity(cat, &diag)
	checkClassroomAndLabCapacity(cat, stats, &diag)
	checkConsecutivePairSupply(cat, stats, &diag)

	return Report{Diagnostics: diag, Stats: stats}
}

// checkTeacherLoad implements spec.md §4.1 item 1.
func checkTeacherLoad(cat catalog.Catalog, cfg config.Config, diag *xerrors.Diagnostics) {
	load := cat.TeacherWeeklyLoad()
	for initials, hours := range load {
		switch {
		case hours > cfg.TeacherWeeklyCap:
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
				"teacher %s: weekly load %d exceeds cap %d", initials, hours, cfg.TeacherWeeklyCap)
		case float64(hours) < 0.8*float64(cfg.TeacherWeeklyCap):
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityWarning,
				"teacher %s: low utilization (%d/%d hours)", initials, hours, cfg.TeacherWeeklyCap)
		case float64(hours) >= 0.9*float64(cfg.TeacherWeeklyCap):
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityInfo,
				"teacher %s: near-optimal utilization (%d/%d hours)", initials, hours, cfg.TeacherWeeklyCap)
		}
	}
}

// checkReservedCapacity implements spec.md §4.1 item 2.
func checkReservedCapacity(cat catalog.Catalog, diag *xerrors.Diagnostics) {
	classrooms := len(cat.RoomsOfKind(catalog.RoomKindClassroom, ""))
	if classrooms == 0 {
		classrooms = 1 // avoid a division artifact masking the real "no classrooms" error below
	}

	requiredByWindow := make(map[catalog.Category]int)
	for _, s := range cat.Subjects {
		if !s.Category.IsReserved() {
			continue
		}
		requiredByWindow[s.Category] += s.Required.Total()
	}

	for category, hoursNeeded := range requiredByWindow {
		var instances int
		for _, w := range cat.Reserved {
			if w.Category == category {
				instances += len(w.AllSlots())
			}
		}
		capacity := instances * classrooms
		if capacity == 0 {
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
				"category %s: no reserved window declared but %d hours are required", category, hoursNeeded)
			continue
		}
		ratio := float64(hoursNeeded) / float64(capacity)
		switch {
		case hoursNeeded > capacity:
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
				"category %s: reserved-window overflow (%d hours needed, %d available)", category, hoursNeeded, capacity)
		case ratio >= 0.8:
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityWarning,
				"category %s: reserved window at %.0f%% capacity", category, ratio*100)
		}
	}
}

// checkClassroomAndLabCapacity implements spec.md §4.1 item 3.
func checkClassroomAndLabCapacity(cat catalog.Catalog, stats Stats, diag *xerrors.Diagnostics) {
	reservedSlots := 0
	years := map[int]bool{}
	for _, s := range cat.Subjects {
		years[s.Year] = true
	}
	for year := range years {
		for _, w := range cat.ReservedWindowsForYear(year) {
			reservedSlots += len(w.AllSlots())
		}
	}
	nonReservedSlots := cat.Grid.TotalSlots() - reservedSlots
	if nonReservedSlots < 0 {
		nonReservedSlots = 0
	}

	var theoryHours, practicalSessions int
	for _, s := range cat.Subjects {
		if s.Category.IsReserved() {
			continue
		}
		theoryHours += s.Taught.Lecture + s.Taught.Tutorial
		if s.Taught.Practical > 0 {
			practicalSessions++
		}
	}

	theoryCapacity := nonReservedSlots * stats.TotalClassrooms
	if theoryHours > theoryCapacity {
		diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
			"classroom shortage: %d non-reserved theory hours needed, capacity %d", theoryHours, theoryCapacity)
	}

	labCapacity := nonReservedSlots * stats.TotalLabs
	if practicalSessions > labCapacity {
		diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
			"lab shortage: %d non-reserved practical sessions needed, capacity %d", practicalSessions, labCapacity)
	}
}

// checkConsecutivePairSupply implements spec.md §4.1 item 4.
func checkConsecutivePairSupply(cat catalog.Catalog, stats Stats, diag *xerrors.Diagnostics) {
	years := map[int]bool{}
	for _, s := range cat.Subjects {
		years[s.Year] = true
	}
	reserved := make(map[catalog.Slot]bool)
	for year := range years {
		for _, w := range cat.ReservedWindowsForYear(year) {
			for s := range w.AllSlots() {
				reserved[s] = true
			}
		}
	}

	pairs := 0
	hpd := cat.Grid.HoursPerDay()
	for day := 0; day < len(cat.Grid.Days); day++ {
		for hour := 0; hour < hpd-1; hour++ {
			a := cat.Grid.Slot(day, hour)
			b := cat.Grid.Slot(day, hour+1)
			if !reserved[a] && !reserved[b] {
				pairs++
			}
		}
	}

	practicalSessions := 0
	for _, s := range cat.Subjects {
		if s.Taught.Practical > 0 {
			practicalSessions++
		}
	}

	capacity := pairs * stats.TotalLabs
	if practicalSessions > capacity {
		diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityError,
			"consecutive-pair shortage: %d practical sessions need a 2-hour block, only %d (pair x lab) slots available",
			practicalSessions, capacity)
	}
}
