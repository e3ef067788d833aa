package constraints

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
)

// addMaxDailyHours implements spec.md §4.3 item 12: separate
// per-day hour caps for students (per cohort) and teachers.
func (a *Assembler) addMaxDailyHours() {
	a.addMaxDailyForGroups(a.cohortSlotIndicators(), a.Cfg.MaxDailyHoursStudent)
	a.addMaxDailyForGroups(a.teacherSlotIndicators(), a.Cfg.MaxDailyHoursTeacher)
}

func (a *Assembler) addMaxDailyForGroups(groups map[string]map[catalog.Slot][]solverapi.LinearTerm, maxHours int) {
	for _, bySlot := range groups {
		for day := 0; day < len(a.Cat.Grid.Days); day++ {
			var terms []solverapi.LinearTerm
			for hour := 0; hour < a.Cat.Grid.HoursPerDay(); hour++ {
				slot := a.Cat.Grid.Slot(day, hour)
				terms = append(terms, bySlot[slot]...)
			}
			if len(terms) > 0 {
				a.Model.AddLinearLeq(terms, maxHours)
			}
		}
	}
}
