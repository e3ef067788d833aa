package constraints

import (
	"fmt"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
)

// addMaxConsecutive implements spec.md §4.3 item 11: for each window
// of K+1 contiguous same-day slots, the sum of an entity's
// kind-indicators is <= K, separately for students (per cohort) and
// teachers (per initials).
func (a *Assembler) addMaxConsecutive() {
	a.addMaxConsecutiveForGroups(a.cohortSlotIndicators(), a.Cfg.MaxConsecutiveStudent)
	a.addMaxConsecutiveForGroups(a.teacherSlotIndicators(), a.Cfg.MaxConsecutiveTeacher)
}

// addMaxConsecutiveForGroups applies a sliding-window cap over each
// group's per-slot indicator list, one inequality per window.
func (a *Assembler) addMaxConsecutiveForGroups(groups map[string]map[catalog.Slot][]solverapi.LinearTerm, maxK int) {
	hpd := a.Cat.Grid.HoursPerDay()
	windowSize := maxK + 1

	for _, bySlot := range groups {
		for day := 0; day < len(a.Cat.Grid.Days); day++ {
			for start := 0; start+windowSize <= hpd; start++ {
				var terms []solverapi.LinearTerm
				for h := 0; h < windowSize; h++ {
					slot := a.Cat.Grid.Slot(day, start+h)
					terms = append(terms, bySlot[slot]...)
				}
				if len(terms) > 0 {
					a.Model.AddLinearLeq(terms, maxK)
				}
			}
		}
	}
}

// cohortSlotIndicators groups every ScheduleVar by (cohort key, slot).
func (a *Assembler) cohortSlotIndicators() map[string]map[catalog.Slot][]solverapi.LinearTerm {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

	groups := make(map[string]map[catalog.Slot][]solverapi.LinearTerm)
	for key, v := range a.Factory.ScheduleVar {
		subj := subjectByID[key.Subject]
		ck := subj.Cohort()
		groupKey := ck.Course + "|" + fmt.Sprint(ck.Semester) + "|" + ck.Section
		if groups[groupKey] == nil {
			groups[groupKey] = make(map[catalog.Slot][]solverapi.LinearTerm)
		}
		groups[groupKey][key.Slot] = append(groups[groupKey][key.Slot], solverapi.LinearTerm{Var: v, Coeff: 1})
	}
	return groups
}

// teacherSlotIndicators groups every ScheduleVar by (teacher, slot).
func (a *Assembler) teacherSlotIndicators() map[string]map[catalog.Slot][]solverapi.LinearTerm {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

	groups := make(map[string]map[catalog.Slot][]solverapi.LinearTerm)
	for key, v := range a.Factory.ScheduleVar {
		subj := subjectByID[key.Subject]
		for _, initials := range subj.AllTeachers() {
			if groups[initials] == nil {
				groups[initials] = make(map[catalog.Slot][]solverapi.LinearTerm)
			}
			groups[initials][key.Slot] = append(groups[initials][key.Slot], solverapi.LinearTerm{Var: v, Coeff: 1})
		}
	}
	return groups
}
