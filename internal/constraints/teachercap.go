package constraints

import (
	"fmt"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
)

// addTeacherWeeklyCap implements spec.md §4.3 item 6: the weighted sum
// of a teacher's scheduled hours over the week is <= the configured
// cap. Every ScheduleVar already contributes exactly one hour per
// indicator (practicals use one indicator per hour, not per session),
// so no per-kind weighting is needed beyond counting occurrences.
// Merge-group members are deduplicated per teacher-slot: addMerge
// Synchronization forces a merge group's ScheduleVars equal, so
// counting every member would double-count each merge-group hour and
// silently halve the teacher's effective cap.
func (a *Assembler) addTeacherWeeklyCap() {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

	byTeacher := make(map[string][]solverapi.LinearTerm)
	countedMergeAtTeacherSlot := make(map[string]bool) // teacher|mergeGroupID|slot

	for key, v := range a.Factory.ScheduleVar {
		subj := subjectByID[key.Subject]
		for _, initials := range subj.AllTeachers() {
			if subj.MergeGroupID != "" {
				dedupKey := fmt.Sprintf("%s|%s|%d", initials, subj.MergeGroupID, key.Slot)
				if countedMergeAtTeacherSlot[dedupKey] {
					continue
				}
				countedMergeAtTeacherSlot[dedupKey] = true
			}
			byTeacher[initials] = append(byTeacher[initials], solverapi.LinearTerm{Var: v, Coeff: 1})
		}
	}

	for _, terms := range byTeacher {
		a.Model.AddLinearLeq(terms, a.Cfg.TeacherWeeklyCap)
	}
}
