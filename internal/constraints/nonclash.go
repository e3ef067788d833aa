package constraints

import (
	"fmt"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// addTeacherNonClash implements spec.md §4.3 item 3: for each
// (teacher, slot) the sum of every indicator mentioning that teacher
// (primary or co-teacher) is <= 1. Merge-group members are
// deduplicated per teacher-slot the same way addCohortNonClash dedupes
// per cohort-slot: addMergeSynchronization forces a merge group's
// ScheduleVars equal, so counting both members would force the sum to
// 2 against this constraint's own <=1 cap.
func (a *Assembler) addTeacherNonClash() {
	byTeacherSlot := make(map[teacherSlotKey][]solverapi.LinearTerm)

	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

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
			tk := teacherSlotKey{Teacher: initials, Slot: key.Slot}
			byTeacherSlot[tk] = append(byTeacherSlot[tk], solverapi.LinearTerm{Var: v, Coeff: 1})
		}
	}

	for _, terms := range byTeacherSlot {
		if len(terms) > 1 {
			a.Model.AddLinearLeq(terms, 1)
		}
	}
}

type teacherSlotKey struct {
	Teacher string
	Slot    catalog.Slot
}

// addRoomNonClash implements spec.md §4.3 item 4: for each (room,
// slot) the sum of room-assignments is <= 1. When the 2-hour
// practical block is enabled, a block starting at slot t additionally
// reserves the same room at t+1; addTwoHourPracticalBlock enforces
// that via AddImplyEqualBool, so the RoomVar at t+1 already counts the
// occupancy here and blockCarryTerms adds no extra term.
func (a *Assembler) addRoomNonClash() {
	byRoomSlot := make(map[roomSlotKey][]solverapi.LinearTerm)

	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

	countedMergeAtRoomSlot := make(map[string]bool) // room|mergeGroupID|slot

	for key := range a.Factory.ScheduleVar {
		subj := subjectByID[key.Subject]
		// addMergeSynchronization only forces room-indicator equality for
		// Lecture/Tutorial (syncRooms=true); practical room-indicators
		// are independent per member, so only these two kinds need
		// dedup to avoid forcing a <=1 cap to see a value of 2 for one
		// shared classroom booking.
		roomsSynced := subj.MergeGroupID != "" && (key.Kind == catalog.KindLecture || key.Kind == catalog.KindTutorial)
		for _, room := range a.Factory.CandidateRooms[key] {
			if roomsSynced {
				dedupKey := fmt.Sprintf("%s|%s|%d", room, subj.MergeGroupID, key.Slot)
				if countedMergeAtRoomSlot[dedupKey] {
					continue
				}
				countedMergeAtRoomSlot[dedupKey] = true
			}
			rv := a.Factory.RoomVar[varfactory.RoomKey{SlotKey: key, Room: room}]
			rk := roomSlotKey{Room: room, Slot: key.Slot}
			byRoomSlot[rk] = append(byRoomSlot[rk], solverapi.LinearTerm{Var: rv, Coeff: 1})
		}
	}

	for rk, terms := range a.blockCarryTerms() {
		byRoomSlot[rk] = append(byRoomSlot[rk], terms...)
	}

	for _, terms := range byRoomSlot {
		if len(terms) > 1 {
			a.Model.AddLinearLeq(terms, 1)
		}
	}
}

type roomSlotKey struct {
	Room string
	Slot catalog.Slot
}

// addCohortNonClash implements spec.md §4.3 item 5: for each
// (course, semester, section) cohort and slot, the sum of its
// subjects' kind-indicators is <= 1. Merge-group members are
// deduplicated so the combined cohort contributes once, per the
// "coincident by construction" note.
func (a *Assembler) addCohortNonClash() {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(a.Cat.Subjects))
	for _, s := range a.Cat.Subjects {
		subjectByID[s.ID] = s
	}

	byCohortSlot := make(map[cohortSlotKey][]solverapi.LinearTerm)
	countedMergeAtSlot := make(map[string]bool) // mergeGroupID|slot

	for key, v := range a.Factory.ScheduleVar {
		subj := subjectByID[key.Subject]
		if subj.MergeGroupID != "" {
			dedupKey := fmt.Sprintf("%s|%d", subj.MergeGroupID, key.Slot)
			if countedMergeAtSlot[dedupKey] {
				continue
			}
			countedMergeAtSlot[dedupKey] = true
		}
		ck := cohortSlotKey{Cohort: subj.Cohort(), Slot: key.Slot}
		byCohortSlot[ck] = append(byCohortSlot[ck], solverapi.LinearTerm{Var: v, Coeff: 1})
	}

	for _, terms := range byCohortSlot {
		if len(terms) > 1 {
			a.Model.AddLinearLeq(terms, 1)
		}
	}
}

type cohortSlotKey struct {
	Cohort catalog.CohortKey
	Slot   catalog.Slot
}
