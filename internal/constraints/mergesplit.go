package constraints

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// addMergeSynchronization implements spec.md §4.3 item 7: for every
// pair of subjects in the same merge group, their kind-indicators at
// each slot are equal; for lectures/tutorials the room-indicators are
// also equal (practicals may use different same-department labs, so
// their room-indicators are left unconstrained here).
func (a *Assembler) addMergeSynchronization() {
	for _, members := range a.Cat.MergeGroups() {
		if len(members) < 2 {
			continue
		}
		lead := members[0]
		for _, other := range members[1:] {
			a.syncKindIndicators(lead, other, catalog.KindLecture, true)
			a.syncKindIndicators(lead, other, catalog.KindTutorial, true)
			a.syncKindIndicators(lead, other, catalog.KindPractical, false)
		}
	}
}

// syncKindIndicators asserts lead and other have identical
// ScheduleVar values at every slot permitted to both, for one kind,
// and optionally the identical room assignment too.
func (a *Assembler) syncKindIndicators(lead, other catalog.Subject, kind catalog.Kind, syncRooms bool) {
	leadSlots := a.Factory.Permitted[lead.ID][kind]
	otherSlots := a.Factory.Permitted[other.ID][kind]

	allSlots := make(map[catalog.Slot]bool, len(leadSlots)+len(otherSlots))
	for s := range leadSlots {
		allSlots[s] = true
	}
	for s := range otherSlots {
		allSlots[s] = true
	}

	for slot := range allSlots {
		lk := varfactory.SlotKey{Subject: lead.ID, Slot: slot, Kind: kind}
		ok := varfactory.SlotKey{Subject: other.ID, Slot: slot, Kind: kind}
		lv, lok := a.Factory.ScheduleVar[lk]
		ov, ook := a.Factory.ScheduleVar[ok]
		if !lok || !ook {
			continue // asymmetric permitted-slot sets: no equality is added for this slot
		}
		a.Model.AddLinearEq([]solverapi.LinearTerm{{Var: lv, Coeff: 1}, {Var: ov, Coeff: -1}}, 0)

		if syncRooms {
			for _, room := range a.Factory.CandidateRooms[lk] {
				rk1 := varfactory.RoomKey{SlotKey: lk, Room: room}
				rk2 := varfactory.RoomKey{SlotKey: ok, Room: room}
				rv1, ok1 := a.Factory.RoomVar[rk1]
				rv2, ok2 := a.Factory.RoomVar[rk2]
				if ok1 && ok2 {
					a.Model.AddLinearEq([]solverapi.LinearTerm{{Var: rv1, Coeff: 1}, {Var: rv2, Coeff: -1}}, 0)
				}
			}
		}
	}
}

// addSplitNonConcurrency implements spec.md §4.3 item 8: for each
// split group and slot, the sum over members of (lecture + tutorial +
// practical indicators) is <= 1.
func (a *Assembler) addSplitNonConcurrency() {
	for _, members := range a.Cat.SplitGroups() {
		if len(members) < 2 {
			continue
		}
		bySlot := make(map[catalog.Slot][]solverapi.LinearTerm)
		for _, m := range members {
			for _, kind := range []catalog.Kind{catalog.KindLecture, catalog.KindTutorial, catalog.KindPractical} {
				for slot := range a.Factory.Permitted[m.ID][kind] {
					key := varfactory.SlotKey{Subject: m.ID, Slot: slot, Kind: kind}
					if v, ok := a.Factory.ScheduleVar[key]; ok {
						bySlot[slot] = append(bySlot[slot], solverapi.LinearTerm{Var: v, Coeff: 1})
					}
				}
			}
		}
		for _, terms := range bySlot {
			if len(terms) > 1 {
				a.Model.AddLinearLeq(terms, 1)
			}
		}
	}
}

// addSameSubjectSectionNonConcurrency implements spec.md §4.3 item 9:
// distinct CORE_REQ/ELECTIVE sections of the same (course, semester,
// subject name) may never be scheduled simultaneously, so common
// assessments remain possible. Merge groups are excluded by
// Catalog.SameSubjectSections.
func (a *Assembler) addSameSubjectSectionNonConcurrency() {
	for _, sections := range a.Cat.SameSubjectSections() {
		bySlot := make(map[catalog.Slot][]solverapi.LinearTerm)
		for _, s := range sections {
			for _, kind := range []catalog.Kind{catalog.KindLecture, catalog.KindTutorial, catalog.KindPractical} {
				for slot := range a.Factory.Permitted[s.ID][kind] {
					key := varfactory.SlotKey{Subject: s.ID, Slot: slot, Kind: kind}
					if v, ok := a.Factory.ScheduleVar[key]; ok {
						bySlot[slot] = append(bySlot[slot], solverapi.LinearTerm{Var: v, Coeff: 1})
					}
				}
			}
		}
		for _, terms := range bySlot {
			if len(terms) > 1 {
				a.Model.AddLinearLeq(terms, 1)
			}
		}
	}
}
