package constraints

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// addTwoHourPracticalBlock implements spec.md §4.3 item 10: a
// "block-starts-at-t" Boolean equal to practical(t) AND practical(t+1)
// AND same-day(t,t+1), plus a room-equality constraint when the block
// is active. The complementary IsolatedPracticalVar (practical(t) AND
// NOT covered-by-any-block) feeds the objective's isolation penalty
// (spec.md §4.4 item 4).
func (a *Assembler) addTwoHourPracticalBlock() {
	bySubjectSlot := make(map[catalog.SubjectID]map[catalog.Slot]solverapi.BoolVar)
	for key, v := range a.Factory.ScheduleVar {
		if key.Kind != catalog.KindPractical {
			continue
		}
		if bySubjectSlot[key.Subject] == nil {
			bySubjectSlot[key.Subject] = make(map[catalog.Slot]solverapi.BoolVar)
		}
		bySubjectSlot[key.Subject][key.Slot] = v
	}

	coveredBy := make(map[varfactory.SlotKey][]solverapi.Lit)

	for subjectID, bySlot := range bySubjectSlot {
		for slot, v := range bySlot {
			next := slot + 1
			nv, ok := bySlot[next]
			if !ok || !a.Cat.Grid.AreConsecutive(slot, next) {
				continue
			}
			blockVar := a.Model.NewBoolVar("block-start")
			a.Model.AddReifyAnd(blockVar, []solverapi.Lit{solverapi.Positive(v), solverapi.Positive(nv)})

			startKey := varfactory.SlotKey{Subject: subjectID, Slot: slot, Kind: catalog.KindPractical}
			nextKey := varfactory.SlotKey{Subject: subjectID, Slot: next, Kind: catalog.KindPractical}
			a.BlockStart[startKey] = blockVar
			coveredBy[startKey] = append(coveredBy[startKey], solverapi.Positive(blockVar))
			coveredBy[nextKey] = append(coveredBy[nextKey], solverapi.Positive(blockVar))

			a.constrainBlockRoomEquality(startKey, nextKey, blockVar)
		}
	}

	for key := range a.Factory.ScheduleVar {
		if key.Kind != catalog.KindPractical {
			continue
		}
		covered := a.Model.NewBoolVar("covered-by-block")
		if lits := coveredBy[key]; len(lits) > 0 {
			a.Model.AddReifyOr(covered, lits)
		} else {
			a.Model.AddLinearEq([]solverapi.LinearTerm{{Var: covered, Coeff: 1}}, 0)
		}
		isolated := a.Model.NewBoolVar("isolated-practical")
		// isolated <=> practical(key) AND NOT covered.
		a.Model.AddReifyAnd(isolated, []solverapi.Lit{solverapi.Positive(a.Factory.ScheduleVar[key]), solverapi.Negative(covered)})
		a.IsolatedPracticalVar[key] = isolated
	}
}

// constrainBlockRoomEquality asserts that when blockVar is active, the
// room chosen at startKey equals the room chosen at nextKey.
func (a *Assembler) constrainBlockRoomEquality(startKey, nextKey varfactory.SlotKey, blockVar solverapi.BoolVar) {
	rooms := a.Factory.CandidateRooms[startKey]
	for _, room := range rooms {
		rk1 := varfactory.RoomKey{SlotKey: startKey, Room: room}
		rk2 := varfactory.RoomKey{SlotKey: nextKey, Room: room}
		rv1, ok1 := a.Factory.RoomVar[rk1]
		rv2, ok2 := a.Factory.RoomVar[rk2]
		if ok1 && ok2 {
			a.Model.AddImplyEqualBool(blockVar, rv1, rv2)
		}
	}
}

// blockCarryTerms returns, per (room, slot), the linear terms that
// carry a 2-hour block's room occupancy into the following hour's
// room non-clash sum (spec.md §4.3 item 4's "helper Boolean"). Since
// constrainBlockRoomEquality already forces rv1==rv2 under blockVar,
// the room-assignment indicator at t+1 already reflects occupancy;
// no additional term is required beyond what addRoomNonClash already
// counts through RoomVar at t+1, so this always returns an empty map.
func (a *Assembler) blockCarryTerms() map[roomSlotKey][]solverapi.LinearTerm {
	return map[roomSlotKey][]solverapi.LinearTerm{}
}
