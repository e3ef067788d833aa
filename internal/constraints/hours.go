package constraints

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// addHourTotals implements spec.md §4.3 item 1: for each Subject, the
// indicator sum over permitted slots equals the taught total for each
// kind. A practical indicator sum equals practical hours directly
// (two independent per-hour indicators per session, per the "Edge
// cases" note), so no factor-of-two adjustment is needed here.
func (a *Assembler) addHourTotals() {
	for _, s := range a.Cat.Subjects {
		for _, kind := range []catalog.Kind{catalog.KindLecture, catalog.KindTutorial, catalog.KindPractical} {
			required := kindRequired(s.Taught, kind)
			if required == 0 {
				continue
			}
			var terms []solverapi.LinearTerm
			for slot := range a.Factory.Permitted[s.ID][kind] {
				key := varfactory.SlotKey{Subject: s.ID, Slot: slot, Kind: kind}
				if v, ok := a.Factory.ScheduleVar[key]; ok {
					terms = append(terms, solverapi.LinearTerm{Var: v, Coeff: 1})
				}
			}
			a.Model.AddLinearEq(terms, required)
		}
	}
}

// addExactlyOneRoomIfScheduled implements spec.md §4.3 item 2: for
// every (subject, slot, kind), the sum of room-assignment indicators
// equals the kind indicator's value. Expressed as two inequalities
// (<=  and the complementary room-implies-scheduled direction) would
// need an extra variable; instead this uses a single linear equality
// sum(room_i) - schedule == 0, which the model encodes as
// sum(room_i) + (-1)*schedule == 0.
func (a *Assembler) addExactlyOneRoomIfScheduled() {
	for key, scheduleVar := range a.Factory.ScheduleVar {
		rooms := a.Factory.CandidateRooms[key]
		terms := make([]solverapi.LinearTerm, 0, len(rooms)+1)
		for _, room := range rooms {
			rv := a.Factory.RoomVar[varfactory.RoomKey{SlotKey: key, Room: room}]
			terms = append(terms, solverapi.LinearTerm{Var: rv, Coeff: 1})
		}
		terms = append(terms, solverapi.LinearTerm{Var: scheduleVar, Coeff: -1})
		a.Model.AddLinearEq(terms, 0)
	}
}

func kindRequired(h catalog.Hours, kind catalog.Kind) int {
	switch kind {
	case catalog.KindLecture:
		return h.Lecture
	case catalog.KindTutorial:
		return h.Tutorial
	case catalog.KindPractical:
		return h.Practical
	default:
		return 0
	}
}
