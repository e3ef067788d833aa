// Package varfactory is the Variable Factory (spec.md §4.2): it
// derives, once per run, the permitted-slot set for every Subject and
// emits the Boolean scheduling and room-assignment indicators the
// Constraint Assembler and Objective Builder build on. Grounded on the
// teacher's internal/graph.BuildConflictGraph "generate every session,
// then hand them to the next stage" shape, replacing a conflict-graph
// with an explicit variable table keyed by composite struct keys
// rather than string-built names (the "string-built variable names
// for deduplication" design note in spec.md §9).
package varfactory

import (
	"sort"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/solverapi"
)

// SlotKey identifies one (subject, slot, kind) scheduling decision.
type SlotKey struct {
	Subject catalog.SubjectID
	Slot    catalog.Slot
	Kind    catalog.Kind
}

// RoomKey identifies one (subject, slot, kind, room) assignment decision.
type RoomKey struct {
	SlotKey
	Room string
}

// Factory holds every variable the pipeline needs, plus the lookup
// tables used to translate a catalog concept into a solverapi handle.
type Factory struct {
	cat catalog.Catalog

	// Permitted[subject.ID][kind] is the permitted-slot set, computed
	// once from the subject's category and year per spec.md §4.2.
	Permitted map[catalog.SubjectID]map[catalog.Kind]map[catalog.Slot]bool

	// ScheduleVar is the "is this hour scheduled at this slot" Boolean.
	ScheduleVar map[SlotKey]solverapi.BoolVar
	// RoomVar is the per-candidate-room assignment Boolean.
	RoomVar map[RoomKey]solverapi.BoolVar
	// CandidateRooms lists candidate room IDs for a SlotKey, in a
	// stable order (lowest room ID first) so extraction's deterministic
	// fallback (spec.md §4.5) has a canonical tie-break.
	CandidateRooms map[SlotKey][]string

	// LeaseOnLectureWindow marks a GE practical ScheduleVar scheduled
	// in the lecture sub-window rather than the dedicated lab
	// sub-window, used directly as an objective term (see
	// internal/objective) instead of through an IntVar, since its
	// value is known at creation time.
	LeaseOnLectureWindow map[SlotKey]bool

	// DayUsedVar is one Boolean per (subject-independent) day, true
	// iff any hour is scheduled that day; hours of reserved-category
	// subjects count like any other. Populated lazily by BuildDayUsage.
	DayUsedVar map[int]solverapi.BoolVar
}

// New computes permitted slots and emits every scheduling and
// room-assignment variable for cat against model.
func New(model solverapi.Model, cat catalog.Catalog) *Factory {
	f := &Factory{
		cat:                  cat,
		Permitted:            make(map[catalog.SubjectID]map[catalog.Kind]map[catalog.Slot]bool),
		ScheduleVar:          make(map[SlotKey]solverapi.BoolVar),
		RoomVar:              make(map[RoomKey]solverapi.BoolVar),
		CandidateRooms:       make(map[SlotKey][]string),
		LeaseOnLectureWindow: make(map[SlotKey]bool),
		DayUsedVar:           make(map[int]solverapi.BoolVar),
	}

	for _, s := range cat.Subjects {
		f.Permitted[s.ID] = f.permittedSlots(s)
		f.emitSubjectVars(model, s)
	}

	return f
}

// permittedSlots computes the permitted-slot set per kind for s,
// following spec.md §4.2: reserved-category subjects may only use
// their (category, year) window (GE splits lecture/lab sub-windows);
// non-reserved subjects may use any slot not claimed by a reserved
// window applicable to their year.
func (f *Factory) permittedSlots(s catalog.Subject) map[catalog.Kind]map[catalog.Slot]bool {
	out := map[catalog.Kind]map[catalog.Slot]bool{
		catalog.KindLecture:   {},
		catalog.KindTutorial:  {},
		catalog.KindPractical: {},
	}

	if s.Category.IsReserved() {
		w, ok := f.cat.ReservedWindowFor(s.Category, s.Year)
		if !ok {
			return out // auditor should already have flagged this; no permitted slots
		}
		for slot := range w.Lecture {
			out[catalog.KindLecture][slot] = true
			out[catalog.KindTutorial][slot] = true
		}
		for slot := range w.Lab {
			out[catalog.KindPractical][slot] = true
		}
		if s.Category == catalog.CategoryGenericElective {
			// GE practicals may also use the lecture sub-window, at a
			// penalty recorded in LeaseOnLectureWindow.
			for slot := range w.Lecture {
				out[catalog.KindPractical][slot] = true
			}
		}
		return out
	}

	excluded := make(map[catalog.Slot]bool)
	for _, w := range f.cat.ReservedWindowsForYear(s.Year) {
		for slot := range w.AllSlots() {
			excluded[slot] = true
		}
	}
	for slot := 0; slot < f.cat.Grid.TotalSlots(); slot++ {
		sl := catalog.Slot(slot)
		if excluded[sl] {
			continue
		}
		out[catalog.KindLecture][sl] = true
		out[catalog.KindTutorial][sl] = true
		out[catalog.KindPractical][sl] = true
	}
	return out
}

// emitSubjectVars creates the ScheduleVar and RoomVar indicators for
// every permitted (slot, kind) of s.
func (f *Factory) emitSubjectVars(model solverapi.Model, s catalog.Subject) {
	for kind, slots := range f.Permitted[s.ID] {
		required := kindRequired(s.Taught, kind)
		if required == 0 {
			continue
		}
		for slot := range slots {
			key := SlotKey{Subject: s.ID, Slot: slot, Kind: kind}
			f.ScheduleVar[key] = model.NewBoolVar(string(s.ID) + "|" + string(kind))

			if s.Category == catalog.CategoryGenericElective && kind == catalog.KindPractical {
				if w, ok := f.cat.ReservedWindowFor(s.Category, s.Year); ok {
					f.LeaseOnLectureWindow[key] = w.Lecture[slot] && !w.Lab[slot]
				}
			}

			rooms := f.candidateRooms(s, kind)
			f.CandidateRooms[key] = rooms
			for _, room := range rooms {
				rk := RoomKey{SlotKey: key, Room: room}
				f.RoomVar[rk] = model.NewBoolVar(string(s.ID) + "|" + string(kind) + "|" + room)
			}
		}
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

// candidateRooms returns, in stable ascending-ID order, every room a
// (subject, kind) pair may use: classrooms plus department-matching
// labs for lecture/tutorial (labs penalized, see internal/objective),
// department-matching labs only for practicals.
func (f *Factory) candidateRooms(s catalog.Subject, kind catalog.Kind) []string {
	var rooms []catalog.Room
	if kind == catalog.KindPractical {
		rooms = f.cat.RoomsOfKind(catalog.RoomKindLab, s.LabDept)
	} else {
		rooms = append(rooms, f.cat.RoomsOfKind(catalog.RoomKindClassroom, "")...)
		rooms = append(rooms, f.cat.RoomsOfKind(catalog.RoomKindLab, s.LabDept)...)
	}
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	return ids
}

// BuildDayUsage emits one DayUsedVar per day and reifies it as the OR
// of every ScheduleVar on that day, reserved-window hours included
// (none are excluded), for the
// optional day-usage objective term (spec.md §4.4 item 5). Only
// called when the early-completion option is active.
func (f *Factory) BuildDayUsage(model solverapi.Model) {
	hpd := f.cat.Grid.HoursPerDay()
	byDay := make(map[int][]solverapi.Lit)

	for key, v := range f.ScheduleVar {
		day, _ := f.cat.Grid.DayHour(key.Slot)
		byDay[day] = append(byDay[day], solverapi.Positive(v))
	}

	for day := 0; day < len(f.cat.Grid.Days); day++ {
		_ = hpd
		dv := model.NewBoolVar("day-used")
		f.DayUsedVar[day] = dv
		if lits := byDay[day]; len(lits) > 0 {
			model.AddReifyOr(dv, lits)
		}
	}
}
