// Package objective is the Objective Builder (spec.md §4.4): it adds
// weighted minimization terms to a solverapi.Model for every penalty
// family, reading the Variable Factory's room-fit knowledge and
// day-usage booleans and the Constraint Assembler's isolated-practical
// booleans. Most
// penalties are known at variable-creation time (a room's capacity
// against a subject's student count never changes during search), so
// they are added as direct weighted Boolean terms rather than routed
// through derived IntVars — a deliberate simplification over a literal
// per-hour integer-penalty formulation, recorded in DESIGN.md.
package objective

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/constraints"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// labFitTolerance is the +-3 capacity tolerance band for practicals
// assigned to a lab, centered on the room's MaxCap (spec.md §4.4 item 1).
const labFitTolerance = 3

// Builder attaches objective terms for one catalog/config/factory/
// assembler combination.
type Builder struct {
	Model   solverapi.Model
	Cat     catalog.Catalog
	Cfg     config.Config
	Factory *varfactory.Factory
	Asm     *constraints.Assembler
}

// New creates a Builder.
func New(model solverapi.Model, cat catalog.Catalog, cfg config.Config, f *varfactory.Factory, asm *constraints.Assembler) *Builder {
	return &Builder{Model: model, Cat: cat, Cfg: cfg, Factory: f, Asm: asm}
}

// BuildAll adds every objective term spec.md §4.4 names.
func (b *Builder) BuildAll() {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(b.Cat.Subjects))
	for _, s := range b.Cat.Subjects {
		subjectByID[s.ID] = s
	}
	roomByID := make(map[string]catalog.Room, len(b.Cat.Rooms))
	for _, r := range b.Cat.Rooms {
		roomByID[r.ID] = r
	}

	b.addRoomFitAndTheoryInLab(subjectByID, roomByID)
	b.addGenericElectiveLectureWindowMisuse()
	b.addIsolatedPractical()
	if b.Cfg.EarlyCompletion {
		b.addDayUsage()
		b.addLatestSlot()
	}
}

// addRoomFitAndTheoryInLab implements spec.md §4.4 items 1-2: a
// weighted term per (subject, slot, kind, room) RoomVar, proportional
// to the capacity mismatch, except that a lecture/tutorial in a lab
// gets the flat theory-in-lab penalty instead.
func (b *Builder) addRoomFitAndTheoryInLab(subjects map[catalog.SubjectID]catalog.Subject, rooms map[string]catalog.Room) {
	for rk, v := range b.Factory.RoomVar {
		subj := subjects[rk.Subject]
		room := rooms[rk.Room]

		if room.Kind == catalog.RoomKindLab && rk.Kind != catalog.KindPractical {
			b.Model.AddBoolObjectiveTerm(v, b.Cfg.Weights.TheoryInLab)
			continue
		}

		weight := b.roomFitWeight(subj.Students, room, rk.Kind)
		if weight > 0 {
			b.Model.AddBoolObjectiveTerm(v, weight)
		}
	}
}

// roomFitWeight computes the capacity-mismatch penalty for one
// candidate room. Theory hours use min/max capacity directly;
// practicals in a lab use a +-3 tolerance band around MaxCap.
func (b *Builder) roomFitWeight(students int, room catalog.Room, kind catalog.Kind) int {
	if kind == catalog.KindPractical && room.Kind == catalog.RoomKindLab {
		lo := room.MaxCap - labFitTolerance
		hi := room.MaxCap + labFitTolerance
		switch {
		case students > hi:
			return (students - hi) * b.Cfg.Weights.UndersizedRoom
		case students < lo:
			return (lo - students) * b.Cfg.Weights.OversizedRoom
		default:
			return 0
		}
	}

	switch {
	case students > room.MaxCap:
		return (students - room.MaxCap) * b.Cfg.Weights.UndersizedRoom
	case students < room.MinCap:
		return (room.MinCap - students) * b.Cfg.Weights.OversizedRoom
	default:
		return 0
	}
}

// addGenericElectiveLectureWindowMisuse implements spec.md §4.4 item
// 3: a flat penalty per hour when a GE practical runs in the lecture
// sub-window rather than its dedicated lab sub-window.
func (b *Builder) addGenericElectiveLectureWindowMisuse() {
	for key, misused := range b.Factory.LeaseOnLectureWindow {
		if !misused {
			continue
		}
		v := b.Factory.ScheduleVar[key]
		b.Model.AddBoolObjectiveTerm(v, b.Cfg.Weights.GenericElectiveMiss)
	}
}

// addIsolatedPractical implements spec.md §4.4 item 4: a flat penalty
// per practical hour not covered by any 2-hour block. Empty when the
// 2-hour block family is disabled, per the spec's edge case that
// isolated single-hour practicals are then fully legal.
func (b *Builder) addIsolatedPractical() {
	for _, v := range b.Asm.IsolatedPracticalVar {
		b.Model.AddBoolObjectiveTerm(v, b.Cfg.Weights.IsolatedPractical)
	}
}

// addDayUsage implements spec.md §4.4 item 5: a penalty on each
// "day used" Boolean, weighted by day index so later days cost more.
func (b *Builder) addDayUsage() {
	b.Factory.BuildDayUsage(b.Model)
	for day, v := range b.Factory.DayUsedVar {
		weight := b.Cfg.Weights.DayUsage * (day + 1)
		b.Model.AddBoolObjectiveTerm(v, weight)
	}
}

// addLatestSlot implements spec.md §4.4 item 6: an IntVar bounded
// below by the largest scheduled slot index, weighted by LatestSlot.
// A literal single global IntVar would need one AddIndicatorLowerBound
// registration per ScheduleVar; that is exactly what is done here.
func (b *Builder) addLatestSlot() {
	latest := b.Model.NewIntVar(0, b.Cat.Grid.TotalSlots()-1, "latest-slot")
	for key, v := range b.Factory.ScheduleVar {
		b.Model.AddIndicatorLowerBound(latest, v, int(key.Slot))
	}
	b.Model.AddIntObjectiveTerm(latest, b.Cfg.Weights.LatestSlot)
}
