// Package constraints is the Constraint Assembler (spec.md §4.3): it
// attaches every always-on hard constraint and, per configuration,
// the user-selectable hard/soft families, to a solverapi.Model built
// from a varfactory.Factory. Split one family per file, mirroring the
// teacher's internal/graph package layout (one addXConflicts function
// per conflict family, all invoked from one builder entry point).
package constraints

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// Assembler attaches constraints to a model for one catalog/config pair.
type Assembler struct {
	Model   solverapi.Model
	Cat     catalog.Catalog
	Cfg     config.Config
	Factory *varfactory.Factory

	// BlockStart is populated by addTwoHourPracticalBlock with the
	// "is-2hr-block-starting-at-t" Boolean for every (subject, slot)
	// pair where a block could start, consumed by the Objective
	// Builder's isolated-practical term.
	BlockStart map[varfactory.SlotKey]solverapi.BoolVar

	// IsolatedPracticalVar mirrors BlockStart's coverage: one Boolean
	// per practical ScheduleVar that is true iff that hour is not part
	// of any 2-hour block, used directly by the objective (spec.md
	// §4.4 item 4).
	IsolatedPracticalVar map[varfactory.SlotKey]solverapi.BoolVar
}

// New creates an Assembler for the given model/catalog/config/factory.
func New(model solverapi.Model, cat catalog.Catalog, cfg config.Config, f *varfactory.Factory) *Assembler {
	return &Assembler{
		Model:                model,
		Cat:                  cat,
		Cfg:                  cfg,
		Factory:              f,
		BlockStart:           make(map[varfactory.SlotKey]solverapi.BoolVar),
		IsolatedPracticalVar: make(map[varfactory.SlotKey]solverapi.BoolVar),
	}
}

// AssembleAll attaches every always-on constraint and every
// user-selected family enabled in a.Cfg.
func (a *Assembler) AssembleAll() {
	a.addHourTotals()
	a.addExactlyOneRoomIfScheduled()
	a.addTeacherNonClash()
	a.addRoomNonClash()
	a.addCohortNonClash()
	a.addTeacherWeeklyCap()
	a.addMergeSynchronization()
	a.addSplitNonConcurrency()
	a.addSameSubjectSectionNonConcurrency()

	if a.Cfg.TwoHourPracticalBlock {
		a.addTwoHourPracticalBlock()
	}
	a.addMaxConsecutive()
	a.addMaxDailyHours()
}
