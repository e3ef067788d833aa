// Package localsearch is the reference implementation of
// solverapi.Model: a deterministic, seeded simulated-annealing search
// over the boolean decision variables, grounded on the teacher's
// internal/solver/simulated_annealing.go (same SAConfig-style
// temperature/cooling-rate knobs, same "pick a variable, try a move,
// accept or reject by temperature" loop), generalized from coloring
// moves to a generic constraint-violation cost function.
//
// No CP/SAT binding exists anywhere in the reference corpus this
// module was built from (see DESIGN.md); this backend is the
// stand-in the design notes in spec.md §9 call for, built narrowly
// enough behind solverapi.Model that a real CP/SAT engine could
// replace it without touching any caller.
package localsearch

import (
	"math/rand"

	"github.com/campusforge/timetablecore/internal/solverapi"
)

// Config tunes the annealing search. Grounded on the teacher's
// SAConfig (internal/solver/simulated_annealing.go).
type Config struct {
	InitialTemp float64
	CoolingRate float64
	MaxSteps    int
	Seed        int64
}

// DefaultConfig returns reasonable defaults for catalog-scale models.
func DefaultConfig() Config {
	return Config{
		InitialTemp: 50.0,
		CoolingRate: 0.999,
		MaxSteps:    400000,
		Seed:        1,
	}
}

type constraintKind int

const (
	kindLinearEq constraintKind = iota
	kindLinearLeq
	kindBoolOr
	kindReifyAnd
	kindReifyOr
	kindImplyEqualBool
)

type constraint struct {
	kind  constraintKind
	terms []solverapi.LinearTerm // linearEq, linearLeq
	rhs   int
	lits  []solverapi.Lit // boolOr, reifyAnd, reifyOr
	res   solverapi.BoolVar
	cond  solverapi.BoolVar // implyEqualBool
	a, b  solverapi.BoolVar
}

type indicatorBound struct {
	v    solverapi.IntVar
	cond solverapi.BoolVar
	lb   int
}

type objTerm struct {
	isInt  bool
	bv     solverapi.BoolVar
	iv     solverapi.IntVar
	weight int
}

// Backend is the in-process solverapi.Model implementation.
type Backend struct {
	cfg Config

	numBools int
	numInts  int
	intLo    map[solverapi.IntVar]int
	intHi    map[solverapi.IntVar]int

	constraints []constraint
	bounds      []indicatorBound
	objective   []objTerm

	// varConstraints maps each BoolVar to the indices of constraints
	// that mention it. Solve picks moves uniformly at random and does
	// not consult it.
	varConstraints map[solverapi.BoolVar][]int
}

// New creates an empty model backed by cfg.
func New(cfg Config) *Backend {
	return &Backend{
		cfg:            cfg,
		intLo:          make(map[solverapi.IntVar]int),
		intHi:          make(map[solverapi.IntVar]int),
		varConstraints: make(map[solverapi.BoolVar][]int),
	}
}

func (b *Backend) NewBoolVar(_ string) solverapi.BoolVar {
	v := solverapi.BoolVar(b.numBools)
	b.numBools++
	return v
}

func (b *Backend) NewIntVar(lo, hi int, _ string) solverapi.IntVar {
	v := solverapi.IntVar(b.numInts)
	b.numInts++
	b.intLo[v] = lo
	b.intHi[v] = hi
	return v
}

func (b *Backend) register(c constraint) {
	idx := len(b.constraints)
	b.constraints = append(b.constraints, c)
	for _, t := range c.terms {
		b.varConstraints[t.Var] = append(b.varConstraints[t.Var], idx)
	}
	for _, l := range c.lits {
		b.varConstraints[l.Var] = append(b.varConstraints[l.Var], idx)
	}
	if c.kind == kindReifyAnd || c.kind == kindReifyOr {
		b.varConstraints[c.res] = append(b.varConstraints[c.res], idx)
	}
	if c.kind == kindImplyEqualBool {
		b.varConstraints[c.cond] = append(b.varConstraints[c.cond], idx)
		b.varConstraints[c.a] = append(b.varConstraints[c.a], idx)
		b.varConstraints[c.b] = append(b.varConstraints[c.b], idx)
	}
}

func (b *Backend) AddLinearEq(terms []solverapi.LinearTerm, rhs int) {
	b.register(constraint{kind: kindLinearEq, terms: terms, rhs: rhs})
}

func (b *Backend) AddLinearLeq(terms []solverapi.LinearTerm, rhs int) {
	b.register(constraint{kind: kindLinearLeq, terms: terms, rhs: rhs})
}

func (b *Backend) AddBoolOr(lits []solverapi.Lit) {
	b.register(constraint{kind: kindBoolOr, lits: lits})
}

func (b *Backend) AddReifyAnd(result solverapi.BoolVar, lits []solverapi.Lit) {
	b.register(constraint{kind: kindReifyAnd, res: result, lits: lits})
}

func (b *Backend) AddReifyOr(result solverapi.BoolVar, lits []solverapi.Lit) {
	b.register(constraint{kind: kindReifyOr, res: result, lits: lits})
}

func (b *Backend) AddImplyEqualBool(cond, a, c solverapi.BoolVar) {
	b.register(constraint{kind: kindImplyEqualBool, cond: cond, a: a, b: c})
}

func (b *Backend) AddIndicatorLowerBound(v solverapi.IntVar, cond solverapi.BoolVar, lowerBound int) {
	b.bounds = append(b.bounds, indicatorBound{v: v, cond: cond, lb: lowerBound})
}

func (b *Backend) AddBoolObjectiveTerm(v solverapi.BoolVar, weight int) {
	b.objective = append(b.objective, objTerm{bv: v, weight: weight})
}

func (b *Backend) AddIntObjectiveTerm(v solverapi.IntVar, weight int) {
	b.objective = append(b.objective, objTerm{isInt: true, iv: v, weight: weight})
}

var _ solverapi.Model = (*Backend)(nil)

// rngSource returns a math/rand generator seeded from Config.Seed.
// Solve seeds its own generator the same way and does not call it.
func (b *Backend) rngSource() *rand.Rand {
	return rand.New(rand.NewSource(b.cfg.Seed))
}
