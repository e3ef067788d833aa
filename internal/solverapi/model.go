// Package solverapi defines the narrow interface around a CP/SAT-class
// solver backend called for in spec.md §9 ("Solver coupling"): create-
// bool-var, create-int-var, add-linear-sum-leq, add-reif-equivalence,
// add-bool-or/and, set-objective, solve-with-budget. Any CP/SAT-class
// engine can sit behind Model; this repo ships one reference
// implementation in internal/localsearch, since no off-the-shelf
// CP/SAT binding exists in the reference corpus (see DESIGN.md).
package solverapi

import (
	"context"
	"time"
)

// BoolVar is an opaque handle to a 0/1 decision variable. Identity is
// the handle value, never a printable name — per the "string-built
// variable names for deduplication" design note in spec.md §9, names
// passed to New*Var are for diagnostics only.
type BoolVar int

// IntVar is an opaque handle to a bounded integer variable.
type IntVar int

// Lit is a literal: a BoolVar or its negation.
type Lit struct {
	Var BoolVar
	Neg bool
}

// Positive returns the literal for v.
func Positive(v BoolVar) Lit { return Lit{Var: v} }

// Negative returns the literal for NOT v.
func Negative(v BoolVar) Lit { return Lit{Var: v, Neg: true} }

// LinearTerm is one coefficient*BoolVar addend of a linear constraint.
type LinearTerm struct {
	Var   BoolVar
	Coeff int
}

// Status is the solver outcome, one of the four spec.md §4.5 names.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnknown // model-invalid or timeout without incumbent
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Assignment is a full valuation of every variable in a Model.
type Assignment struct {
	Bools map[BoolVar]bool
	Ints  map[IntVar]int
}

// BoolValue returns the assigned value of v, or false if unassigned.
func (a Assignment) BoolValue(v BoolVar) bool { return a.Bools[v] }

// IntValue returns the assigned value of v, or 0 if unassigned.
func (a Assignment) IntValue(v IntVar) int { return a.Ints[v] }

// Result is what Solve returns.
type Result struct {
	Status         Status
	Assignment     Assignment
	ObjectiveValue int
}

// Model is the narrow interface the Constraint Assembler, Objective
// Builder and Search Driver use to talk to a CP/SAT-class backend.
// Implementations must treat every constraint as hard; softness is
// expressed only through the objective terms.
type Model interface {
	NewBoolVar(label string) BoolVar
	NewIntVar(lo, hi int, label string) IntVar

	// AddLinearEq asserts sum(terms) == rhs.
	AddLinearEq(terms []LinearTerm, rhs int)
	// AddLinearLeq asserts sum(terms) <= rhs.
	AddLinearLeq(terms []LinearTerm, rhs int)
	// AddBoolOr asserts at least one literal is true.
	AddBoolOr(lits []Lit)
	// AddReifyAnd asserts result <=> AND(lits).
	AddReifyAnd(result BoolVar, lits []Lit)
	// AddReifyOr asserts result <=> OR(lits).
	AddReifyOr(result BoolVar, lits []Lit)
	// AddImplyEqualBool asserts cond == true -> a == b.
	AddImplyEqualBool(cond, a, b BoolVar)
	// AddIndicatorLowerBound asserts cond == true -> v >= lowerBound.
	AddIndicatorLowerBound(v IntVar, cond BoolVar, lowerBound int)

	AddBoolObjectiveTerm(v BoolVar, weight int)
	AddIntObjectiveTerm(v IntVar, weight int)

	// Solve runs the search, bounded by budget (or ctx's deadline if
	// sooner), and returns the best assignment found.
	Solve(ctx context.Context, budget time.Duration) (Result, error)
}
