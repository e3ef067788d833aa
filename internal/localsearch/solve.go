package localsearch

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/campusforge/timetablecore/internal/solverapi"
)

// state is a mutable trial assignment the search mutates in place.
type state struct {
	bools []bool
	ints  []int
}

func (b *Backend) newState() state {
	s := state{
		bools: make([]bool, b.numBools),
		ints:  make([]int, b.numInts),
	}
	for v, lo := range b.intLo {
		s.ints[v] = lo
	}
	return s
}

// deriveInts recomputes every IntVar from its AddIndicatorLowerBound
// registrations: value = max(lo, max{lb : cond true}). IntVars in
// this model are never searched directly, only derived, since every
// use in spec.md §4.2-§4.4 is a "largest active lower bound" pattern
// (latest occupied slot, peak concurrent load).
func (b *Backend) deriveInts(s *state) {
	for v, lo := range b.intLo {
		s.ints[int(v)] = lo
	}
	for _, bd := range b.bounds {
		if s.bools[int(bd.cond)] && bd.lb > s.ints[int(bd.v)] {
			s.ints[int(bd.v)] = bd.lb
		}
	}
}

// violationCost counts hard-constraint violations across the model.
// Constraints are always hard (solverapi.Model's contract); softness
// lives only in the objective, accumulated separately.
func (b *Backend) violationCost(s *state) int {
	cost := 0
	for i := range b.constraints {
		cost += b.constraintViolation(s, i)
	}
	return cost
}

func (b *Backend) constraintViolation(s *state, idx int) int {
	c := &b.constraints[idx]
	switch c.kind {
	case kindLinearEq:
		sum := 0
		for _, t := range c.terms {
			if s.bools[int(t.Var)] {
				sum += t.Coeff
			}
		}
		d := sum - c.rhs
		if d < 0 {
			d = -d
		}
		return d
	case kindLinearLeq:
		sum := 0
		for _, t := range c.terms {
			if s.bools[int(t.Var)] {
				sum += t.Coeff
			}
		}
		if sum > c.rhs {
			return sum - c.rhs
		}
		return 0
	case kindBoolOr:
		for _, l := range c.lits {
			if litTrue(s, l) {
				return 0
			}
		}
		return 1
	case kindReifyAnd:
		all := true
		for _, l := range c.lits {
			if !litTrue(s, l) {
				all = false
				break
			}
		}
		if s.bools[int(c.res)] == all {
			return 0
		}
		return 1
	case kindReifyOr:
		any := false
		for _, l := range c.lits {
			if litTrue(s, l) {
				any = true
				break
			}
		}
		if s.bools[int(c.res)] == any {
			return 0
		}
		return 1
	case kindImplyEqualBool:
		if !s.bools[int(c.cond)] {
			return 0
		}
		if s.bools[int(c.a)] == s.bools[int(c.b)] {
			return 0
		}
		return 1
	default:
		return 0
	}
}

func litTrue(s *state, l solverapi.Lit) bool {
	v := s.bools[int(l.Var)]
	if l.Neg {
		return !v
	}
	return v
}

// softCost sums the weighted objective terms over the current state.
func (b *Backend) softCost(s *state) int {
	total := 0
	for _, t := range b.objective {
		if t.isInt {
			total += t.weight * s.ints[int(t.iv)]
		} else if s.bools[int(t.bv)] {
			total += t.weight
		}
	}
	return total
}

// touchedConstraints returns the constraint indices that mention v.
// Solve does not call it; every flip rescans the whole model.
func (b *Backend) touchedConstraints(v solverapi.BoolVar) []int {
	return b.varConstraints[v]
}

// Solve runs a deterministic simulated-annealing search over the bool
// variables, grounded on the teacher's internal/solver/
// simulated_annealing.go accept/reject loop, generalized from a
// coloring-conflict cost to the generic hard-violation + soft-weight
// cost computed above. A fixed Config.Seed (never time-seeded) makes
// two runs over the same model produce the same result, satisfying
// the reproducibility property in spec.md §8.
func (b *Backend) Solve(ctx context.Context, budget time.Duration) (solverapi.Result, error) {
	deadline := time.Now().Add(budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	rng := rand.New(rand.NewSource(b.cfg.Seed))

	current := b.newState()
	b.randomizeFeasible(current.bools, rng)
	b.deriveInts(&current)
	currentHard := b.violationCost(&current)
	currentSoft := b.softCost(&current)

	best := cloneState(current)
	bestHard := currentHard
	bestSoft := currentSoft

	temp := b.cfg.InitialTemp
	steps := 0
	timedOut := false

	for steps < b.cfg.MaxSteps {
		select {
		case <-ctx.Done():
			timedOut = true
			steps = b.cfg.MaxSteps
		default:
		}
		if time.Now().After(deadline) {
			timedOut = true
			break
		}
		if b.numBools == 0 {
			break
		}

		idx := rng.Intn(b.numBools)
		v := solverapi.BoolVar(idx)
		current.bools[idx] = !current.bools[idx]

		b.deriveInts(&current)
		newHard := b.violationCost(&current)
		newSoft := b.softCost(&current)

		deltaHard := newHard - currentHard
		deltaSoft := newSoft - currentSoft
		// Hard violations dominate: a move that improves hard cost is
		// always preferred regardless of soft delta, mirroring the
		// teacher's "conflicts first, color preference second" scoring.
		delta := float64(deltaHard)*1000 + float64(deltaSoft)

		accept := delta <= 0
		if !accept && temp > 1e-9 {
			accept = rng.Float64() < math.Exp(-delta/temp)
		}

		if accept {
			currentHard = newHard
			currentSoft = newSoft
			if currentHard < bestHard || (currentHard == bestHard && currentSoft < bestSoft) {
				best = cloneState(current)
				bestHard = currentHard
				bestSoft = currentSoft
			}
		} else {
			current.bools[idx] = !current.bools[idx]
			b.deriveInts(&current)
		}

		_ = v
		temp *= b.cfg.CoolingRate
		steps++
	}

	status := solverapi.StatusFeasible
	switch {
	case bestHard == 0 && !timedOut:
		status = solverapi.StatusOptimal
	case bestHard == 0:
		status = solverapi.StatusFeasible
	default:
		status = solverapi.StatusUnknown
	}

	assignment := solverapi.Assignment{
		Bools: make(map[solverapi.BoolVar]bool, b.numBools),
		Ints:  make(map[solverapi.IntVar]int, b.numInts),
	}
	for i, v := range best.bools {
		assignment.Bools[solverapi.BoolVar(i)] = v
	}
	for i, v := range best.ints {
		assignment.Ints[solverapi.IntVar(i)] = v
	}

	return solverapi.Result{
		Status:         status,
		Assignment:     assignment,
		ObjectiveValue: bestSoft,
	}, nil
}

func cloneState(s state) state {
	c := state{
		bools: make([]bool, len(s.bools)),
		ints:  make([]int, len(s.ints)),
	}
	copy(c.bools, s.bools)
	copy(c.ints, s.ints)
	return c
}

// randomizeFeasible seeds each bool true with probability 1/4 (false
// otherwise) and lets the annealing loop discover feasible
// assignments; this minimal backend accepts no caller-supplied
// initial Assignment.
func (b *Backend) randomizeFeasible(bools []bool, rng *rand.Rand) {
	for i := range bools {
		bools[i] = rng.Intn(4) == 0
	}
}
