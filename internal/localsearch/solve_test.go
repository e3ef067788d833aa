package localsearch

import (
	"context"
	"testing"
	"time"

	"github.com/campusforge/timetablecore/internal/solverapi"
)

// smallConfig trims step/time budget down so tests run fast while still
// giving the annealer enough moves to find a trivially satisfiable model.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxSteps = 5000
	return cfg
}

func TestSolveSatisfiesExactlyOneConstraint(t *testing.T) {
	b := New(smallConfig())
	v1 := b.NewBoolVar("a")
	v2 := b.NewBoolVar("b")
	v3 := b.NewBoolVar("c")
	b.AddLinearEq([]solverapi.LinearTerm{
		{Var: v1, Coeff: 1}, {Var: v2, Coeff: 1}, {Var: v3, Coeff: 1},
	}, 1)

	result, err := b.Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != solverapi.StatusOptimal {
		t.Fatalf("expected OPTIMAL, got %s", result.Status)
	}
	count := 0
	for _, v := range []solverapi.BoolVar{v1, v2, v3} {
		if result.Assignment.BoolValue(v) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one variable true, got %d", count)
	}
}

func TestSolveRespectsBoolOr(t *testing.T) {
	b := New(smallConfig())
	v1 := b.NewBoolVar("a")
	v2 := b.NewBoolVar("b")
	b.AddBoolOr([]solverapi.Lit{solverapi.Positive(v1), solverapi.Positive(v2)})

	result, err := b.Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Assignment.BoolValue(v1) && !result.Assignment.BoolValue(v2) {
		t.Fatal("expected at least one of v1, v2 to be true")
	}
}

func TestSolveIsDeterministicGivenFixedSeed(t *testing.T) {
	build := func() *Backend {
		b := New(smallConfig())
		v1 := b.NewBoolVar("a")
		v2 := b.NewBoolVar("b")
		v3 := b.NewBoolVar("c")
		b.AddLinearEq([]solverapi.LinearTerm{
			{Var: v1, Coeff: 1}, {Var: v2, Coeff: 1}, {Var: v3, Coeff: 1},
		}, 1)
		return b
	}

	r1, err := build().Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := build().Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.Status != r2.Status {
		t.Fatalf("expected identical status across runs, got %s and %s", r1.Status, r2.Status)
	}
	for v := solverapi.BoolVar(0); v < 3; v++ {
		if r1.Assignment.BoolValue(v) != r2.Assignment.BoolValue(v) {
			t.Fatalf("expected identical assignment for var %d across runs with the same seed", v)
		}
	}
}

func TestIndicatorLowerBoundDerivesIntVar(t *testing.T) {
	b := New(smallConfig())
	cond := b.NewBoolVar("cond")
	latest := b.NewIntVar(0, 10, "latest")
	b.AddIndicatorLowerBound(latest, cond, 7)
	b.AddLinearEq([]solverapi.LinearTerm{{Var: cond, Coeff: 1}}, 1) // force cond true
	b.AddIntObjectiveTerm(latest, 1)

	result, err := b.Solve(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != solverapi.StatusOptimal {
		t.Fatalf("expected OPTIMAL, got %s", result.Status)
	}
	if result.Assignment.IntValue(latest) != 7 {
		t.Fatalf("expected derived latest == 7, got %d", result.Assignment.IntValue(latest))
	}
}
