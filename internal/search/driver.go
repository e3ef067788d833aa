// Package search is the Search Driver (spec.md §4.5): a single call
// into a solverapi.Model's Solve, distinguishing the four outcomes
// (optimal, feasible, infeasible, model-invalid/unknown) and
// extracting the raw boolean/integer assignment into a
// schedule.MasterSchedule. Grounded on the teacher's
// internal/solver/integrated_scheduler.go orchestration shape: one
// exported entry point that sequences assembly, solve and extraction,
// logging progress at each stage via an injected *zap.Logger rather
// than fmt.Printf.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/constraints"
	"github.com/campusforge/timetablecore/internal/objective"
	"github.com/campusforge/timetablecore/internal/schedule"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
	"github.com/campusforge/timetablecore/internal/xerrors"
)

// Outcome names the four statuses spec.md §4.5 distinguishes.
type Outcome string

const (
	OutcomeOptimal     Outcome = "OPTIMAL"
	OutcomeFeasible    Outcome = "FEASIBLE"
	OutcomeInfeasible  Outcome = "INFEASIBLE"
	OutcomeUnknown     Outcome = "UNKNOWN"
)

// Result is what Run returns: the solved schedule (nil unless an
// incumbent exists) and its outcome/summary.
type Result struct {
	Outcome  Outcome
	Schedule schedule.MasterSchedule
	Summary  schedule.Summary
}

// Run assembles variables, constraints and objective onto model, then
// solves with the configured wall-clock budget and extracts the
// result. cat and cfg must already have passed the Feasibility
// Auditor with no blocking diagnostics.
func Run(ctx context.Context, log *zap.Logger, model solverapi.Model, cat catalog.Catalog, cfg config.Config) (Result, error) {
	log.Info("variable factory: emitting decision variables")
	factory := varfactory.New(model, cat)

	log.Info("constraint assembler: attaching constraints")
	asm := constraints.New(model, cat, cfg, factory)
	asm.AssembleAll()

	log.Info("objective builder: adding weighted terms")
	objBuilder := objective.New(model, cat, cfg, factory, asm)
	objBuilder.BuildAll()

	log.Info("search driver: invoking solver", zap.Duration("budget", cfg.SolverBudget))
	solveResult, err := model.Solve(ctx, cfg.SolverBudget)
	if err != nil {
		return Result{}, fmt.Errorf("search: solve failed: %w", err)
	}

	outcome := outcomeFrom(solveResult.Status)
	log.Info("search driver: solve finished", zap.String("outcome", string(outcome)))

	if outcome == OutcomeInfeasible || outcome == OutcomeUnknown {
		return Result{Outcome: outcome, Summary: schedule.Summary{Status: string(outcome)}}, nil
	}

	sched := extract(cat, factory, asm, solveResult.Assignment)
	summary := summarize(cat.Grid, sched, outcome, solveResult)

	return Result{Outcome: outcome, Schedule: sched, Summary: summary}, nil
}

func outcomeFrom(s solverapi.Status) Outcome {
	switch s {
	case solverapi.StatusOptimal:
		return OutcomeOptimal
	case solverapi.StatusFeasible:
		return OutcomeFeasible
	case solverapi.StatusInfeasible:
		return OutcomeInfeasible
	default:
		return OutcomeUnknown
	}
}

// SolverError wraps the three solver-error taxonomy entries from
// spec.md §7 ("Solver errors"): infeasible, model-invalid, timeout
// without incumbent.
type SolverError struct {
	Outcome Outcome
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("search: solver returned %s", e.Outcome)
}

// Diagnose converts a non-successful Outcome into a xerrors.Diagnostic
// for uniform reporting alongside auditor/validation diagnostics.
func Diagnose(o Outcome) xerrors.Diagnostic {
	switch o {
	case OutcomeInfeasible:
		return xerrors.Diagnostic{Code: xerrors.CodeSolverInfeasible, Severity: xerrors.SeverityError, Message: "model is infeasible"}
	case OutcomeUnknown:
		return xerrors.Diagnostic{Code: xerrors.CodeSolverTimeout, Severity: xerrors.SeverityError, Message: "solver timed out without an incumbent"}
	default:
		return xerrors.Diagnostic{Code: xerrors.CodeSolverInvalid, Severity: xerrors.SeverityInfo, Message: "solve succeeded"}
	}
}
