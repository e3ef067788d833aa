// Command timetable is the CLI front-end: it wires catalog ingestion,
// the Feasibility Auditor, the Search Driver and the Assistant
// Assigner together and maps the outcome to a process exit code
// (spec.md §6). Grounded on russross-schedule/cli.go's
// cobra.Command{Use, Short, Run} plus Flags().*Var style, generalized
// from that repo's gen/swap/score/bycourse/byinstructor subcommands to
// a single "solve" command against this pipeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusforge/timetablecore/internal/assistant"
	"github.com/campusforge/timetablecore/internal/auditor"
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/exporter"
	"github.com/campusforge/timetablecore/internal/ingest"
	"github.com/campusforge/timetablecore/internal/localsearch"
	"github.com/campusforge/timetablecore/internal/observability"
	"github.com/campusforge/timetablecore/internal/search"
)

// Exit codes, per spec.md §6 "Process exit codes".
const (
	exitSuccess            = 0
	exitValidationFailure  = 1
	exitFeasibilityGuard   = 2
	exitInfeasible         = 3
	exitTimeoutNoIncumbent = 4
)

var (
	catalogPath  string
	rosterPath   string
	strengthPath string
	configPath   string
	outPath      string
	gridDays     = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"}
	gridHours    = []string{"08:30-09:30", "09:30-10:30", "10:30-11:30", "11:30-12:30",
		"12:30-13:30", "13:30-14:30", "14:30-15:30", "15:30-16:30", "16:30-17:30"}
)

func main() {
	root := &cobra.Command{
		Use:   "timetable",
		Short: "University timetable scheduler",
		Long:  "Builds a weekly university timetable from a subject catalog, teacher roster\nand enrollment data, subject to the configured constraint set.",
	}

	cmdSolve := &cobra.Command{
		Use:   "solve",
		Short: "validate, audit and solve a catalog",
		Run:   runSolve,
	}
	cmdSolve.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog CSV or JSON file (required)")
	cmdSolve.Flags().StringVar(&rosterPath, "roster", "", "path to the teacher roster JSON file (required)")
	cmdSolve.Flags().StringVar(&strengthPath, "strengths", "", "path to the section-strengths JSON file (required)")
	cmdSolve.Flags().StringVar(&configPath, "config", "", "path to an optional config file (TIMETABLE_* env vars also apply)")
	cmdSolve.Flags().StringVar(&outPath, "out", "", "optional path to write the solved schedule as JSON")
	cmdSolve.MarkFlagRequired("catalog")
	cmdSolve.MarkFlagRequired("roster")
	cmdSolve.MarkFlagRequired("strengths")
	root.AddCommand(cmdSolve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitValidationFailure)
	}
}

func runSolve(cmd *cobra.Command, args []string) {
	zapLog, err := observability.NewLogger(observability.EnvFromOS())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(exitValidationFailure)
	}
	defer zapLog.Sync()
	log := zapLog.Sugar()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Errorw("config load failed", "error", err)
		os.Exit(exitValidationFailure)
	}

	rows, err := readCatalogFile(catalogPath)
	if err != nil {
		log.Errorw("catalog ingestion failed", "error", err)
		os.Exit(exitValidationFailure)
	}
	roster, err := readRosterFile(rosterPath)
	if err != nil {
		log.Errorw("roster ingestion failed", "error", err)
		os.Exit(exitValidationFailure)
	}
	strengths, err := readStrengthsFile(strengthPath)
	if err != nil {
		log.Errorw("strengths ingestion failed", "error", err)
		os.Exit(exitValidationFailure)
	}

	grid, err := catalog.NewTimeGrid(gridDays, gridHours)
	if err != nil {
		log.Errorw("time grid construction failed", "error", err)
		os.Exit(exitValidationFailure)
	}

	builder := catalog.NewBuilder(catalog.Config{
		Grid:                 grid,
		Teachers:             roster,
		Strengths:            strengths,
		CategoryRequirements: defaultCategoryRequirements(),
		SemesterParity:       cfg.SemesterParity,
	})

	cat, err := builder.Build(rows)
	if err != nil {
		log.Errorw("catalog validation failed", "error", err)
		os.Exit(exitValidationFailure)
	}

	auditReport := auditor.Audit(cat, cfg)
	for _, w := range auditReport.Diagnostics.Warnings() {
		log.Warn(w.String())
	}
	if auditReport.Diagnostics.Blocking() {
		for _, e := range auditReport.Diagnostics.Errors() {
			log.Error(e.String())
		}
		os.Exit(exitFeasibilityGuard)
	}

	backend := localsearch.New(localsearch.DefaultConfig())
	result, err := search.Run(context.Background(), zapLog, backend, cat, cfg)
	if err != nil {
		log.Errorw("search failed", "error", err)
		os.Exit(exitValidationFailure)
	}

	switch result.Outcome {
	case search.OutcomeInfeasible:
		log.Error("model is infeasible")
		os.Exit(exitInfeasible)
	case search.OutcomeUnknown:
		log.Error("solver timed out without an incumbent")
		os.Exit(exitTimeoutNoIncumbent)
	}

	assistResult := assistant.Assign(cat, cfg, result.Schedule)
	for _, w := range assistResult.Diagnostics.Warnings() {
		log.Warn(w.String())
	}

	printSolution(result, assistResult)

	if outPath != "" {
		names := subjectNames(cat)
		if err := exporter.Export(cat.Grid, result.Schedule, result.Summary, assistResult.Assignments, names, outPath); err != nil {
			log.Errorw("schedule export failed", "error", err)
			os.Exit(exitValidationFailure)
		}
	}

	os.Exit(exitSuccess)
}

func subjectNames(cat catalog.Catalog) map[catalog.SubjectID]string {
	names := make(map[catalog.SubjectID]string, len(cat.Subjects))
	for _, s := range cat.Subjects {
		names[s.ID] = s.Name
	}
	return names
}

func printSolution(result search.Result, assistResult assistant.Result) {
	out := struct {
		Summary     interface{} `json:"summary"`
		Assistants  interface{} `json:"assistants"`
	}{
		Summary:    result.Summary,
		Assistants: assistResult.Assignments,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func readCatalogFile(path string) ([]catalog.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if hasSuffix(path, ".json") {
		return ingest.ReadJSON(f)
	}
	return ingest.ReadCSV(f)
}

func readRosterFile(path string) ([]catalog.Teacher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadTeacherRosterJSON(f)
}

func readStrengthsFile(path string) ([]catalog.SectionStrength, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadSectionStrengthsJSON(f)
}

func hasSuffix(path, suffix string) bool {
	if len(path) < len(suffix) {
		return false
	}
	return path[len(path)-len(suffix):] == suffix
}

// defaultCategoryRequirements is the built-in category requirement
// table the CLI always uses; the config file and the ingestion
// formats carry no requirement table of their own.
func defaultCategoryRequirements() catalog.CategoryRequirements {
	return catalog.CategoryRequirements{
		catalog.CategoryCoreRequired:    {Lecture: 3, Tutorial: 1, Practical: 0},
		catalog.CategoryElective:        {Lecture: 3, Tutorial: 0, Practical: 2},
		catalog.CategoryGenericElective: {Lecture: 3, Tutorial: 0, Practical: 0},
		catalog.CategorySkill:           {Lecture: 0, Tutorial: 0, Practical: 2},
		catalog.CategoryValueAdded:      {Lecture: 2, Tutorial: 0, Practical: 0},
		catalog.CategoryAbilityEnhance:  {Lecture: 2, Tutorial: 0, Practical: 0},
	}
}
