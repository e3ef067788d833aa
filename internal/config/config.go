// Package config loads and validates the solver run's configuration:
// which optional constraints are active, caps and solver budget. The
// objective weight table is always DefaultWeights; it is not read
// from the file or the environment. It is built once at start-up and passed
// explicitly into every builder afterward — no ambient global state
// (spec.md §9).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully-resolved, validated run configuration.
type Config struct {
	SemesterParity string // "odd" or "even"

	TeacherWeeklyCap int
	AssistantRatio   int // students per teacher before an assistant is required; default 20

	MaxConsecutiveStudent int
	MaxConsecutiveTeacher int
	MaxDailyHoursStudent  int
	MaxDailyHoursTeacher  int

	TwoHourPracticalBlock bool
	EarlyCompletion       bool

	SolverBudget time.Duration

	Weights Weights
}

// Weights holds the objective's penalty coefficients. Their relative
// order (not their absolute values) is the invariant spec.md §4.4
// requires: undersized room >> theory-in-lab > oversized room >
// isolated-practical > GE-lecture-slot-misuse > day-usage >
// latest-slot. This mirrors the teacher's three-tier PenaltyHard/
// PenaltyMedium/PenaltySoft table (internal/domain/constants.go),
// generalized to seven named weights.
type Weights struct {
	UndersizedRoom      int
	TheoryInLab         int
	OversizedRoom       int
	IsolatedPractical   int
	GenericElectiveMiss int
	DayUsage            int
	LatestSlot          int
}

// DefaultWeights returns the weight table whose relative order
// satisfies spec.md §4.4. Load always uses this table. Absolute values
// are not an invariant; only Weights.InOrder below must always hold.
func DefaultWeights() Weights {
	return Weights{
		UndersizedRoom:      10000,
		TheoryInLab:         500,
		OversizedRoom:       50,
		IsolatedPractical:   20,
		GenericElectiveMiss: 10,
		DayUsage:            5,
		LatestSlot:          1,
	}
}

// InOrder reports whether w satisfies the required weight ordering.
func (w Weights) InOrder() bool {
	return w.UndersizedRoom > w.TheoryInLab &&
		w.TheoryInLab > w.OversizedRoom &&
		w.OversizedRoom > w.IsolatedPractical &&
		w.IsolatedPractical > w.GenericElectiveMiss &&
		w.GenericElectiveMiss > w.DayUsage &&
		w.DayUsage > w.LatestSlot
}

// Load reads configuration from an optional file plus environment
// overrides (prefix TIMETABLE_), applies defaults, and validates the
// result. Grounded on noah-isme-sma-adp-api/pkg/config.Load.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg := Config{
		SemesterParity:        v.GetString("semester_parity"),
		TeacherWeeklyCap:       v.GetInt("teacher_weekly_cap"),
		AssistantRatio:         v.GetInt("assistant_ratio"),
		MaxConsecutiveStudent:  v.GetInt("max_consecutive_student"),
		MaxConsecutiveTeacher:  v.GetInt("max_consecutive_teacher"),
		MaxDailyHoursStudent:   v.GetInt("max_daily_hours_student"),
		MaxDailyHoursTeacher:   v.GetInt("max_daily_hours_teacher"),
		TwoHourPracticalBlock:  v.GetBool("two_hour_practical_block"),
		EarlyCompletion:        v.GetBool("early_completion"),
		SolverBudget:           v.GetDuration("solver_budget"),
		Weights:                DefaultWeights(),
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("semester_parity", "odd")
	v.SetDefault("teacher_weekly_cap", 18)
	v.SetDefault("assistant_ratio", 20)
	v.SetDefault("max_consecutive_student", 4)
	v.SetDefault("max_consecutive_teacher", 5)
	v.SetDefault("max_daily_hours_student", 8)
	v.SetDefault("max_daily_hours_teacher", 8)
	v.SetDefault("two_hour_practical_block", true)
	v.SetDefault("early_completion", false)
	v.SetDefault("solver_budget", "5m")
}

// Validate checks the configuration's numeric invariants.
func (c Config) Validate() error {
	if c.SemesterParity != "odd" && c.SemesterParity != "even" {
		return fmt.Errorf("config: semester_parity must be \"odd\" or \"even\", got %q", c.SemesterParity)
	}
	if c.TeacherWeeklyCap <= 0 {
		return fmt.Errorf("config: teacher_weekly_cap must be positive")
	}
	if c.AssistantRatio <= 0 {
		return fmt.Errorf("config: assistant_ratio must be positive")
	}
	if c.MaxConsecutiveStudent <= 0 || c.MaxConsecutiveTeacher <= 0 {
		return fmt.Errorf("config: max-consecutive caps must be positive")
	}
	if c.MaxDailyHoursStudent <= 0 || c.MaxDailyHoursTeacher <= 0 {
		return fmt.Errorf("config: max-daily-hour caps must be positive")
	}
	if c.SolverBudget <= 0 {
		return fmt.Errorf("config: solver_budget must be positive")
	}
	if !c.Weights.InOrder() {
		return fmt.Errorf("config: objective weights violate required ordering")
	}
	return nil
}
