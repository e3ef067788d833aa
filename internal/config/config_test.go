package config

import "testing"

func TestDefaultWeightsInOrder(t *testing.T) {
	w := DefaultWeights()
	if !w.InOrder() {
		t.Fatalf("default weights violate required ordering: %+v", w)
	}
}

func TestWeightsInOrderRejectsViolation(t *testing.T) {
	w := DefaultWeights()
	w.TheoryInLab = w.UndersizedRoom + 1 // violates UndersizedRoom > TheoryInLab
	if w.InOrder() {
		t.Fatal("expected InOrder to reject a weight-ordering violation")
	}
}

func TestValidateRejectsBadSemesterParity(t *testing.T) {
	c := Config{
		SemesterParity:        "spring",
		TeacherWeeklyCap:      18,
		AssistantRatio:        20,
		MaxConsecutiveStudent: 4,
		MaxConsecutiveTeacher: 5,
		MaxDailyHoursStudent:  8,
		MaxDailyHoursTeacher:  8,
		SolverBudget:          1,
		Weights:               DefaultWeights(),
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an invalid semester parity")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := Config{
		SemesterParity:        "odd",
		TeacherWeeklyCap:      18,
		AssistantRatio:        20,
		MaxConsecutiveStudent: 4,
		MaxConsecutiveTeacher: 5,
		MaxDailyHoursStudent:  8,
		MaxDailyHoursTeacher:  8,
		SolverBudget:          1,
		Weights:               DefaultWeights(),
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
