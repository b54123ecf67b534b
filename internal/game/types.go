package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Phase is the round's lifecycle state. PhaseConfiguring names the moment
// between a settings commit and the new round; Configure passes through it
// without stopping, so Phase never reports it.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseInProgress  Phase = "in_progress"
	PhaseWon         Phase = "won"
	PhaseLost        Phase = "lost"
)

type Settings struct {
	Min         int `json:"min"`
	Max         int `json:"max"`
	MaxAttempts int `json:"maxAttempts"`
}

type ViolationKind string

const (
	NotANonNegativeInteger ViolationKind = "not_a_non_negative_integer"
	OutOfRange             ViolationKind = "out_of_range"
	MinNotBelowMax         ViolationKind = "min_not_below_max"
)

// ValidationError reports one rejected settings field. Low and High are set
// for OutOfRange only.
type ValidationError struct {
	Field string        `json:"field"`
	Kind  ViolationKind `json:"kind"`
	Low   int           `json:"low,omitempty"`
	High  int           `json:"high,omitempty"`
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case OutOfRange:
		return fmt.Sprintf("%s: out of range (%d,%d)", e.Field, e.Low, e.High)
	case MinNotBelowMax:
		return fmt.Sprintf("%s: must be greater than min", e.Field)
	default:
		return fmt.Sprintf("%s: not a non-negative integer", e.Field)
	}
}

type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	return strings.Join(lo.Map(errs, func(e ValidationError, _ int) string {
		return e.Error()
	}), "; ")
}

// ByField groups the violations by the field they are tagged to.
func (errs ValidationErrors) ByField() map[string][]ValidationError {
	return lo.GroupBy([]ValidationError(errs), func(e ValidationError) string { return e.Field })
}

type OutcomeKind string

const (
	OutcomeNotANumber OutcomeKind = "not_a_number"
	OutcomeTooHigh    OutcomeKind = "too_high"
	OutcomeTooLow     OutcomeKind = "too_low"
	OutcomeCorrect    OutcomeKind = "correct"
	OutcomeLost       OutcomeKind = "lost"
	OutcomeRoundOver  OutcomeKind = "round_over"
)

// Outcome is the result of one guess. Secret is only populated for
// OutcomeCorrect and OutcomeLost.
type Outcome struct {
	Kind              OutcomeKind `json:"kind"`
	AttemptsRemaining int         `json:"attemptsRemaining"`
	Secret            int         `json:"secret,omitempty"`
}
