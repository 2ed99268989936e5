package streaks

import (
	"fmt"
	"strings"

	"github.com/foodfireroad/foodfire/internal/core"
)

// Rule decides whether a day's total meets the goal.
type Rule int

const (
	// AtOrBelowGoal succeeds when total <= goal (intake limits).
	AtOrBelowGoal Rule = iota
	// AtOrAboveGoal succeeds when total >= goal (burn or protein targets).
	AtOrAboveGoal
)

// ParseRule accepts "below" or "above" (and the full rule names). An empty
// string is AtOrBelowGoal.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "below", "at-or-below", "atorbelowgoal", "":
		return AtOrBelowGoal, nil
	case "above", "at-or-above", "atorabovegoal":
		return AtOrAboveGoal, nil
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnknownRule, s)
}

func (r Rule) String() string {
	switch r {
	case AtOrBelowGoal:
		return "below"
	case AtOrAboveGoal:
		return "above"
	default:
		return "unknown"
	}
}

// IsSuccess applies the rule to one day.
func (r Rule) IsSuccess(total, goal int) bool {
	if r == AtOrAboveGoal {
		return total >= goal
	}
	return total <= goal
}

// Result holds streak lengths in days.
type Result struct {
	Current       int // trailing run of successes ending at the last day
	Best          int // longest run of successes anywhere in the series
	EvaluatedDays int
}

// Compute evaluates the streaks of an ascending, gap-filled daily series.
//
// A goal <= 0 yields the zero Result. Duplicate days are summed and the series
// is sorted before evaluation, so unsorted input gives the result of its
// normalised form. Compute never inserts missing days: callers that want an
// unrecorded day to count must pass it, usually via FillGaps.
func Compute(days []DailyTotal, goal int, rule Rule) Result {
	if goal <= 0 {
		return Result{}
	}

	series := collapse(days)

	success := make([]bool, len(series))
	for i, d := range series {
		success[i] = rule.IsSuccess(d.Total, goal)
	}

	best, run := 0, 0
	for _, ok := range success {
		if !ok {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}

	current := 0
	for i := len(success) - 1; i >= 0 && success[i]; i-- {
		current++
	}

	return Result{
		Current:       current,
		Best:          best,
		EvaluatedDays: len(series),
	}
}
