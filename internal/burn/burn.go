// Package burn estimates the energy spent on an activity.
package burn

import (
	"fmt"
	"strings"

	"github.com/foodfireroad/foodfire/internal/core"
)

// DefaultBase is the kcal per minute used for activity types not in the table
const DefaultBase = 5

// Known activity types and their base kcal per minute at intensity 2
var bases = map[string]int{
	"walking":  4,
	"running":  10,
	"cycling":  8,
	"swimming": 9,
	"yoga":     3,
}

// Types lists the activity types with a dedicated base rate
func Types() []string {
	return []string{"Walking", "Running", "Cycling", "Swimming", "Yoga"}
}

// Base returns the kcal per minute for activityType, matched case-insensitively.
func Base(activityType string) int {
	if b, ok := bases[strings.ToLower(strings.TrimSpace(activityType))]; ok {
		return b
	}
	return DefaultBase
}

// Estimate returns minutes * base * intensity / 2, truncated.
func Estimate(activityType string, minutes, intensity int) (int, error) {
	if minutes < 0 {
		return 0, fmt.Errorf("%w: minutes %d", core.ErrInvalidInput, minutes)
	}
	if !core.ValidIntensity(intensity) {
		return 0, fmt.Errorf("%w: intensity %d", core.ErrInvalidInput, intensity)
	}
	return minutes * Base(activityType) * intensity / 2, nil
}
