// Package stats derives the figures shown to the user from the app document:
// meal streaks, intake and burn totals, and per-day balances.
package stats

import (
	"sort"
	"time"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/streaks"
)

// TopCount is how many meals and activities Overview lists
const TopCount = 3

// Facade computes statistics relative to a calendar and a clock.
type Facade struct {
	cal streaks.Calendar
	now func() time.Time
}

// New returns a facade. A nil now uses time.Now.
func New(cal streaks.Calendar, now func() time.Time) *Facade {
	if now == nil {
		now = time.Now
	}
	return &Facade{cal: cal, now: now}
}

// Today returns the current calendar day
func (f *Facade) Today() streaks.Day {
	return f.cal.DayOf(f.now())
}

// MealSeries returns the gap-filled daily intake from the earliest meal day
// through today, or through the latest meal day if that is later.
func (f *Facade) MealSeries(meals []core.Meal) []streaks.DailyTotal {
	if len(meals) == 0 {
		return []streaks.DailyTotal{}
	}

	events := make([]streaks.DatedQuantity, len(meals))
	for i, m := range meals {
		events[i] = streaks.NewDatedQuantity(m.Date, m.Kcal)
	}
	totals := streaks.Aggregate(events, f.cal)

	from := totals[0].Day
	to := f.Today()
	if last := totals[len(totals)-1].Day; last.After(to) {
		to = last
	}
	return streaks.FillGaps(totals, from, to)
}

// MealStreaks computes the streak of days whose intake satisfies rule.
func (f *Facade) MealStreaks(meals []core.Meal, goal int, rule streaks.Rule) streaks.Result {
	return streaks.Compute(f.MealSeries(meals), goal, rule)
}

// Overview summarises the whole document.
type Overview struct {
	TotalIntake   int
	TotalBurn     int
	Balance       int // intake minus burn
	TopMeals      []core.Meal
	TopActivities []core.Activity
}

// Overview returns all-time totals and the first meals and activities in
// stored order.
func (f *Facade) Overview(doc core.Document) Overview {
	var o Overview
	for _, m := range doc.Meals {
		o.TotalIntake += m.Kcal
	}
	for _, a := range doc.Activities {
		o.TotalBurn += a.Kcal
	}
	o.Balance = o.TotalIntake - o.TotalBurn
	o.TopMeals = append([]core.Meal{}, doc.Meals[:min(TopCount, len(doc.Meals))]...)
	o.TopActivities = append([]core.Activity{}, doc.Activities[:min(TopCount, len(doc.Activities))]...)
	return o
}

// TodayMeals returns the meals eaten today, in stored order.
func (f *Facade) TodayMeals(meals []core.Meal) []core.Meal {
	return f.MealsOn(meals, f.Today())
}

// MealsOn returns the meals eaten on day, in stored order.
func (f *Facade) MealsOn(meals []core.Meal, day streaks.Day) []core.Meal {
	out := []core.Meal{}
	for _, m := range meals {
		if f.cal.DayOf(m.Date) == day {
			out = append(out, m)
		}
	}
	return out
}

// DailyBalance is the intake and burn of one day.
type DailyBalance struct {
	Day    streaks.Day
	Intake int
	Burned int
	Net    int
}

// DailyBalances returns one entry per day with any meal or activity,
// ascending by day.
func (f *Facade) DailyBalances(doc core.Document) []DailyBalance {
	byDay := make(map[streaks.Day]*DailyBalance)
	get := func(t time.Time) *DailyBalance {
		d := f.cal.DayOf(t)
		b, ok := byDay[d]
		if !ok {
			b = &DailyBalance{Day: d}
			byDay[d] = b
		}
		return b
	}

	for _, m := range doc.Meals {
		get(m.Date).Intake += max(0, m.Kcal)
	}
	for _, a := range doc.Activities {
		get(a.Date).Burned += max(0, a.Kcal)
	}

	out := make([]DailyBalance, 0, len(byDay))
	for _, b := range byDay {
		b.Net = b.Intake - b.Burned
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}
