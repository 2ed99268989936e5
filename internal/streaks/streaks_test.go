package streaks

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/foodfireroad/foodfire/internal/core"
)

var utc = CalendarIn(time.UTC)

func day(y int, m time.Month, d int) Day {
	return Day{Year: y, Month: m, Day: d}
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func series(start Day, totals ...int) []DailyTotal {
	out := make([]DailyTotal, 0, len(totals))
	d := start
	for _, t := range totals {
		out = append(out, DailyTotal{Day: d, Total: t})
		d = d.Next()
	}
	return out
}

// =============================================================================
// Calendar Tests
// =============================================================================

func TestDay_Next(t *testing.T) {
	tests := []struct {
		in   Day
		want Day
	}{
		{day(2024, time.January, 1), day(2024, time.January, 2)},
		{day(2024, time.January, 31), day(2024, time.February, 1)},
		{day(2024, time.February, 28), day(2024, time.February, 29)},
		{day(2023, time.February, 28), day(2023, time.March, 1)},
		{day(2024, time.December, 31), day(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := tt.in.Next(); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDay_Ordering(t *testing.T) {
	a := day(2024, time.March, 9)
	b := day(2024, time.March, 10)

	if !a.Before(b) || a.After(b) {
		t.Error("2024-03-09 should be before 2024-03-10")
	}
	if b.Before(a) || !b.After(a) {
		t.Error("2024-03-10 should be after 2024-03-09")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a day is neither before nor after itself")
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if d != day(2024, time.February, 29) {
		t.Errorf("ParseDay() = %v", d)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String() = %q", d.String())
	}

	if _, err := ParseDay("29/02/2024"); err == nil {
		t.Error("ParseDay() should reject non ISO dates")
	}
}

func TestCalendar_DayOf_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	cal := CalendarIn(tokyo)

	// 2024-05-01 20:00 UTC is already 2024-05-02 in Tokyo.
	ts := at(2024, time.May, 1, 20, 0)

	if got := utc.DayOf(ts); got != day(2024, time.May, 1) {
		t.Errorf("UTC DayOf() = %v", got)
	}
	if got := cal.DayOf(ts); got != day(2024, time.May, 2) {
		t.Errorf("JST DayOf() = %v", got)
	}

	start := cal.StartOfDay(ts)
	if start.Hour() != 0 || start.Minute() != 0 || start.Location() != tokyo {
		t.Errorf("StartOfDay() = %v", start)
	}
}

func TestCalendarIn_NilIsLocal(t *testing.T) {
	if CalendarIn(nil).Location() != time.Local {
		t.Error("nil location should fall back to time.Local")
	}
	var zero Calendar
	if zero.Location() != time.Local {
		t.Error("zero Calendar should use time.Local")
	}
}

// =============================================================================
// Aggregate Tests
// =============================================================================

func TestNewDatedQuantity_ClampsNegative(t *testing.T) {
	q := NewDatedQuantity(at(2024, time.June, 1, 8, 0), -50)
	if q.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", q.Quantity)
	}
}

func TestAggregate_SumsSameDay(t *testing.T) {
	events := []DatedQuantity{
		NewDatedQuantity(at(2024, time.June, 2, 19, 0), 700),
		NewDatedQuantity(at(2024, time.June, 1, 8, 0), 400),
		NewDatedQuantity(at(2024, time.June, 1, 23, 59), 600),
		NewDatedQuantity(at(2024, time.June, 2, 0, 1), 300),
	}

	got := Aggregate(events, utc)
	want := []DailyTotal{
		{Day: day(2024, time.June, 1), Total: 1000},
		{Day: day(2024, time.June, 2), Total: 1000},
	}

	if len(got) != len(want) {
		t.Fatalf("Aggregate() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Aggregate()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, utc); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestAggregate_IgnoresRawNegative(t *testing.T) {
	events := []DatedQuantity{
		{Timestamp: at(2024, time.June, 1, 8, 0), Quantity: -200},
		{Timestamp: at(2024, time.June, 1, 9, 0), Quantity: 300},
	}
	got := Aggregate(events, utc)
	if len(got) != 1 || got[0].Total != 300 {
		t.Errorf("Aggregate() = %+v, want single total 300", got)
	}
}

func randomEvents(r *rand.Rand, n int) []DatedQuantity {
	base := at(2024, time.January, 1, 0, 0)
	events := make([]DatedQuantity, 0, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(r.Intn(30*24*60)) * time.Minute
		events = append(events, NewDatedQuantity(base.Add(offset), r.Intn(1500)))
	}
	return events
}

func TestAggregate_ConservesTotal(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		events := randomEvents(r, r.Intn(200))

		var in int
		for _, ev := range events {
			in += ev.Quantity
		}

		var out int
		for _, d := range Aggregate(events, utc) {
			out += d.Total
		}

		if in != out {
			t.Fatalf("run %d: sum in = %d, sum out = %d", run, in, out)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for run := 0; run < 50; run++ {
		first := Aggregate(randomEvents(r, r.Intn(200)), utc)

		again := make([]DatedQuantity, 0, len(first))
		for _, d := range first {
			again = append(again, NewDatedQuantity(d.Day.Time(time.UTC), d.Total))
		}
		second := Aggregate(again, utc)

		if len(first) != len(second) {
			t.Fatalf("run %d: len %d != %d", run, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("run %d: [%d] %+v != %+v", run, i, first[i], second[i])
			}
		}
	}
}

// =============================================================================
// FillGaps Tests
// =============================================================================

func TestFillGaps(t *testing.T) {
	totals := []DailyTotal{
		{Day: day(2024, time.February, 27), Total: 1800},
		{Day: day(2024, time.March, 1), Total: 2100},
		{Day: day(2024, time.March, 9), Total: 999}, // outside range
	}

	got := FillGaps(totals, day(2024, time.February, 27), day(2024, time.March, 2))
	want := []DailyTotal{
		{Day: day(2024, time.February, 27), Total: 1800},
		{Day: day(2024, time.February, 28), Total: 0},
		{Day: day(2024, time.February, 29), Total: 0},
		{Day: day(2024, time.March, 1), Total: 2100},
		{Day: day(2024, time.March, 2), Total: 0},
	}

	if len(got) != len(want) {
		t.Fatalf("FillGaps() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FillGaps()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFillGaps_ReversedRange(t *testing.T) {
	got := FillGaps(nil, day(2024, time.March, 2), day(2024, time.March, 1))
	if len(got) != 0 {
		t.Errorf("FillGaps() = %v, want empty", got)
	}
}

func TestFillGaps_SingleDay(t *testing.T) {
	got := FillGaps(nil, day(2024, time.March, 1), day(2024, time.March, 1))
	if len(got) != 1 || got[0].Total != 0 {
		t.Errorf("FillGaps() = %+v, want one zero day", got)
	}
}

// =============================================================================
// Rule Tests
// =============================================================================

func TestRule_IsSuccess(t *testing.T) {
	tests := []struct {
		rule  Rule
		total int
		goal  int
		want  bool
	}{
		{AtOrBelowGoal, 1999, 2000, true},
		{AtOrBelowGoal, 2000, 2000, true},
		{AtOrBelowGoal, 2001, 2000, false},
		{AtOrBelowGoal, 0, 2000, true},
		{AtOrAboveGoal, 1999, 2000, false},
		{AtOrAboveGoal, 2000, 2000, true},
		{AtOrAboveGoal, 2001, 2000, true},
		{AtOrAboveGoal, 0, 2000, false},
	}

	for _, tt := range tests {
		if got := tt.rule.IsSuccess(tt.total, tt.goal); got != tt.want {
			t.Errorf("%v.IsSuccess(%d, %d) = %v, want %v", tt.rule, tt.total, tt.goal, got, tt.want)
		}
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    Rule
		wantErr bool
	}{
		{"below", AtOrBelowGoal, false},
		{"ABOVE", AtOrAboveGoal, false},
		{" at-or-above ", AtOrAboveGoal, false},
		{"", AtOrBelowGoal, false},
		{"sideways", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRule(tt.in)
			if tt.wantErr {
				if !errors.Is(err, core.ErrUnknownRule) {
					t.Errorf("ParseRule(%q) error = %v, want ErrUnknownRule", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRule(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRule(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Compute Tests
// =============================================================================

func TestCompute(t *testing.T) {
	start := day(2024, time.April, 1)

	tests := []struct {
		name string
		days []DailyTotal
		goal int
		rule Rule
		want Result
	}{
		{
			name: "mixed below goal",
			days: series(start, 1800, 2200, 1900, 1700),
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{Current: 2, Best: 2, EvaluatedDays: 4},
		},
		{
			name: "empty series",
			days: nil,
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{},
		},
		{
			name: "zero goal",
			days: series(start, 100, 200),
			goal: 0,
			rule: AtOrBelowGoal,
			want: Result{},
		},
		{
			name: "negative goal",
			days: series(start, 100, 200),
			goal: -5,
			rule: AtOrAboveGoal,
			want: Result{},
		},
		{
			name: "best earlier than current",
			days: series(start, 1000, 1000, 1000, 2500, 1000),
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{Current: 1, Best: 3, EvaluatedDays: 5},
		},
		{
			name: "last day fails",
			days: series(start, 1000, 1000, 2600),
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{Current: 0, Best: 2, EvaluatedDays: 3},
		},
		{
			name: "all succeed",
			days: series(start, 2000, 2000, 2000),
			goal: 2000,
			rule: AtOrAboveGoal,
			want: Result{Current: 3, Best: 3, EvaluatedDays: 3},
		},
		{
			name: "gap day breaks above-goal streak",
			days: series(start, 2100, 0, 2300, 2400),
			goal: 2000,
			rule: AtOrAboveGoal,
			want: Result{Current: 2, Best: 2, EvaluatedDays: 4},
		},
		{
			name: "gap day counts for below-goal streak",
			days: series(start, 2100, 0, 1900),
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{Current: 2, Best: 2, EvaluatedDays: 3},
		},
		{
			name: "equal runs keep the first best",
			days: series(start, 1, 1, 5000, 1, 1),
			goal: 2000,
			rule: AtOrBelowGoal,
			want: Result{Current: 2, Best: 2, EvaluatedDays: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.days, tt.goal, tt.rule); got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompute_NormalisesMalformedInput(t *testing.T) {
	start := day(2024, time.April, 1)
	clean := series(start, 1800, 2200, 1900, 1700)

	// Reversed, and day 3 split into two halves.
	malformed := []DailyTotal{
		clean[3],
		{Day: clean[2].Day, Total: 900},
		clean[1],
		{Day: clean[2].Day, Total: 1000},
		clean[0],
	}

	want := Compute(clean, 2000, AtOrBelowGoal)
	if got := Compute(malformed, 2000, AtOrBelowGoal); got != want {
		t.Errorf("Compute(malformed) = %+v, want %+v", got, want)
	}
}

func TestCompute_TrailingRun(t *testing.T) {
	start := day(2024, time.January, 1)
	for n := 0; n <= 10; n++ {
		totals := []int{2500} // one failing day before the run
		for i := 0; i < n; i++ {
			totals = append(totals, 1500)
		}
		got := Compute(series(start, totals...), 2000, AtOrBelowGoal)
		if got.Current != n {
			t.Errorf("n=%d: Current = %d", n, got.Current)
		}
	}
}

func TestCompute_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	start := day(2023, time.December, 1)

	for run := 0; run < 200; run++ {
		n := r.Intn(60)
		totals := make([]int, n)
		for i := range totals {
			totals[i] = r.Intn(4000)
		}
		rule := Rule(r.Intn(2))
		goal := r.Intn(3000) - 200

		got := Compute(series(start, totals...), goal, rule)

		if goal <= 0 {
			if got != (Result{}) {
				t.Fatalf("run %d: goal %d gave %+v", run, goal, got)
			}
			continue
		}
		if got.EvaluatedDays != n {
			t.Fatalf("run %d: EvaluatedDays = %d, want %d", run, got.EvaluatedDays, n)
		}
		if got.Current > got.Best {
			t.Fatalf("run %d: current %d > best %d", run, got.Current, got.Best)
		}
		if got.Best > got.EvaluatedDays {
			t.Fatalf("run %d: best %d > evaluated %d", run, got.Best, got.EvaluatedDays)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	days := series(day(2024, time.May, 1), 100, 2100, 300, 400, 2500, 600)
	first := Compute(days, 2000, AtOrBelowGoal)
	for i := 0; i < 20; i++ {
		if got := Compute(days, 2000, AtOrBelowGoal); got != first {
			t.Fatalf("Compute() not deterministic: %+v != %+v", got, first)
		}
	}
}
