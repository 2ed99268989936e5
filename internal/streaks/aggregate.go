package streaks

import (
	"sort"
	"time"
)

// DatedQuantity is a time-stamped non-negative amount, such as the kcal of a
// meal or the burn of an activity.
type DatedQuantity struct {
	Timestamp time.Time
	Quantity  int
}

// NewDatedQuantity builds an event, clamping negative quantities to zero.
func NewDatedQuantity(ts time.Time, qty int) DatedQuantity {
	if qty < 0 {
		qty = 0
	}
	return DatedQuantity{Timestamp: ts, Quantity: qty}
}

// DailyTotal is the summed quantity of one calendar day.
type DailyTotal struct {
	Day   Day
	Total int
}

// Aggregate collapses events into one total per calendar day of cal.
// The result is sorted ascending by day. Days without events are absent.
func Aggregate(events []DatedQuantity, cal Calendar) []DailyTotal {
	byDay := make(map[Day]int, len(events))
	for _, ev := range events {
		qty := ev.Quantity
		if qty < 0 {
			qty = 0
		}
		byDay[cal.DayOf(ev.Timestamp)] += qty
	}
	return fromMap(byDay)
}

// collapse sums totals sharing a day and sorts the result ascending.
func collapse(days []DailyTotal) []DailyTotal {
	byDay := make(map[Day]int, len(days))
	for _, d := range days {
		total := d.Total
		if total < 0 {
			total = 0
		}
		byDay[d.Day] += total
	}
	return fromMap(byDay)
}

func fromMap(byDay map[Day]int) []DailyTotal {
	totals := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		totals = append(totals, DailyTotal{Day: day, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Day.Before(totals[j].Day)
	})
	return totals
}

// FillGaps returns every day in [from, to] in ascending order, with the total
// from totals where present and 0 otherwise. Totals outside the range are
// dropped. An empty series is returned when from is after to.
func FillGaps(totals []DailyTotal, from, to Day) []DailyTotal {
	if from.After(to) {
		return []DailyTotal{}
	}

	byDay := make(map[Day]int, len(totals))
	for _, t := range totals {
		byDay[t.Day] += t.Total
	}

	var filled []DailyTotal
	for d := from; !d.After(to); d = d.Next() {
		filled = append(filled, DailyTotal{Day: d, Total: byDay[d]})
	}
	return filled
}
