// Package report renders foodfire data as plain-text tables.
//
// Numbers are formatted for the printer's language, so 12345 kcal prints as
// "12,345" in English and "12.345" in German.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/stats"
	"github.com/foodfireroad/foodfire/internal/streaks"
)

// DateLayout is how record timestamps are shown
const DateLayout = "2006-01-02 15:04"

// Printer writes reports to w.
type Printer struct {
	w   io.Writer
	p   *message.Printer
	loc *time.Location
}

// New returns a printer for the given language. A nil loc shows times in
// time.Local.
func New(w io.Writer, tag language.Tag, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.Local
	}
	return &Printer{w: w, p: message.NewPrinter(tag), loc: loc}
}

// ParseLanguage parses a BCP 47 tag, falling back to English.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

func (r *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

func (r *Printer) kcal(n int) string {
	return r.p.Sprintf("%d kcal", n)
}

func (r *Printer) date(t time.Time) string {
	return t.In(r.loc).Format(DateLayout)
}

// Meals lists meals in the given order.
func (r *Printer) Meals(meals []core.Meal) error {
	if len(meals) == 0 {
		_, err := fmt.Fprintln(r.w, "No meals logged.")
		return err
	}
	tw := r.table()
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tTITLE\tPORTION\tENERGY\tTRIP")
	for _, m := range meals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(m.ID.String()), r.date(m.Date), m.Type, m.Title, m.Portion, r.kcal(m.Kcal), deref(m.TripTag))
	}
	return tw.Flush()
}

// Recipes lists recipes with their ingredients.
func (r *Printer) Recipes(recipes []core.Recipe) error {
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(r.w, "No recipes.")
		return err
	}
	tw := r.table()
	fmt.Fprintln(tw, "ID\tTITLE\tCUISINE\tSERVINGS\tPER SERVING\tFAVORITE")
	for _, rc := range recipes {
		fav := ""
		if rc.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(rc.ID.String()), rc.Title, deref(rc.Cuisine), r.p.Sprintf("%d", rc.Servings), r.kcal(rc.KcalPerServing), fav)
		for _, ing := range rc.Ingredients {
			fmt.Fprintf(tw, "\t  %s\t%s\t\t\t\n", ing.Title, strings.TrimSpace(ing.Amount+" "+ing.Unit))
		}
	}
	return tw.Flush()
}

// Activities lists activities in the given order.
func (r *Printer) Activities(activities []core.Activity) error {
	if len(activities) == 0 {
		_, err := fmt.Fprintln(r.w, "No activities logged.")
		return err
	}
	tw := r.table()
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tMINUTES\tINTENSITY\tBURNED")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(a.ID.String()), r.date(a.Date), a.Type, r.p.Sprintf("%d", a.Minutes), intensityName(a.Intensity), r.kcal(a.Kcal))
	}
	return tw.Flush()
}

// Overview prints totals and the first few meals and activities.
func (r *Printer) Overview(o stats.Overview) error {
	tw := r.table()
	fmt.Fprintf(tw, "Total intake:\t%s\n", r.kcal(o.TotalIntake))
	fmt.Fprintf(tw, "Total burned:\t%s\n", r.kcal(o.TotalBurn))
	fmt.Fprintf(tw, "Balance:\t%s\n", r.kcal(o.Balance))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(o.TopMeals) > 0 {
		fmt.Fprintln(r.w, "\nRecent meals:")
		for _, m := range o.TopMeals {
			fmt.Fprintf(r.w, "  %s  %s\n", m.Title, r.kcal(m.Kcal))
		}
	}
	if len(o.TopActivities) > 0 {
		fmt.Fprintln(r.w, "\nRecent activities:")
		for _, a := range o.TopActivities {
			fmt.Fprintf(r.w, "  %s  %s\n", a.Type, r.kcal(a.Kcal))
		}
	}
	return nil
}

// Balances prints one line per day.
func (r *Printer) Balances(days []stats.DailyBalance) error {
	if len(days) == 0 {
		_, err := fmt.Fprintln(r.w, "Nothing logged yet.")
		return err
	}
	tw := r.table()
	fmt.Fprintln(tw, "DAY\tINTAKE\tBURNED\tNET")
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Day, r.kcal(d.Intake), r.kcal(d.Burned), r.kcal(d.Net))
	}
	return tw.Flush()
}

// Streaks prints a streak result.
func (r *Printer) Streaks(res streaks.Result, goal int, rule streaks.Rule) error {
	cmp := "at or below"
	if rule == streaks.AtOrAboveGoal {
		cmp = "at or above"
	}
	tw := r.table()
	fmt.Fprintf(tw, "Goal:\t%s (%s)\n", r.kcal(goal), cmp)
	fmt.Fprintf(tw, "Current streak:\t%s\n", r.days(res.Current))
	fmt.Fprintf(tw, "Best streak:\t%s\n", r.days(res.Best))
	fmt.Fprintf(tw, "Days evaluated:\t%s\n", r.p.Sprintf("%d", res.EvaluatedDays))
	return tw.Flush()
}

// Settings prints user preferences.
func (r *Printer) Settings(s core.Settings) error {
	tw := r.table()
	fmt.Fprintf(tw, "Daily goal:\t%s\n", r.kcal(s.DailyKcalGoal))
	fmt.Fprintf(tw, "Units:\t%s\n", s.UnitSystem)
	return tw.Flush()
}

func (r *Printer) days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return r.p.Sprintf("%d days", n)
}

func intensityName(i int) string {
	switch i {
	case core.IntensityLow:
		return "low"
	case core.IntensityMedium:
		return "medium"
	case core.IntensityHigh:
		return "high"
	default:
		return fmt.Sprintf("%d", i)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
