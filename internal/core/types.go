// Package core defines the fundamental types for foodfire.
// Everything that is persisted in the app document lives here.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultGoal is the daily kcal goal of a fresh document.
const DefaultGoal = 2000

// -----------------------------------------------------------------------------
// MEAL - A single eaten portion
// -----------------------------------------------------------------------------

// MealType is the slot of the day a meal belongs to
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists every meal type in display order
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType parses a meal type name, case-insensitively.
func ParseMealType(s string) (MealType, error) {
	t := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: meal type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// IsValid reports whether t is one of the known meal types
func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (t MealType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: meal type %q", ErrInvalidInput, string(t))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values are rejected.
func (t *MealType) UnmarshalText(text []byte) error {
	v := MealType(text)
	if !v.IsValid() {
		return fmt.Errorf("%w: meal type %q", ErrCorruptDocument, string(text))
	}
	*t = v
	return nil
}

// Meal is one logged intake.
type Meal struct {
	ID       uuid.UUID  `json:"id"`
	Date     time.Time  `json:"date"`
	TripTag  *string    `json:"tripTag,omitempty"`
	Type     MealType   `json:"type"`
	Title    string     `json:"title"`
	Kcal     int        `json:"kcal"`
	Portion  string     `json:"portion"`
	Notes    *string    `json:"notes,omitempty"`
	RecipeID *uuid.UUID `json:"recipeId,omitempty"`
}

// Key returns the meal's identifier
func (m Meal) Key() uuid.UUID { return m.ID }

// Clone returns a copy of m that shares no memory with it.
func (m Meal) Clone() Meal {
	m.TripTag = clonePtr(m.TripTag)
	m.Notes = clonePtr(m.Notes)
	m.RecipeID = clonePtr(m.RecipeID)
	return m
}

// -----------------------------------------------------------------------------
// RECIPE - A reusable dish
// -----------------------------------------------------------------------------

// Ingredient is one line of a recipe.
type Ingredient struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Amount string    `json:"amount"`
	Unit   string    `json:"unit"`
}

// Recipe is a dish that meals may reference.
type Recipe struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Cuisine        *string      `json:"cuisine,omitempty"`
	Servings       int          `json:"servings"`
	KcalPerServing int          `json:"kcalPerServing"`
	Ingredients    []Ingredient `json:"ingredients"`
	IsFavorite     bool         `json:"isFavorite"`
}

// Key returns the recipe's identifier
func (r Recipe) Key() uuid.UUID { return r.ID }

// Clone returns a copy of r that shares no memory with it.
func (r Recipe) Clone() Recipe {
	r.Cuisine = clonePtr(r.Cuisine)
	if r.Ingredients != nil {
		r.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	}
	return r
}

// TotalKcal is the energy of the whole recipe (all servings)
func (r Recipe) TotalKcal() int {
	return r.Servings * r.KcalPerServing
}

// -----------------------------------------------------------------------------
// ACTIVITY - Burned calories
// -----------------------------------------------------------------------------

// Intensity bounds for activities (low, medium, high)
const (
	IntensityLow    = 1
	IntensityMedium = 2
	IntensityHigh   = 3
)

// Activity is one logged burn.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Minutes   int       `json:"minutes"`
	Intensity int       `json:"intensity"` // 1-3
	Kcal      int       `json:"kcal"`
}

// Key returns the activity's identifier
func (a Activity) Key() uuid.UUID { return a.ID }

// ValidIntensity reports whether i is within the low..high range
func ValidIntensity(i int) bool {
	return i >= IntensityLow && i <= IntensityHigh
}

// -----------------------------------------------------------------------------
// SETTINGS
// -----------------------------------------------------------------------------

// UnitSystem selects metric or imperial display units
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// ParseUnitSystem parses a unit system name, case-insensitively.
func ParseUnitSystem(s string) (UnitSystem, error) {
	u := UnitSystem(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("%w: unit system %q", ErrInvalidInput, s)
	}
	return u, nil
}

// IsValid reports whether u is one of the known unit systems
func (u UnitSystem) IsValid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// MarshalText implements encoding.TextMarshaler.
func (u UnitSystem) MarshalText() ([]byte, error) {
	if !u.IsValid() {
		return nil, fmt.Errorf("%w: unit system %q", ErrInvalidInput, string(u))
	}
	return []byte(u), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values are rejected.
func (u *UnitSystem) UnmarshalText(text []byte) error {
	v := UnitSystem(text)
	if !v.IsValid() {
		return fmt.Errorf("%w: unit system %q", ErrCorruptDocument, string(text))
	}
	*u = v
	return nil
}

// Settings holds user preferences.
type Settings struct {
	DailyKcalGoal int        `json:"dailyKcalGoal"`
	UnitSystem    UnitSystem `json:"unitSystem"`
}

// DefaultSettings returns the settings of a fresh document
func DefaultSettings() Settings {
	return Settings{
		DailyKcalGoal: DefaultGoal,
		UnitSystem:    UnitsMetric,
	}
}

// -----------------------------------------------------------------------------
// DOCUMENT - The whole persisted state
// -----------------------------------------------------------------------------

// Document is the full application state, always read and written as one unit.
type Document struct {
	Meals      []Meal     `json:"meals"`
	Recipes    []Recipe   `json:"recipes"`
	Activities []Activity `json:"activities"`
	Settings   Settings   `json:"settings"`
}

// DefaultDocument returns the empty document used on first run and after
// a corrupt or unreadable document is found.
func DefaultDocument() Document {
	return Document{
		Meals:      []Meal{},
		Recipes:    []Recipe{},
		Activities: []Activity{},
		Settings:   DefaultSettings(),
	}
}

// IsEmpty reports whether the document holds no records
func (d Document) IsEmpty() bool {
	return len(d.Meals) == 0 && len(d.Recipes) == 0 && len(d.Activities) == 0
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
