package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseMealType(t *testing.T) {
	tests := []struct {
		in      string
		want    MealType
		wantErr bool
	}{
		{"breakfast", MealBreakfast, false},
		{" Lunch ", MealLunch, false},
		{"DINNER", MealDinner, false},
		{"snack", MealSnack, false},
		{"brunch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMealType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseMealType(%q) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMealType(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestMealType_Text(t *testing.T) {
	if _, err := MealType("elevenses").MarshalText(); err == nil {
		t.Error("MarshalText() should reject unknown meal types")
	}

	var mt MealType
	if err := mt.UnmarshalText([]byte("tea")); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("UnmarshalText() error = %v, want ErrCorruptDocument", err)
	}
	if err := mt.UnmarshalText([]byte("dinner")); err != nil || mt != MealDinner {
		t.Errorf("UnmarshalText(dinner) = %q, %v", mt, err)
	}
}

func TestParseUnitSystem(t *testing.T) {
	if u, err := ParseUnitSystem("Imperial"); err != nil || u != UnitsImperial {
		t.Errorf("ParseUnitSystem(Imperial) = %q, %v", u, err)
	}
	if _, err := ParseUnitSystem("cubits"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseUnitSystem(cubits) error = %v, want ErrInvalidInput", err)
	}
}

func TestMeal_JSONFieldNames(t *testing.T) {
	recipe := uuid.New()
	trip := "Lisbon"
	m := Meal{
		ID:       uuid.New(),
		Date:     time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		TripTag:  &trip,
		Type:     MealBreakfast,
		Title:    "Pastel de nata",
		Kcal:     300,
		RecipeID: &recipe,
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"tripTag":"Lisbon"`, `"recipeId":"` + recipe.String() + `"`, `"type":"breakfast"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded meal missing %s: %s", want, data)
		}
	}
	if strings.Contains(string(data), "notes") {
		t.Errorf("absent notes should be omitted: %s", data)
	}
}

func TestRecipe_TotalKcal(t *testing.T) {
	r := Recipe{Servings: 3, KcalPerServing: 250}
	if got := r.TotalKcal(); got != 750 {
		t.Errorf("TotalKcal() = %d, want 750", got)
	}
}

func TestRecipe_Clone(t *testing.T) {
	cuisine := "Thai"
	r := Recipe{
		ID:          uuid.New(),
		Cuisine:     &cuisine,
		Ingredients: []Ingredient{{ID: uuid.New(), Title: "Rice"}},
	}

	c := r.Clone()
	c.Ingredients[0].Title = "Noodles"
	*c.Cuisine = "Lao"

	if r.Ingredients[0].Title != "Rice" {
		t.Errorf("clone shares ingredients: %q", r.Ingredients[0].Title)
	}
	if *r.Cuisine != "Thai" {
		t.Errorf("clone shares cuisine: %q", *r.Cuisine)
	}
	if (Recipe{}).Clone().Ingredients != nil {
		t.Error("nil ingredients should stay nil")
	}
}

func TestMeal_Clone(t *testing.T) {
	notes := "spicy"
	recipeID := uuid.New()
	m := Meal{ID: uuid.New(), Notes: &notes, RecipeID: &recipeID}

	c := m.Clone()
	*c.Notes = "mild"
	*c.RecipeID = uuid.Nil

	if *m.Notes != "spicy" || *m.RecipeID != recipeID {
		t.Error("clone shares pointer fields")
	}
	if c.TripTag != nil {
		t.Error("nil trip tag should stay nil")
	}
}

func TestValidIntensity(t *testing.T) {
	for i, want := range map[int]bool{0: false, 1: true, 2: true, 3: true, 4: false} {
		if got := ValidIntensity(i); got != want {
			t.Errorf("ValidIntensity(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	if !doc.IsEmpty() {
		t.Error("default document should be empty")
	}
	if doc.Meals == nil || doc.Recipes == nil || doc.Activities == nil {
		t.Error("default collections should be non-nil")
	}
	if doc.Settings.DailyKcalGoal != DefaultGoal || doc.Settings.UnitSystem != UnitsMetric {
		t.Errorf("Settings = %+v", doc.Settings)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"meals":[]`) {
		t.Errorf("empty meals should encode as []: %s", data)
	}
}
