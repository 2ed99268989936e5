package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodfireroad/foodfire/internal/core"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// At returns the given date and hour in UTC.
func At(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Meal returns a lunch of kcal eaten at date.
func Meal(date time.Time, kcal int) core.Meal {
	return core.Meal{
		ID:      uuid.New(),
		Date:    date,
		Type:    core.MealLunch,
		Title:   "Test meal",
		Kcal:    kcal,
		Portion: "1 plate",
	}
}

// Activity returns a medium-intensity walk that burned kcal at date.
func Activity(date time.Time, kcal int) core.Activity {
	return core.Activity{
		ID:        uuid.New(),
		Date:      date,
		Type:      "Walking",
		Minutes:   30,
		Intensity: core.IntensityMedium,
		Kcal:      kcal,
	}
}

// Recipe returns a recipe with a single ingredient.
func Recipe(title string, servings, kcalPerServing int) core.Recipe {
	return core.Recipe{
		ID:             uuid.New(),
		Title:          title,
		Servings:       servings,
		KcalPerServing: kcalPerServing,
		Ingredients: []core.Ingredient{
			{ID: uuid.New(), Title: "Water", Amount: "100", Unit: "ml"},
		},
	}
}

// Document returns a document holding one meal, recipe and activity with
// non-default settings.
func Document() core.Document {
	cuisine := "Italian"
	notes := "extra cheese"
	trip := "Rome"

	recipe := Recipe("Margherita", 2, 800)
	recipe.Cuisine = &cuisine
	recipe.IsFavorite = true

	meal := Meal(At(2024, time.March, 10, 12), 800)
	meal.Notes = &notes
	meal.TripTag = &trip
	meal.RecipeID = &recipe.ID

	return core.Document{
		Meals:      []core.Meal{meal},
		Recipes:    []core.Recipe{recipe},
		Activities: []core.Activity{Activity(At(2024, time.March, 10, 18), 240)},
		Settings: core.Settings{
			DailyKcalGoal: 1800,
			UnitSystem:    core.UnitsImperial,
		},
	}
}

// Quantities converts kcal values into meals on consecutive days starting at
// start, one meal per day.
func Quantities(start time.Time, kcals ...int) []core.Meal {
	meals := make([]core.Meal, len(kcals))
	for i, k := range kcals {
		meals[i] = Meal(start.AddDate(0, 0, i), k)
	}
	return meals
}
