package state

import (
	"github.com/google/uuid"

	"github.com/foodfireroad/foodfire/internal/core"
)

// SeedSampleRecipes adds the sample recipes when there are no recipes yet.
// It reports whether anything was added.
func (s *State) SeedSampleRecipes() bool {
	seeded := false
	_ = s.mutate(func() error {
		if s.recipes.Len() > 0 {
			return nil
		}
		for _, r := range SampleRecipes() {
			if err := s.recipes.Add(r); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if seeded {
		s.notify(Change{Kind: RecipesChanged})
	}
	return seeded
}

// SampleRecipes returns freshly identified copies of the built-in recipes.
func SampleRecipes() []core.Recipe {
	return []core.Recipe{
		sample("Greek Salad", "Mediterranean", 2, 180, true,
			ing("Cucumber", "1", "pc"),
			ing("Tomatoes", "2", "pcs"),
			ing("Red onion", "1/4", "pc"),
			ing("Feta cheese", "60", "g"),
			ing("Olives", "10", "pcs"),
			ing("Olive oil", "1", "tbsp"),
			ing("Lemon juice", "1", "tbsp"),
		),
		sample("Oatmeal with Berries", "Breakfast", 1, 320, false,
			ing("Rolled oats", "60", "g"),
			ing("Milk or water", "200", "ml"),
			ing("Blueberries", "50", "g"),
			ing("Banana", "1/2", "pc"),
			ing("Honey (optional)", "1", "tsp"),
		),
		sample("Grilled Chicken & Quinoa Bowl", "Healthy", 2, 450, false,
			ing("Chicken breast", "250", "g"),
			ing("Quinoa (dry)", "120", "g"),
			ing("Cherry tomatoes", "100", "g"),
			ing("Spinach", "60", "g"),
			ing("Olive oil", "1", "tbsp"),
			ing("Lemon", "1/2", "pc"),
		),
		sample("Veggie Omelette", "Breakfast", 1, 300, false,
			ing("Eggs", "2", "pcs"),
			ing("Egg whites", "2", "pcs"),
			ing("Bell pepper", "1/4", "pc"),
			ing("Mushrooms", "80", "g"),
			ing("Spinach", "40", "g"),
		),
		sample("Lentil Soup", "Vegetarian", 3, 250, false,
			ing("Red lentils (dry)", "200", "g"),
			ing("Carrot", "1", "pc"),
			ing("Onion", "1", "pc"),
			ing("Garlic", "2", "cloves"),
			ing("Vegetable broth", "800", "ml"),
			ing("Olive oil", "1", "tbsp"),
		),
	}
}

func sample(title, cuisine string, servings, kcal int, favorite bool, ings ...core.Ingredient) core.Recipe {
	return core.Recipe{
		ID:             uuid.New(),
		Title:          title,
		Cuisine:        &cuisine,
		Servings:       servings,
		KcalPerServing: kcal,
		Ingredients:    ings,
		IsFavorite:     favorite,
	}
}

func ing(title, amount, unit string) core.Ingredient {
	return core.Ingredient{ID: uuid.New(), Title: title, Amount: amount, Unit: unit}
}
