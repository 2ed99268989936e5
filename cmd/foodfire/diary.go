package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodfireroad/foodfire/internal/app"
	"github.com/foodfireroad/foodfire/internal/burn"
	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/report"
)

// =============================================================================
// Meals
// =============================================================================

func mealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and review meals",
	}
	cmd.AddCommand(mealAddCmd())
	cmd.AddCommand(mealListCmd())
	cmd.AddCommand(mealDeleteCmd())
	return cmd
}

func mealAddCmd() *cobra.Command {
	var (
		title, portion, mealType, notes, trip, recipe, when string
		kcal                                               int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a meal",
		Long: `Log a meal by title and energy, or log one serving of a saved recipe
with --recipe (title and kcal then come from the recipe).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseWhen(when)
			if err != nil {
				return err
			}
			typ, err := core.ParseMealType(mealType)
			if err != nil {
				return err
			}

			return withApp(func(a *app.App, out *report.Printer) error {
				s := a.State()

				if recipe != "" {
					id, err := resolveID(s.Recipes(), recipe)
					if err != nil {
						return err
					}
					m, err := s.LogRecipe(id, at, typ)
					if err != nil {
						return err
					}
					fmt.Printf("✓ Logged %s (%d kcal)\n", m.Title, m.Kcal)
					return nil
				}

				if title == "" {
					return fmt.Errorf("%w: --title", core.ErrMissingRequired)
				}
				if kcal < 0 {
					return fmt.Errorf("%w: --kcal must not be negative", core.ErrInvalidInput)
				}
				m, err := s.AddMeal(core.Meal{
					Date:    at,
					TripTag: optional(trip),
					Type:    typ,
					Title:   title,
					Kcal:    kcal,
					Portion: portion,
					Notes:   optional(notes),
				})
				if err != nil {
					return err
				}
				fmt.Printf("✓ Logged %s (%d kcal)\n", m.Title, m.Kcal)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "what you ate")
	cmd.Flags().IntVar(&kcal, "kcal", 0, "energy in kcal")
	cmd.Flags().StringVar(&portion, "portion", "", "portion size, free text")
	cmd.Flags().StringVar(&mealType, "type", string(core.MealLunch), "breakfast, lunch, dinner or snack")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&trip, "trip", "", "trip tag")
	cmd.Flags().StringVar(&recipe, "recipe", "", "log one serving of this recipe (id or id prefix)")
	cmd.Flags().StringVar(&when, "date", "now", "when, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"")
	return cmd
}

func mealListCmd() *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				meals := a.State().Meals()
				if today {
					meals = a.Stats().TodayMeals(meals)
				}
				return out.Meals(meals)
			})
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "only today's meals")
	return cmd
}

func mealDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				id, err := resolveID(a.State().Meals(), args[0])
				if err != nil {
					return err
				}
				if err := a.State().DeleteMeal(id); err != nil {
					return err
				}
				fmt.Println("✓ Meal deleted")
				return nil
			})
		},
	}
}

// =============================================================================
// Recipes
// =============================================================================

func recipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage recipes",
	}
	cmd.AddCommand(recipeListCmd())
	cmd.AddCommand(recipeAddCmd())
	cmd.AddCommand(recipeFavoriteCmd())
	cmd.AddCommand(recipeDeleteCmd())
	return cmd
}

func recipeListCmd() *cobra.Command {
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				recipes := a.State().Recipes()
				if favorites {
					var favs []core.Recipe
					for _, r := range recipes {
						if r.IsFavorite {
							favs = append(favs, r)
						}
					}
					recipes = favs
				}
				return out.Recipes(recipes)
			})
		},
	}

	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favourite recipes")
	return cmd
}

func recipeAddCmd() *cobra.Command {
	var (
		title, cuisine string
		servings, kcal int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("%w: --title", core.ErrMissingRequired)
			}
			if servings <= 0 || kcal < 0 {
				return fmt.Errorf("%w: servings must be positive and kcal not negative", core.ErrInvalidInput)
			}

			return withApp(func(a *app.App, out *report.Printer) error {
				r, err := a.State().AddRecipe(core.Recipe{
					Title:          title,
					Cuisine:        optional(cuisine),
					Servings:       servings,
					KcalPerServing: kcal,
					Ingredients:    []core.Ingredient{},
				})
				if err != nil {
					return err
				}
				fmt.Printf("✓ Saved %s (%d kcal total)\n", r.Title, r.TotalKcal())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "recipe name")
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "cuisine")
	cmd.Flags().IntVar(&servings, "servings", 1, "number of servings")
	cmd.Flags().IntVar(&kcal, "kcal", 0, "kcal per serving")
	return cmd
}

func recipeFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a recipe's favourite mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				id, err := resolveID(a.State().Recipes(), args[0])
				if err != nil {
					return err
				}
				fav, err := a.State().ToggleFavorite(id)
				if err != nil {
					return err
				}
				if fav {
					fmt.Println("★ Marked favourite")
				} else {
					fmt.Println("☆ Removed favourite")
				}
				return nil
			})
		},
	}
}

func recipeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				id, err := resolveID(a.State().Recipes(), args[0])
				if err != nil {
					return err
				}
				if err := a.State().DeleteRecipe(id); err != nil {
					return err
				}
				fmt.Println("✓ Recipe deleted")
				return nil
			})
		},
	}
}

// =============================================================================
// Activities
// =============================================================================

func burnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Log and review activities",
	}
	cmd.AddCommand(burnAddCmd())
	cmd.AddCommand(burnListCmd())
	cmd.AddCommand(burnDeleteCmd())
	return cmd
}

func burnAddCmd() *cobra.Command {
	var (
		activityType, when string
		minutes, intensity int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log an activity; the burn is estimated from type, minutes and intensity",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseWhen(when)
			if err != nil {
				return err
			}
			kcal, err := burn.Estimate(activityType, minutes, intensity)
			if err != nil {
				return err
			}

			return withApp(func(a *app.App, out *report.Printer) error {
				act, err := a.State().AddActivity(core.Activity{
					Date:      at,
					Type:      activityType,
					Minutes:   minutes,
					Intensity: intensity,
					Kcal:      kcal,
				})
				if err != nil {
					return err
				}
				fmt.Printf("🔥 %s for %d min ≈ %d kcal\n", act.Type, act.Minutes, act.Kcal)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&activityType, "type", "Walking", "activity type (Walking, Running, Cycling, Swimming, Yoga, ...)")
	cmd.Flags().IntVar(&minutes, "minutes", 30, "duration in minutes")
	cmd.Flags().IntVar(&intensity, "intensity", core.IntensityMedium, "1 low, 2 medium, 3 high")
	cmd.Flags().StringVar(&when, "date", "now", "when, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"")
	return cmd
}

func burnListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				return out.Activities(a.State().Activities())
			})
		},
	}
}

func burnDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				id, err := resolveID(a.State().Activities(), args[0])
				if err != nil {
					return err
				}
				if err := a.State().DeleteActivity(id); err != nil {
					return err
				}
				fmt.Println("✓ Activity deleted")
				return nil
			})
		},
	}
}
