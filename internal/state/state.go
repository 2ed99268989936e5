// Package state holds the in-memory app document and tells subscribers when
// it changes.
//
// State is the single writer of the document during a session. Mutations are
// serialised by a mutex; listeners run synchronously after each successful
// mutation, outside the lock, so they may read the state back.
package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodfireroad/foodfire/internal/core"
)

// ChangeKind identifies which part of the document changed
type ChangeKind int

const (
	MealsChanged ChangeKind = iota
	RecipesChanged
	ActivitiesChanged
	SettingsChanged
	Replaced
)

func (k ChangeKind) String() string {
	switch k {
	case MealsChanged:
		return "meals"
	case RecipesChanged:
		return "recipes"
	case ActivitiesChanged:
		return "activities"
	case SettingsChanged:
		return "settings"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a mutation.
type Change struct {
	Kind ChangeKind
	ID   uuid.UUID // affected record, uuid.Nil for settings and Replace
}

// Listener receives changes.
type Listener func(Change)

// State is the explicit container for meals, recipes, activities and settings.
type State struct {
	mu         sync.RWMutex
	meals      *Collection[core.Meal]
	recipes    *Collection[core.Recipe]
	activities *Collection[core.Activity]
	settings   core.Settings

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// New returns a state holding the default document.
func New() *State {
	s := &State{listeners: make(map[int]Listener)}
	s.load(core.DefaultDocument())
	return s
}

// Subscribe registers fn for every subsequent change. The returned function
// removes it.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

func (s *State) notify(c Change) {
	s.lmu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// =============================================================================
// Document
// =============================================================================

// Snapshot returns a copy of the whole document.
func (s *State) Snapshot() core.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Document{
		Meals:      s.meals.All(),
		Recipes:    s.recipes.All(),
		Activities: s.activities.All(),
		Settings:   s.settings,
	}
}

// Replace swaps in doc wholesale, as after loading from storage.
func (s *State) Replace(doc core.Document) {
	s.mu.Lock()
	s.load(doc)
	s.mu.Unlock()
	s.notify(Change{Kind: Replaced})
}

func (s *State) load(doc core.Document) {
	s.meals = NewCollection(doc.Meals)
	s.recipes = NewCollection(doc.Recipes)
	s.activities = NewCollection(doc.Activities)
	s.settings = doc.Settings
}

// =============================================================================
// Meals
// =============================================================================

// Meals returns all meals in insertion order
func (s *State) Meals() []core.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meals.All()
}

// Meal returns the meal with id
func (s *State) Meal(id uuid.UUID) (core.Meal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meals.Get(id)
}

// AddMeal appends a meal. A nil id is replaced with a fresh one.
func (s *State) AddMeal(m core.Meal) (core.Meal, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := validateMeal(m); err != nil {
		return core.Meal{}, err
	}
	if err := s.mutate(func() error { return s.meals.Add(m) }); err != nil {
		return core.Meal{}, err
	}
	s.notify(Change{Kind: MealsChanged, ID: m.ID})
	return m, nil
}

// UpdateMeal replaces the meal with the same id
func (s *State) UpdateMeal(m core.Meal) error {
	if err := validateMeal(m); err != nil {
		return err
	}
	if err := s.mutate(func() error { return s.meals.Update(m) }); err != nil {
		return err
	}
	s.notify(Change{Kind: MealsChanged, ID: m.ID})
	return nil
}

// DeleteMeal removes the meal with id
func (s *State) DeleteMeal(id uuid.UUID) error {
	if err := s.mutate(func() error { return s.meals.Delete(id) }); err != nil {
		return err
	}
	s.notify(Change{Kind: MealsChanged, ID: id})
	return nil
}

// LogRecipe adds one serving of a recipe as a meal eaten at the given time.
func (s *State) LogRecipe(recipeID uuid.UUID, at time.Time, mealType core.MealType) (core.Meal, error) {
	r, ok := s.Recipe(recipeID)
	if !ok {
		return core.Meal{}, fmt.Errorf("%w: recipe %s", core.ErrRecordNotFound, recipeID)
	}
	id := r.ID
	return s.AddMeal(core.Meal{
		Date:     at,
		Type:     mealType,
		Title:    r.Title,
		Kcal:     r.KcalPerServing,
		Portion:  "1 serving",
		RecipeID: &id,
	})
}

func validateMeal(m core.Meal) error {
	switch {
	case m.Date.IsZero():
		return fmt.Errorf("%w: meal date", core.ErrMissingRequired)
	case !m.Type.IsValid():
		return fmt.Errorf("%w: meal type %q", core.ErrInvalidInput, m.Type)
	}
	return nil
}

// =============================================================================
// Recipes
// =============================================================================

// Recipes returns all recipes in insertion order
func (s *State) Recipes() []core.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.All()
}

// Recipe returns the recipe with id
func (s *State) Recipe(id uuid.UUID) (core.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.Get(id)
}

// AddRecipe appends a recipe. Nil recipe and ingredient ids are filled in.
func (s *State) AddRecipe(r core.Recipe) (core.Recipe, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r = withIngredientIDs(r)
	if err := s.mutate(func() error { return s.recipes.Add(r) }); err != nil {
		return core.Recipe{}, err
	}
	s.notify(Change{Kind: RecipesChanged, ID: r.ID})
	return r, nil
}

// UpdateRecipe replaces the recipe with the same id
func (s *State) UpdateRecipe(r core.Recipe) error {
	r = withIngredientIDs(r)
	if err := s.mutate(func() error { return s.recipes.Update(r) }); err != nil {
		return err
	}
	s.notify(Change{Kind: RecipesChanged, ID: r.ID})
	return nil
}

// DeleteRecipe removes the recipe with id. Meals keep their (now dangling)
// recipe reference.
func (s *State) DeleteRecipe(id uuid.UUID) error {
	if err := s.mutate(func() error { return s.recipes.Delete(id) }); err != nil {
		return err
	}
	s.notify(Change{Kind: RecipesChanged, ID: id})
	return nil
}

// ToggleFavorite flips the favourite flag of a recipe and returns the new value.
func (s *State) ToggleFavorite(id uuid.UUID) (bool, error) {
	var fav bool
	err := s.mutate(func() error {
		r, ok := s.recipes.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrRecordNotFound, id)
		}
		r.IsFavorite = !r.IsFavorite
		fav = r.IsFavorite
		return s.recipes.Update(r)
	})
	if err != nil {
		return false, err
	}
	s.notify(Change{Kind: RecipesChanged, ID: id})
	return fav, nil
}

func withIngredientIDs(r core.Recipe) core.Recipe {
	ings := make([]core.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		if ing.ID == uuid.Nil {
			ing.ID = uuid.New()
		}
		ings[i] = ing
	}
	r.Ingredients = ings
	return r
}

// =============================================================================
// Activities
// =============================================================================

// Activities returns all activities in insertion order
func (s *State) Activities() []core.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.All()
}

// Activity returns the activity with id
func (s *State) Activity(id uuid.UUID) (core.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.Get(id)
}

// AddActivity appends an activity. A nil id is replaced with a fresh one.
func (s *State) AddActivity(a core.Activity) (core.Activity, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := validateActivity(a); err != nil {
		return core.Activity{}, err
	}
	if err := s.mutate(func() error { return s.activities.Add(a) }); err != nil {
		return core.Activity{}, err
	}
	s.notify(Change{Kind: ActivitiesChanged, ID: a.ID})
	return a, nil
}

// UpdateActivity replaces the activity with the same id
func (s *State) UpdateActivity(a core.Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}
	if err := s.mutate(func() error { return s.activities.Update(a) }); err != nil {
		return err
	}
	s.notify(Change{Kind: ActivitiesChanged, ID: a.ID})
	return nil
}

// DeleteActivity removes the activity with id
func (s *State) DeleteActivity(id uuid.UUID) error {
	if err := s.mutate(func() error { return s.activities.Delete(id) }); err != nil {
		return err
	}
	s.notify(Change{Kind: ActivitiesChanged, ID: id})
	return nil
}

func validateActivity(a core.Activity) error {
	switch {
	case a.Date.IsZero():
		return fmt.Errorf("%w: activity date", core.ErrMissingRequired)
	case !core.ValidIntensity(a.Intensity):
		return fmt.Errorf("%w: intensity %d", core.ErrInvalidInput, a.Intensity)
	}
	return nil
}

// =============================================================================
// Settings
// =============================================================================

// Settings returns the current settings
func (s *State) Settings() core.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the settings. The goal must be positive.
func (s *State) SetSettings(settings core.Settings) error {
	if settings.DailyKcalGoal <= 0 {
		return fmt.Errorf("%w: daily kcal goal %d", core.ErrInvalidInput, settings.DailyKcalGoal)
	}
	if !settings.UnitSystem.IsValid() {
		return fmt.Errorf("%w: unit system %q", core.ErrInvalidInput, settings.UnitSystem)
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.notify(Change{Kind: SettingsChanged})
	return nil
}

func (s *State) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
