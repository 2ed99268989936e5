// Package app opens a foodfire session: it loads the document from the
// configured store and saves it back after every change.
package app

import (
	"sync"
	"time"

	"github.com/foodfireroad/foodfire/internal/config"
	"github.com/foodfireroad/foodfire/internal/logging"
	"github.com/foodfireroad/foodfire/internal/state"
	"github.com/foodfireroad/foodfire/internal/stats"
	"github.com/foodfireroad/foodfire/internal/storage"
	"github.com/foodfireroad/foodfire/internal/streaks"
)

// App is one session over the app document.
type App struct {
	cfg   *config.Config
	store storage.Store
	state *state.State
	stats *stats.Facade

	unsubscribe func()
	closeOnce   sync.Once
	closeErr    error
}

// Options tunes a session. The zero value uses the local calendar and the
// system clock.
type Options struct {
	Calendar *streaks.Calendar
	Now      func() time.Time
}

// Open builds the configured store and starts a session on it.
func Open(cfg *config.Config) (*App, error) {
	store, err := storage.Open(cfg.StoreOptions())
	if err != nil {
		return nil, err
	}
	return New(cfg, store, Options{}), nil
}

// New starts a session on store. The app owns store and closes it.
func New(cfg *config.Config, store storage.Store, opts Options) *App {
	cal := streaks.LocalCalendar()
	if opts.Calendar != nil {
		cal = *opts.Calendar
	}

	a := &App{
		cfg:   cfg,
		store: store,
		state: state.New(),
		stats: stats.New(cal, opts.Now),
	}

	a.state.Replace(store.Load())

	seeded := a.state.SeedSampleRecipes()
	if seeded {
		logging.WithField("recipes", len(a.state.Recipes())).Info("seeded sample recipes")
		a.save()
	}

	a.unsubscribe = a.state.Subscribe(func(c state.Change) {
		if c.Kind == state.Replaced {
			return
		}
		logging.WithField("change", c.Kind).Debug("saving document")
		a.save()
	})

	return a
}

func (a *App) save() {
	a.store.Save(a.state.Snapshot())
}

// State returns the session's state container
func (a *App) State() *state.State { return a.state }

// Stats returns the statistics facade
func (a *App) Stats() *stats.Facade { return a.stats }

// Config returns the session configuration
func (a *App) Config() *config.Config { return a.cfg }

// Streaks computes the meal streak with the saved goal and configured rule.
func (a *App) Streaks() streaks.Result {
	return a.StreaksWith(a.cfg.Rule())
}

// StreaksWith computes the meal streak with the saved goal and rule.
func (a *App) StreaksWith(rule streaks.Rule) streaks.Result {
	return a.stats.MealStreaks(a.state.Meals(), a.state.Settings().DailyKcalGoal, rule)
}

// Close saves a final time, stops listening for changes and closes the store.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.unsubscribe()
		a.save()
		a.closeErr = a.store.Close()
	})
	return a.closeErr
}
