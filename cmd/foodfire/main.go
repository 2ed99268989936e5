// foodfire CLI - log meals, recipes and workouts, and keep your calorie streak.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/foodfireroad/foodfire/internal/app"
	"github.com/foodfireroad/foodfire/internal/config"
	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/logging"
	"github.com/foodfireroad/foodfire/internal/report"
	"github.com/foodfireroad/foodfire/internal/state"
)

var (
	// Config
	dataDir    string
	configPath string
	lang       string

	// Version
	version = "0.1.0"
)

func main() {
	// Optional; a missing .env is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "foodfire",
		Short: "foodfire - calories in, calories out, one streak",
		Long: `foodfire keeps a local diary of what you eat and what you burn.

Log meals (or one serving of a saved recipe), record workouts with an
estimated burn, and watch how many days in a row you stayed within
your daily goal.

Everything lives in a single document in your data directory.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.foodfire)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <data-dir>/config.json)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "language for number formatting")

	// Commands
	rootCmd.AddCommand(mealCmd())
	rootCmd.AddCommand(recipeCmd())
	rootCmd.AddCommand(burnCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(streakCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration, honouring --data-dir and --config.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" && dataDir != "" {
		path = filepath.Join(dataDir, config.FileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	logging.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	return cfg, nil
}

// withApp runs fn inside a session and closes it afterwards.
func withApp(fn func(a *app.App, out *report.Printer) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.Open(cfg)
	if err != nil {
		return fmt.Errorf("open data: %w", err)
	}

	runErr := fn(a, report.New(os.Stdout, report.ParseLanguage(lang), time.Local))
	if err := a.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close data: %w", err)
	}
	return runErr
}

// resolveID matches a full id or a unique prefix of one.
func resolveID[T state.Keyed](records []T, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	prefix := strings.ToLower(strings.TrimSpace(arg))
	if prefix == "" {
		return uuid.Nil, fmt.Errorf("%w: empty id", core.ErrInvalidInput)
	}

	var found []uuid.UUID
	for _, r := range records {
		if strings.HasPrefix(r.Key().String(), prefix) {
			found = append(found, r.Key())
		}
	}
	switch len(found) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: %s", core.ErrRecordNotFound, arg)
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %q matches %d records", core.ErrInvalidInput, arg, len(found))
	}
}

// parseWhen accepts "now", a date, or a date and time in the local zone.
func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "now" {
		return time.Now(), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			if layout == "2006-01-02" {
				t = t.Add(12 * time.Hour)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q (want YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", core.ErrInvalidInput, s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show foodfire version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("foodfire %s\n", version)
		},
	}
}
