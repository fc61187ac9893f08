// ABOUTME: Root Cobra command for fitness CLI.
// ABOUTME: Loads config, opens the storage backend, and wires the services.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/service"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

var (
	backendName string
	dbPath      string
	verbose     bool

	logger      *log.Logger
	backend     storage.Backend
	workoutSvc  *service.WorkoutService
	exerciseSvc *service.ExerciseService
)

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Workout and exercise tracker",
	Long: `Fitness is a CLI tool for tracking workouts and the exercises done in them.

WORKOUT TYPES:

  cardio     8.0 kcal per minute
  strength   3.5 kcal per minute

QUICK START:

  $ fitness workout add "Morning Run" --type cardio --duration 30
  $ fitness workout add "Leg Day" --type strength --duration 45
  $ fitness exercise add 2 Squat --sets 5 --reps 5
  $ fitness workout list --sort          # Shortest first
  $ fitness workout shortest cardio      # Shortest cardio workout
  $ fitness workout show 2               # Workout with its exercises

STORAGE BACKENDS:

  sqlite   Local database at ~/.local/share/fitness/fitness.db (default)
  charm    Charm KV, synced across devices and E2E encrypted
  memory   In-process only, nothing is persisted

  Pick one with --backend or "backend" in ~/.config/fitness/config.json.

MCP INTEGRATION:

  Run 'fitness mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitness": { "command": "fitness", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(cmd.ErrOrStderr()); err != nil {
			return err
		}
		if !needsStorage(cmd) {
			return nil
		}
		return openStorage()
	},
}

// Execute runs the root command and releases the backend afterwards,
// including when the command failed.
func Execute() error {
	defer closeStorage()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Storage backend (sqlite, charm, memory)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides data_dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// needsStorage reports whether cmd works on the configured backend.
// Commands that manage storage themselves are annotated with skipStorage.
func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "version":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return false
		}
	}
	return true
}

const skipStorage = "skip-storage"

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	return cfg, nil
}

func setupLogger(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "fitness",
	})
	return nil
}

// openBackendNamed opens the named backend, honoring --db for sqlite.
func openBackendNamed(name string) (storage.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if name != "" {
		cfg.Backend = name
	}

	if cfg.GetBackend() == config.BackendSQLite && dbPath != "" {
		return storage.Open(config.ExpandPath(dbPath))
	}
	return cfg.OpenStorage()
}

func openStorage() error {
	b, err := openBackendNamed("")
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	backend = b

	workoutSvc = service.NewWorkoutServiceFor(b.Workouts(), service.WithLogger(logger))
	exerciseSvc = service.NewExerciseServiceFor(b, service.WithLogger(logger))

	logger.Debug("storage opened", "backend", strings.TrimPrefix(fmt.Sprintf("%T", b), "*"))
	return nil
}

func closeStorage() {
	if backend == nil {
		return
	}
	if err := backend.Close(); err != nil && logger != nil {
		logger.Warn("failed to close storage", "err", err)
	}
	backend = nil
	workoutSvc = nil
	exerciseSvc = nil
}
