// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies workouts and exercises from one backend into an empty one.
package main

import (
	"fmt"
	"slices"

	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy all workouts and exercises from one backend to another.

The destination must be empty. IDs are reassigned in the destination;
workouts keep their relative order and exercises stay with their workout.

USAGE:

  fitness migrate --from sqlite --to charm --dry-run   # Preview
  fitness migrate --from sqlite --to charm             # Copy to Charm KV
  fitness migrate --from charm --to sqlite             # Copy back

The --db flag selects the SQLite file on either side.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := normalizeBackend(migrateFrom), normalizeBackend(migrateTo)
		if !validBackend(from) || !validBackend(to) {
			return fmt.Errorf("unknown backend (use %v)", config.Backends())
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}

		out := cmd.OutOrStdout()

		src, err := openBackendNamed(from)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		defer src.Close()

		if migrateDryRun {
			warn(out, "Dry run mode - no changes will be made")
			workouts, err := src.Workouts().GetAll()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", from, err)
			}
			exercises := 0
			for _, w := range workouts {
				es, err := src.Exercises().ByWorkoutID(w.ID)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", from, err)
				}
				exercises += len(es)
			}
			fmt.Fprintf(out, "Would migrate %d workouts and %d exercises from %s to %s\n", len(workouts), exercises, from, to)
			return nil
		}

		dst, err := openBackendNamed(to)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", to, err)
		}
		defer dst.Close()

		empty, err := storage.IsEmpty(dst)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", to, err)
		}
		if !empty {
			return fmt.Errorf("destination %s already has workouts; migrate only into an empty backend", to)
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		success(out, "Migrated %d workouts and %d exercises from %s to %s", summary.Workouts, summary.Exercises, from, to)
		return nil
	},
}

func normalizeBackend(name string) string {
	return (&config.Config{Backend: name}).GetBackend()
}

func validBackend(name string) bool {
	return slices.Contains(config.Backends(), name)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (sqlite, charm, memory)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, charm, memory)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
