// ABOUTME: CLI commands for exporting and importing fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export; JSON and YAML import.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/fitness/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitness data",
	Long: `Export every workout with its exercises.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, can be imported)
  markdown   Markdown tables (for sharing, cannot be imported)

EXAMPLES:

  fitness export json                  # Export all data as JSON
  fitness export json -o backup.json   # Save to file
  fitness export markdown -o log.md    # Markdown tables`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := transfer.ParseFormat(args[0])
		if err != nil {
			return err
		}

		snap, err := transfer.Export(workoutSvc, exerciseSvc)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		data, err := snap.Encode(format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(out, "Exported %d workouts to %s", len(snap.Workouts), exportOutput)
			return nil
		}

		fmt.Fprintln(out, string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitness data from JSON or YAML",
	Long: `Import workouts and exercises from a previous export.

Records get new IDs. Every record is validated like a new entry, so a
workout whose name already exists stops the import. Records imported
before the failure are kept.

The format is taken from the file extension unless --format is given.

EXAMPLES:

  fitness import backup.json
  fitness import backup.yml
  fitness import data.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		name := importFormat
		if name == "" {
			name = formatFromExt(filename)
		}
		format, err := transfer.ParseFormat(name)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		snap, err := transfer.Decode(data, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		summary, err := transfer.Import(workoutSvc, exerciseSvc, snap)
		out := cmd.OutOrStdout()
		if err != nil {
			if summary != nil && summary.Workouts > 0 {
				warn(out, "Imported %d workouts and %d exercises before failing", summary.Workouts, summary.Exercises)
			}
			return fmt.Errorf("import failed: %w", err)
		}

		success(out, "Imported %d workouts and %d exercises from %s", summary.Workouts, summary.Exercises, filename)
		return nil
	},
}

func formatFromExt(filename string) string {
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format: json or yaml")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
