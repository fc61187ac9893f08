// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports now, link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/charm"
	"github.com/spf13/cobra"
)

var (
	syncRepairForce bool
	syncYes         bool
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync fitness data across devices",
	Long: `Sync fitness data across devices using Charm Cloud.

These commands work with the charm backend. Select it with --backend charm
or set "backend": "charm" in ~/.config/fitness/config.json.

Your data is E2E encrypted with your SSH key before upload.

COMMANDS:

  now         Push and pull changes immediately
  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write.`,
}

// charmStore returns the open backend as a Charm store.
func charmStore() (*charm.Store, error) {
	s, ok := backend.(*charm.Store)
	if !ok {
		return nil, fmt.Errorf("sync requires the charm backend (use --backend charm)")
	}
	return s, nil
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := charmStore()
		if err != nil {
			return err
		}
		if err := s.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		success(cmd.OutOrStdout(), "Sync complete")
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.

Example:
  fitness sync link`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		out := cmd.OutOrStdout()
		success(out, "Device linked to Charm")

		s, err := charm.Open()
		if err != nil {
			warn(out, "Initial sync failed: %v", err)
			return nil
		}
		defer s.Close()
		if err := s.Sync(); err != nil {
			warn(out, "Initial sync failed: %v", err)
		} else {
			success(out, "Initial sync complete")
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local fitness data.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		success(cmd.OutOrStdout(), "Device unlinked from Charm")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := charmStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		id, err := charm.ID()
		if err != nil {
			yellow.Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'fitness sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", charmHost())
		if s.IsReadOnly() {
			warn(out, "Read-only: another process holds the database lock")
		}
		fmt.Fprintln(out)

		workouts, err := workoutSvc.GetAllWorkouts()
		if err != nil {
			return fmt.Errorf("failed to count workouts: %w", err)
		}
		success(out, "Connected to Charm")
		fmt.Fprintf(out, "  Workouts: %d\n", len(workouts))
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Repairing fitness database...")
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		if result.WalCheckpointed {
			green.Fprintln(out, "  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			green.Fprintln(out, "  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			green.Fprintln(out, "  ✓ Integrity check passed")
		} else {
			color.New(color.FgRed).Fprintln(out, "  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			green.Fprintln(out, "  ✓ Database vacuumed")
		}

		if err != nil {
			if !syncRepairForce {
				yellow.Fprintln(out, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		success(out, "Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := charmStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !confirm(cmd, "This will DELETE all local fitness data and restore from cloud.\nContinue? [y/N]: ", "y") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := s.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		success(out, "Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local data.

This is a DESTRUCTIVE operation. ALL data will be permanently deleted.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !confirm(cmd, "This will PERMANENTLY DELETE all cloud backups and local fitness data.\nType 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		success(out, "Data wiped successfully")
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

// confirm prompts on the command's output and reads one answer from its input.
// --yes answers for the user.
func confirm(cmd *cobra.Command, prompt, want string) bool {
	if syncYes {
		return true
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	var answer string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
	return strings.EqualFold(strings.TrimSpace(answer), want)
}

func runCharm(arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

func charmHost() string {
	if host := os.Getenv("CHARM_HOST"); host != "" {
		return host
	}
	return "charm.2389.dev"
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")
	syncResetCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip confirmation")
	syncWipeCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip confirmation")

	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
