// ABOUTME: CLI commands for managing exercises within workouts.
// ABOUTME: Supports add, list, show, update, and delete subcommands.
package main

import (
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/service"
	"github.com/spf13/cobra"
)

var (
	exerciseSets int
	exerciseReps int
	exerciseName string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercises",
	Long: `Track the exercises done in a workout as sets and reps.

Every exercise belongs to one workout and stays with it. Deleting a
workout deletes its exercises.

WORKFLOW:

  1. Create a workout:      fitness workout add "Leg Day" -t strength -d 45
  2. Add exercises to it:   fitness exercise add 1 Squat --sets 5 --reps 5
  3. View them:             fitness exercise list 1`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <workout-id> <name>",
	Short: "Add an exercise to a workout",
	Long: `Add an exercise to an existing workout.

Examples:
  fitness exercise add 1 Squat --sets 5 --reps 5
  fitness exercise add 1 "Bench Press" -s 3 -r 8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID("workout", args[0])
		if err != nil {
			return err
		}

		e, err := exerciseSvc.AddExercise(workoutID, models.NewExercise(workoutID, args[1], exerciseSets, exerciseReps))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added %s to workout %d", e.TrackingInfo(), e.WorkoutID)
		fmt.Fprintf(out, "  ID: %d\n", e.ID)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list <workout-id>",
	Aliases: []string{"ls"},
	Short:   "List exercises of a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID("workout", args[0])
		if err != nil {
			return err
		}

		exercises, err := exerciseSvc.GetExercisesByWorkout(workoutID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}
		for _, e := range exercises {
			printExerciseLine(out, e)
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show exercise details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("exercise", args[0])
		if err != nil {
			return err
		}

		e, err := exerciseSvc.GetExerciseByID(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, e.TrackingInfo())
		printFields(out, e.Describe())
		return nil
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an exercise",
	Long: `Update an exercise's name, sets, or reps. It stays with its workout.

Example:
  fitness exercise update 4 --sets 4 --reps 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("exercise", args[0])
		if err != nil {
			return err
		}

		var patch service.ExercisePatch
		if cmd.Flags().Changed("name") {
			patch.Name = &exerciseName
		}
		if cmd.Flags().Changed("sets") {
			patch.Sets = &exerciseSets
		}
		if cmd.Flags().Changed("reps") {
			patch.Reps = &exerciseReps
		}

		e, err := exerciseSvc.PatchExercise(id, patch)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Updated exercise %d: %s", e.ID, e.TrackingInfo())
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("exercise", args[0])
		if err != nil {
			return err
		}

		if err := exerciseSvc.DeleteExercise(id); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Deleted exercise %d", id)
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().IntVarP(&exerciseSets, "sets", "s", 0, "number of sets")
	exerciseAddCmd.Flags().IntVarP(&exerciseReps, "reps", "r", 0, "reps per set")

	exerciseUpdateCmd.Flags().StringVarP(&exerciseName, "name", "n", "", "new exercise name")
	exerciseUpdateCmd.Flags().IntVarP(&exerciseSets, "sets", "s", 0, "new number of sets")
	exerciseUpdateCmd.Flags().IntVarP(&exerciseReps, "reps", "r", 0, "new reps per set")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseUpdateCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
