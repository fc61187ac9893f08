// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, show, update, delete, and shortest subcommands.
package main

import (
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/service"
	"github.com/spf13/cobra"
)

var (
	workoutType     string
	workoutDuration int
	workoutName     string
	workoutSort     bool
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track cardio and strength workouts.

A workout has a name, a duration in minutes, and a type. The type is fixed
when the workout is created and decides how calories are estimated:

  cardio     duration x 8.0
  strength   duration x 3.5

Workout names are unique, ignoring case.

COMMANDS:

  add        Create a new workout
  list       List workouts (--sort for shortest first)
  show       View a workout with its exercises
  update     Change a workout's name or duration
  delete     Delete a workout and its exercises
  shortest   Find the shortest workout of a type`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new workout",
	Long: `Add a new workout.

Examples:
  fitness workout add "Morning Run" --type cardio --duration 30
  fitness workout add "Leg Day" -t strength -d 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(workoutType)
		if err != nil {
			return models.InvalidInput("invalid workout type %q (use cardio or strength)", workoutType)
		}

		w, err := workoutSvc.CreateWorkout(models.NewWorkout(args[0], workoutDuration, kind))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added %s workout %q (%d min, %.1f kcal)", w.WorkoutType(), w.Name, w.DurationMinutes, w.CalculateCalories())
		fmt.Fprintf(out, "  ID: %d\n", w.ID)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	Long: `List all workouts in the order they were created.

Use --sort to order by duration, shortest first. Workouts with the same
duration keep their creation order.

OUTPUT FORMAT:

  ID  NAME  TYPE  DURATION  CALORIES`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			workouts []*models.Workout
			err      error
		)
		if workoutSort {
			workouts, err = workoutSvc.GetAllWorkoutsSortedByDuration()
		} else {
			workouts, err = workoutSvc.GetAllWorkouts()
		}
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		for _, w := range workouts {
			printWorkoutLine(out, w)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout", args[0])
		if err != nil {
			return err
		}

		w, err := workoutSvc.GetWorkoutByID(id)
		if err != nil {
			return err
		}
		exercises, err := exerciseSvc.GetExercisesByWorkout(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, w.TrackingInfo())
		printFields(out, w.Describe())

		if len(exercises) == 0 {
			fmt.Fprintln(out, "\nNo exercises.")
			return nil
		}
		fmt.Fprintf(out, "\nExercises (%d):\n", len(exercises))
		for _, e := range exercises {
			printExerciseLine(out, e)
		}
		return nil
	},
}

var workoutUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a workout",
	Long: `Update a workout's name and/or duration. The type cannot be changed.

Examples:
  fitness workout update 3 --name "Evening Run"
  fitness workout update 3 --duration 40`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout", args[0])
		if err != nil {
			return err
		}

		var patch service.WorkoutPatch
		if cmd.Flags().Changed("name") {
			patch.Name = &workoutName
		}
		if cmd.Flags().Changed("duration") {
			patch.DurationMinutes = &workoutDuration
		}

		w, err := workoutSvc.PatchWorkout(id, patch)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Updated workout %d: %s", w.ID, w.TrackingInfo())
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout. Its exercises are deleted with it.

Example:
  fitness workout delete 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout", args[0])
		if err != nil {
			return err
		}

		if err := workoutSvc.DeleteWorkout(id); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Deleted workout %d", id)
		return nil
	},
}

var workoutShortestCmd = &cobra.Command{
	Use:   "shortest <cardio|strength>",
	Short: "Show the shortest workout of a type",
	Long: `Show the shortest workout of the given type.
When several share the shortest duration, the earliest created wins.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return models.InvalidInput("invalid workout type %q (use cardio or strength)", args[0])
		}

		w, err := workoutSvc.GetShortestOfKind(kind)
		if err != nil {
			return err
		}

		printWorkoutLine(cmd.OutOrStdout(), w)
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutType, "type", "t", "", "workout type: cardio or strength")
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")

	workoutListCmd.Flags().BoolVarP(&workoutSort, "sort", "s", false, "sort by duration, shortest first")

	workoutUpdateCmd.Flags().StringVarP(&workoutName, "name", "n", "", "new workout name")
	workoutUpdateCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "new duration in minutes")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutUpdateCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutShortestCmd)
	rootCmd.AddCommand(workoutCmd)
}
