// ABOUTME: CLI command that prints every stored record field by field.
// ABOUTME: Works on any tracked entity through the Trackable interface.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [workout-id]",
	Short: "Describe workouts and exercises field by field",
	Long: `Print every field of each workout and its exercises.

Without an ID every workout is described. Each record starts with its
one-line summary followed by its fields.

WORKOUT TYPES:

  Run 'fitness describe --types' to list the workout types and their
  calorie rates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if describeTypes {
			for _, k := range models.Kinds() {
				fmt.Fprintf(out, "%s %.1f kcal/min\n", padRight(k.Label(), 9), k.CaloriesPerMinute())
			}
			return nil
		}

		var workouts []*models.Workout
		if len(args) == 1 {
			id, err := parseID("workout", args[0])
			if err != nil {
				return err
			}
			w, err := workoutSvc.GetWorkoutByID(id)
			if err != nil {
				return err
			}
			workouts = []*models.Workout{w}
		} else {
			all, err := workoutSvc.GetAllWorkouts()
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			workouts = all
		}

		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		for _, w := range workouts {
			exercises, err := exerciseSvc.GetExercisesByWorkout(w.ID)
			if err != nil {
				return err
			}
			records := []models.Trackable{w}
			for _, e := range exercises {
				records = append(records, e)
			}
			for _, r := range records {
				describe(out, r)
			}
		}
		return nil
	},
}

var describeTypes bool

func describe(w io.Writer, t models.Trackable) {
	fmt.Fprintln(w, t.TrackingInfo())
	printFields(w, t.Describe())
}

func init() {
	describeCmd.Flags().BoolVar(&describeTypes, "types", false, "list workout types and calorie rates")
	rootCmd.AddCommand(describeCmd)
}
