// ABOUTME: Shared output helpers for fitness CLI commands.
// ABOUTME: Colored status lines, column padding, and ID argument parsing.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
)

var (
	faint  = color.New(color.Faint)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "✓ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func parseID(entity, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, models.InvalidInput("invalid %s ID: %q", entity, arg)
	}
	return id, nil
}

func printWorkoutLine(w io.Writer, wk *models.Workout) {
	fmt.Fprintf(w, "%s %s %s %4d min %7.1f kcal\n",
		faint.Sprint(padRight(strconv.FormatInt(wk.ID, 10), 4)),
		padRight(wk.Name, 24),
		padRight(wk.WorkoutType(), 9),
		wk.DurationMinutes,
		wk.CalculateCalories())
}

func printExerciseLine(w io.Writer, e *models.Exercise) {
	fmt.Fprintf(w, "%s %s %dx%d\n",
		faint.Sprint(padRight(strconv.FormatInt(e.ID, 10), 4)),
		padRight(e.Name, 24),
		e.Sets,
		e.Reps)
}

func printFields(w io.Writer, fields []models.Field) {
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", faint.Sprint(padRight(f.Name+":", 17)), f.Value)
	}
}
