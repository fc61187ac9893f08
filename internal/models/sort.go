// ABOUTME: Deterministic ordering of workouts by duration.
// ABOUTME: Sorting is stable so equal durations keep their insertion order.
package models

import (
	"cmp"
	"slices"
)

// CompareDuration orders workouts by ascending duration.
func CompareDuration(a, b *Workout) int {
	return cmp.Compare(a.DurationMinutes, b.DurationMinutes)
}

// SortByDuration sorts workouts in place by ascending duration.
// Workouts with equal durations keep their relative order.
func SortByDuration(workouts []*Workout) {
	slices.SortStableFunc(workouts, CompareDuration)
}
