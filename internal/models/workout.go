// ABOUTME: Workout model tagged by kind (cardio or strength).
// ABOUTME: Each kind supplies its calorie rate and label through a policy table.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates workout variants. It is fixed when a workout is constructed.
type Kind string

const (
	KindCardio   Kind = "CARDIO"
	KindStrength Kind = "STRENGTH"
)

// kindPolicy is the per-kind behavior table entry.
type kindPolicy struct {
	label             string
	caloriesPerMinute float64
}

var kindPolicies = map[Kind]kindPolicy{
	KindCardio:   {label: "CARDIO", caloriesPerMinute: 8.0},
	KindStrength: {label: "STRENGTH", caloriesPerMinute: 3.5},
}

// Kinds returns all workout kinds in display order.
func Kinds() []Kind {
	return []Kind{KindCardio, KindStrength}
}

// ParseKind converts a string to a Kind, ignoring case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown workout kind: %q", s)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindPolicies[k]
	return ok
}

// Label returns the human-readable type label.
func (k Kind) Label() string {
	return kindPolicies[k].label
}

// CaloriesPerMinute returns the burn rate used by the kind's calorie formula.
func (k Kind) CaloriesPerMinute() float64 {
	return kindPolicies[k].caloriesPerMinute
}

// Trackable is the capability shared by every tracked entity.
type Trackable interface {
	Validate() error
	TrackingInfo() string
	Describe() []Field
}

var (
	_ Trackable = (*Workout)(nil)
	_ Trackable = (*Exercise)(nil)
)

// Workout is a tracked activity. The kind is unexported so it cannot change after construction.
type Workout struct {
	ID              int64
	Name            string
	DurationMinutes int
	kind            Kind
}

// NewWorkout creates a workout that has not been stored yet.
func NewWorkout(name string, durationMinutes int, kind Kind) *Workout {
	return &Workout{
		Name:            name,
		DurationMinutes: durationMinutes,
		kind:            kind,
	}
}

// NewCardio creates a cardio workout.
func NewCardio(name string, durationMinutes int) *Workout {
	return NewWorkout(name, durationMinutes, KindCardio)
}

// NewStrength creates a strength workout.
func NewStrength(name string, durationMinutes int) *Workout {
	return NewWorkout(name, durationMinutes, KindStrength)
}

// RestoreWorkout rebuilds a stored workout with its assigned ID.
func RestoreWorkout(id int64, name string, durationMinutes int, kind Kind) *Workout {
	w := NewWorkout(name, durationMinutes, kind)
	w.ID = id
	return w
}

// Kind returns the workout's kind.
func (w *Workout) Kind() Kind {
	return w.kind
}

// WorkoutType returns the kind's label, e.g. "CARDIO".
func (w *Workout) WorkoutType() string {
	return w.kind.Label()
}

// CalculateCalories estimates calories burned using the kind's per-minute rate.
func (w *Workout) CalculateCalories() float64 {
	return float64(w.DurationMinutes) * w.kind.CaloriesPerMinute()
}

// Validate checks the fields every workout kind requires.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("workout name cannot be empty")
	}
	if w.DurationMinutes <= 0 {
		return errors.New("duration must be greater than 0")
	}
	if !w.kind.Valid() {
		return fmt.Errorf("unknown workout kind: %q", string(w.kind))
	}
	return nil
}

// TrackingInfo returns a one-line summary of the workout.
func (w *Workout) TrackingInfo() string {
	return fmt.Sprintf("%s [%s] %d min, %.1f kcal",
		w.Name, w.WorkoutType(), w.DurationMinutes, w.CalculateCalories())
}

// Describe returns the workout's fields as ordered name/value pairs.
func (w *Workout) Describe() []Field {
	return []Field{
		{Name: "ID", Value: fmt.Sprintf("%d", w.ID)},
		{Name: "Name", Value: w.Name},
		{Name: "Type", Value: w.WorkoutType()},
		{Name: "DurationMinutes", Value: fmt.Sprintf("%d", w.DurationMinutes)},
		{Name: "Calories", Value: fmt.Sprintf("%.1f", w.CalculateCalories())},
	}
}

// Field is one entry of a Describe record.
type Field struct {
	Name  string
	Value string
}
