// ABOUTME: Export and import of fitness data as JSON, YAML, or Markdown snapshots.
// ABOUTME: Imports replay through the services so every business rule applies.
package transfer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/service"
	"gopkg.in/yaml.v3"
)

const (
	snapshotVersion = "1.0"
	toolName        = "fitness"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a user-supplied format name. "yml" and "md" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (use json, yaml, or markdown)", s)
}

// Snapshot is the full export of fitness data.
type Snapshot struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Workouts   []SnapshotWorkout `json:"workouts" yaml:"workouts"`
}

// SnapshotWorkout is one workout with its exercises nested.
type SnapshotWorkout struct {
	ID              int64              `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Type            models.Kind        `json:"type" yaml:"type"`
	DurationMinutes int                `json:"duration_minutes" yaml:"duration_minutes"`
	Calories        float64            `json:"calories" yaml:"calories"`
	Exercises       []SnapshotExercise `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}

// SnapshotExercise is one exercise of a SnapshotWorkout.
type SnapshotExercise struct {
	Name string `json:"name" yaml:"name"`
	Sets int    `json:"sets" yaml:"sets"`
	Reps int    `json:"reps" yaml:"reps"`
}

// ImportSummary holds counts of imported entities.
type ImportSummary struct {
	Workouts  int
	Exercises int
}

// Export gathers every workout, in insertion order, with its exercises.
func Export(ws *service.WorkoutService, es *service.ExerciseService) (*Snapshot, error) {
	workouts, err := ws.GetAllWorkouts()
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	snap := &Snapshot{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       toolName,
		Workouts:   make([]SnapshotWorkout, 0, len(workouts)),
	}
	for _, w := range workouts {
		exercises, err := es.GetExercisesByWorkout(w.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of workout %d: %w", w.ID, err)
		}

		sw := SnapshotWorkout{
			ID:              w.ID,
			Name:            w.Name,
			Type:            w.Kind(),
			DurationMinutes: w.DurationMinutes,
			Calories:        w.CalculateCalories(),
		}
		for _, e := range exercises {
			sw.Exercises = append(sw.Exercises, SnapshotExercise{Name: e.Name, Sets: e.Sets, Reps: e.Reps})
		}
		snap.Workouts = append(snap.Workouts, sw)
	}

	return snap, nil
}

// Encode renders the snapshot in the given format.
func (s *Snapshot) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatMarkdown:
		return []byte(s.markdown()), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// Decode parses a JSON or YAML snapshot.
func Decode(data []byte, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &snap, nil
}

// Import recreates every workout and exercise of snap through the services.
// IDs are reassigned. It stops at the first rejected record.
func Import(ws *service.WorkoutService, es *service.ExerciseService, snap *Snapshot) (*ImportSummary, error) {
	if snap == nil {
		return nil, models.InvalidInput("snapshot cannot be nil")
	}

	summary := &ImportSummary{}
	for _, sw := range snap.Workouts {
		kind, err := models.ParseKind(string(sw.Type))
		if err != nil {
			return summary, models.InvalidInput("workout %q: %s", sw.Name, err.Error())
		}

		created, err := ws.CreateWorkout(models.NewWorkout(sw.Name, sw.DurationMinutes, kind))
		if err != nil {
			return summary, fmt.Errorf("import workout %q: %w", sw.Name, err)
		}
		summary.Workouts++

		for _, se := range sw.Exercises {
			if _, err := es.AddExercise(created.ID, models.NewExercise(created.ID, se.Name, se.Sets, se.Reps)); err != nil {
				return summary, fmt.Errorf("import exercise %q: %w", se.Name, err)
			}
			summary.Exercises++
		}
	}

	return summary, nil
}

func (s *Snapshot) markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Fitness Export - %s\n\n", s.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", s.ExportedAt.Format(time.RFC3339)))

	if len(s.Workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String()
	}

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| ID | Name | Type | Duration | Calories |\n")
	sb.WriteString("|----|------|------|----------|----------|\n")
	for _, w := range s.Workouts {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d min | %.1f |\n",
			w.ID, w.Name, w.Type, w.DurationMinutes, w.Calories))
	}

	for _, w := range s.Workouts {
		if len(w.Exercises) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", w.Name))
		sb.WriteString("| Exercise | Sets | Reps |\n")
		sb.WriteString("|----------|------|------|\n")
		for _, e := range w.Exercises {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", e.Name, e.Sets, e.Reps))
		}
	}

	return sb.String()
}
