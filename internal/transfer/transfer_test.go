// ABOUTME: Tests for snapshot export, encoding, decoding, and import.
// ABOUTME: Verifies JSON, YAML, and Markdown output and the export-import round trip.
package transfer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/service"
	"github.com/harperreed/fitness/internal/storage"
	"gopkg.in/yaml.v3"
)

func setupServices(t *testing.T) (*service.WorkoutService, *service.ExerciseService) {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return service.NewWorkoutServiceFor(store.Workouts()), service.NewExerciseServiceFor(store)
}

func seed(t *testing.T, ws *service.WorkoutService, es *service.ExerciseService) {
	t.Helper()
	if _, err := ws.CreateWorkout(models.NewCardio("Morning Run", 30)); err != nil {
		t.Fatalf("create workout: %v", err)
	}
	push, err := ws.CreateWorkout(models.NewStrength("Push Day", 45))
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	for _, e := range []*models.Exercise{
		models.NewExercise(0, "Bench Press", 4, 8),
		models.NewExercise(0, "Dips", 3, 12),
	} {
		if _, err := es.AddExercise(push.ID, e); err != nil {
			t.Fatalf("add exercise: %v", err)
		}
	}
}

func TestExport(t *testing.T) {
	ws, es := setupServices(t)
	seed(t, ws, es)

	snap, err := Export(ws, es)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if snap.Version != "1.0" || snap.Tool != "fitness" {
		t.Errorf("unexpected header: version=%s tool=%s", snap.Version, snap.Tool)
	}
	if len(snap.Workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(snap.Workouts))
	}
	if snap.Workouts[0].Type != models.KindCardio || snap.Workouts[0].Calories != 240 {
		t.Errorf("unexpected first workout: %+v", snap.Workouts[0])
	}
	if len(snap.Workouts[1].Exercises) != 2 {
		t.Errorf("expected 2 exercises, got %d", len(snap.Workouts[1].Exercises))
	}
}

func TestEncodeJSON(t *testing.T) {
	ws, es := setupServices(t)
	seed(t, ws, es)
	snap, _ := Export(ws, es)

	data, err := snap.Encode(FormatJSON)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(string(data), `"duration_minutes": 45`) {
		t.Errorf("JSON missing duration field:\n%s", data)
	}
}

func TestEncodeYAML(t *testing.T) {
	ws, es := setupServices(t)
	seed(t, ws, es)
	snap, _ := Export(ws, es)

	data, err := snap.Encode(FormatYAML)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if parsed["tool"] != "fitness" {
		t.Errorf("expected tool fitness, got %v", parsed["tool"])
	}
	if !strings.Contains(string(data), "type: STRENGTH") {
		t.Errorf("YAML missing workout type:\n%s", data)
	}
}

func TestEncodeMarkdown(t *testing.T) {
	ws, es := setupServices(t)
	seed(t, ws, es)
	snap, _ := Export(ws, es)

	data, err := snap.Encode(FormatMarkdown)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	md := string(data)
	for _, want := range []string{"# Fitness Export", "## Workouts", "| Morning Run | CARDIO | 30 min | 240.0 |", "## Push Day", "| Dips | 3 | 12 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestEncodeMarkdownEmpty(t *testing.T) {
	ws, es := setupServices(t)
	snap, _ := Export(ws, es)

	data, _ := snap.Encode(FormatMarkdown)
	if !strings.Contains(string(data), "No workouts recorded.") {
		t.Errorf("expected empty notice, got:\n%s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			ws, es := setupServices(t)
			seed(t, ws, es)
			snap, _ := Export(ws, es)
			data, err := snap.Encode(format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(data, format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			dstW, dstE := setupServices(t)
			summary, err := Import(dstW, dstE, decoded)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if summary.Workouts != 2 || summary.Exercises != 2 {
				t.Errorf("summary = %+v", summary)
			}

			workouts, _ := dstW.GetAllWorkouts()
			if len(workouts) != 2 || workouts[1].Name != "Push Day" || workouts[1].Kind() != models.KindStrength {
				t.Fatalf("unexpected imported workouts: %+v", workouts)
			}
			exercises, _ := dstE.GetExercisesByWorkout(workouts[1].ID)
			if len(exercises) != 2 || exercises[0].Name != "Bench Press" || exercises[0].Sets != 4 {
				t.Errorf("unexpected imported exercises: %+v", exercises)
			}
		})
	}
}

func TestImportAppliesBusinessRules(t *testing.T) {
	ws, es := setupServices(t)
	if _, err := ws.CreateWorkout(models.NewCardio("Morning Run", 20)); err != nil {
		t.Fatalf("create workout: %v", err)
	}

	snap := &Snapshot{Workouts: []SnapshotWorkout{
		{Name: "Evening Ride", Type: models.KindCardio, DurationMinutes: 60},
		{Name: "morning run", Type: models.KindCardio, DurationMinutes: 30},
	}}

	summary, err := Import(ws, es, snap)
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if models.KindOf(err) != "DuplicateResource" {
		t.Errorf("expected DuplicateResource, got %v", err)
	}
	if summary.Workouts != 1 {
		t.Errorf("expected 1 workout imported before the failure, got %d", summary.Workouts)
	}
}

func TestImportRejectsBadKind(t *testing.T) {
	ws, es := setupServices(t)
	snap := &Snapshot{Workouts: []SnapshotWorkout{{Name: "Yoga", Type: "FLEXIBILITY", DurationMinutes: 30}}}

	if _, err := Import(ws, es, snap); models.KindOf(err) != "InvalidInput" {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeRejectsMarkdown(t *testing.T) {
	if _, err := Decode([]byte("# hi"), FormatMarkdown); err == nil {
		t.Error("expected error decoding markdown")
	}
}
