// ABOUTME: Integration tests for fitness CLI.
// ABOUTME: Builds the binary and drives a full workout/exercise workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	fitnessBinary := filepath.Join(projectRoot, "fitness")

	buildCmd := exec.Command("go", "build", "-o", fitnessBinary, "./cmd/fitness")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(fitnessBinary)

	// Use temp database and config
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(fitnessBinary, fullArgs...)
		cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"))
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Test adding workouts
	output, err := run("workout", "add", "Morning Run", "--type", "cardio", "--duration", "30")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}
	if !strings.Contains(output, `Added CARDIO workout "Morning Run"`) {
		t.Errorf("Expected 'Added CARDIO workout' in output, got: %s", output)
	}

	output, err = run("workout", "add", "Leg Day", "--type", "strength", "--duration", "20")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}

	// Test exercise add
	output, err = run("exercise", "add", "2", "Squat", "--sets", "5", "--reps", "5")
	if err != nil {
		t.Fatalf("Failed to add exercise: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added Squat 5x5") {
		t.Errorf("Expected 'Added Squat 5x5' in output, got: %s", output)
	}

	// Test sorted list
	output, err = run("workout", "list", "--sort")
	if err != nil {
		t.Fatalf("Failed to list workouts: %v\n%s", err, output)
	}
	if strings.Index(output, "Leg Day") > strings.Index(output, "Morning Run") {
		t.Errorf("Expected shortest workout first, got: %s", output)
	}

	// Test error exit on duplicate
	output, err = run("workout", "add", "leg day", "--type", "cardio", "--duration", "10")
	if err == nil {
		t.Fatalf("Expected duplicate workout to fail, got: %s", output)
	}
	if !strings.Contains(output, "Error:") {
		t.Errorf("Expected 'Error:' prefix on failure, got: %s", output)
	}

	// Test delete cascades
	if output, err = run("workout", "delete", "2"); err != nil {
		t.Fatalf("Failed to delete workout: %v\n%s", err, output)
	}
	output, err = run("exercise", "show", "1")
	if err == nil {
		t.Errorf("Expected exercise to be gone after workout delete, got: %s", output)
	}
}
