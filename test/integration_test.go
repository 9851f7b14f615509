// ABOUTME: Integration tests for the vetclinic CLI.
// ABOUTME: Builds the binary and drives the menu and subcommands end to end.
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
	binary := filepath.Join(t.TempDir(), "vetclinic")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/vetclinic")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use temp database, log and config
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	logPath := filepath.Join(tmpDir, "test.log")
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"NO_COLOR=1",
	)

	run := func(stdin string, args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath, "--log", logPath}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = env
		cmd.Stdin = strings.NewReader(stdin)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
	session := func(lines ...string) string {
		return strings.Join(lines, "\n") + "\n"
	}

	// Register a pet together with a new owner, then a visit
	output, err := run(session(
		"1", "Rex", "Dog", "Labrador", "3", "Ana", "y", "", "555-1234", "Calle 1", "",
		"2", "1", "05-03-2024", "checkup", "healthy", "",
		"12",
	))
	if err != nil {
		t.Fatalf("Menu session failed: %v\n%s", err, output)
	}
	for _, want := range []string{"Owner registered.", "Pet 'Rex' registered with ID 1", "Visit 1 registered.", "Goodbye!"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	// Listings
	output, err = run("", "owners")
	if err != nil {
		t.Fatalf("Failed to list owners: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Ana") {
		t.Errorf("Expected 'Ana' in owners output, got: %s", output)
	}

	output, err = run("", "history", "1")
	if err != nil {
		t.Fatalf("Failed to show history: %v\n%s", err, output)
	}
	if !strings.Contains(output, "05-03-2024") || !strings.Contains(output, "healthy") {
		t.Errorf("Expected the visit in history output, got: %s", output)
	}

	// Cascade delete through the menu
	output, err = run(session("9", "1", "y", "", "12"))
	if err != nil {
		t.Fatalf("Delete session failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "This also removes 1 pet and 1 visit.") {
		t.Errorf("Expected cascade warning in output, got: %s", output)
	}

	output, err = run("", "pets")
	if err != nil {
		t.Fatalf("Failed to list pets: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No pets found.") {
		t.Errorf("Expected no pets after owner delete, got: %s", output)
	}

	// Unknown pet exits non-zero
	if output, err := run("", "history", "1"); err == nil {
		t.Errorf("Expected history of deleted pet to fail, got: %s", output)
	}

	logData, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(logData), `"run_id"`) {
		t.Errorf("Expected JSON log lines with run_id, got: %s", logData)
	}
}
