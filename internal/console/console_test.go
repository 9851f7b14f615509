// ABOUTME: Tests for the interactive console: prompts, menu parsing, and full sessions.
// ABOUTME: Sessions are scripted through a string reader against a temporary database.
package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    Command
		wantErr bool
	}{
		{"1", CmdRegisterPet, false},
		{" 5 ", CmdHistory, false},
		{"11", CmdDeleteVisit, false},
		{"12", CmdExit, false},
		{"0", 0, true},
		{"13", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCommand(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEveryCommandHasALabel(t *testing.T) {
	for c := CmdRegisterPet; c <= CmdExit; c++ {
		if strings.HasPrefix(c.String(), "Command(") {
			t.Errorf("command %d has no label", int(c))
		}
	}

	var buf bytes.Buffer
	PrintMenu(&buf)
	for c := CmdRegisterPet; c <= CmdExit; c++ {
		if !strings.Contains(buf.String(), c.String()) {
			t.Errorf("menu is missing %q", c)
		}
	}
}

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out, zerolog.Nop()), &out
}

func TestAskIntReprompts(t *testing.T) {
	p, out := newPrompter("abc\n\n42\n")

	n, err := p.AskInt("Number: ", "Not a number.")
	if err != nil {
		t.Fatalf("AskInt failed: %v", err)
	}
	if n != 42 {
		t.Errorf("AskInt = %d, want 42", n)
	}
	if got := strings.Count(out.String(), "Not a number."); got != 2 {
		t.Errorf("expected 2 error messages, got %d", got)
	}
}

func TestAskNonNegativeInt(t *testing.T) {
	p, out := newPrompter("-3\n4\n")

	n, err := p.AskNonNegativeInt("Age: ")
	if err != nil {
		t.Fatalf("AskNonNegativeInt failed: %v", err)
	}
	if n != 4 {
		t.Errorf("got %d, want 4", n)
	}
	if !strings.Contains(out.String(), "cannot be negative") {
		t.Error("expected negative warning")
	}
}

func TestAskDate(t *testing.T) {
	p, _ := newPrompter("2024-01-10\n31-02-2024\n10-01-2024\n")

	d, err := p.AskDate("Date: ")
	if err != nil {
		t.Fatalf("AskDate failed: %v", err)
	}
	if got := d.Format(models.DateLayout); got != "2024-01-10" {
		t.Errorf("AskDate = %s, want 2024-01-10", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"S\n", true},
		{"n\n", false},
		{"maybe\nN\n", false},
	}

	for _, tt := range tests {
		p, _ := newPrompter(tt.input)
		got, err := p.Confirm("Sure?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAskLastLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("Ana")

	got, err := p.Ask("Name: ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "Ana" {
		t.Errorf("Ask = %q, want Ana", got)
	}
	if _, err := p.Ask("Again: "); err == nil {
		t.Error("expected EOF after input is exhausted")
	}
}

func runSession(t *testing.T, db *storage.DB, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), &out, zerolog.Nop())
	svc := clinic.NewService(db, p, zerolog.Nop())
	err := New(svc, p, &out, zerolog.Nop(), "/tmp/vetclinic.log").Run(context.Background())
	return out.String(), err
}

func setupDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "clinic.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestSessionRegisterAndHistory(t *testing.T) {
	db := setupDB(t)

	input := lines(
		"1", "Rex", "Dog", "Labrador", "3", "Ana", "y", "", "555-1234", "Calle 1", "",
		"2", "1", "10-01-2024", "checkup", "healthy", "",
		"2", "1", "05-03-2024", "vaccine", "ok", "",
		"5", "1", "",
		"12",
	)

	out, err := runSession(t, db, input)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, want := range []string{
		"Owner 'Ana' is not registered.",
		"Pet 'Rex' registered with ID 1, owner: Ana.",
		"Visit 1 registered.",
		"Clinical history of Rex (ID: 1):",
		"Goodbye",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "Date: 05-03-2024") > strings.Index(out, "Date: 10-01-2024") {
		t.Error("expected most recent visit first")
	}
}

func TestSessionDeleteCancelled(t *testing.T) {
	db := setupDB(t)
	o, _ := db.InsertOwner(models.NewOwner("Ana", "", ""))
	if _, err := db.InsertPet(models.NewPet("Rex", "Dog", "", 2, o.ID)); err != nil {
		t.Fatalf("InsertPet failed: %v", err)
	}

	out, err := runSession(t, db, lines("9", "1", "n", "", "12"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "This also removes 1 pet and 0 visits.") {
		t.Errorf("expected cascade preview in output:\n%s", out)
	}
	if !strings.Contains(out, "Operation cancelled.") {
		t.Error("expected cancellation notice")
	}
	if got, _ := db.GetOwnerByID(o.ID); got == nil {
		t.Error("owner deleted despite cancel")
	}
}

func TestSessionRenameConflict(t *testing.T) {
	db := setupDB(t)
	ana, _ := db.InsertOwner(models.NewOwner("Ana", "", ""))
	if _, err := db.InsertOwner(models.NewOwner("Bruno", "", "")); err != nil {
		t.Fatalf("InsertOwner failed: %v", err)
	}

	out, err := runSession(t, db, lines("6", "1", "Bruno", "", "", "", "12"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "Owner name already in use") {
		t.Errorf("expected conflict message:\n%s", out)
	}
	if got, _ := db.GetOwnerByID(ana.ID); got.Name != "Ana" {
		t.Errorf("owner renamed to %q", got.Name)
	}
}

func TestSessionUpdatePetWarnings(t *testing.T) {
	db := setupDB(t)
	ana, _ := db.InsertOwner(models.NewOwner("Ana", "", ""))
	if _, err := db.InsertPet(models.NewPet("Rex", "Dog", "", 2, ana.ID)); err != nil {
		t.Fatalf("InsertPet failed: %v", err)
	}

	out, err := runSession(t, db, lines("7", "1", "", "", "Beagle", "old", "y", "Nobody", "", "12"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, want := range []string{`Invalid age "old"`, `Owner "Nobody" not found`, "Pet updated."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	got, _ := db.GetPetByID(1)
	if got.Breed != "Beagle" || got.Age != 2 {
		t.Errorf("unexpected pet after update: %+v", got)
	}
}

func TestSessionNotFoundAndInvalidOption(t *testing.T) {
	db := setupDB(t)

	out, err := runSession(t, db, lines("99", "", "5", "7", "", "3", ""))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, want := range []string{"Invalid option.", "Record not found: pet 7.", "No owners registered."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSessionUnexpectedFailureIsCritical(t *testing.T) {
	var out, logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)
	p := NewPrompter(strings.NewReader(lines("3", "", "12")), &out, logger)

	// A console without a service fails inside the action.
	err := New(nil, p, &out, logger, "/tmp/vetclinic.log").Run(context.Background())
	if err == nil {
		t.Fatal("expected Run to return the failure")
	}
	if !strings.Contains(out.String(), "Please check the log file '/tmp/vetclinic.log'") {
		t.Errorf("expected apology pointing at the log:\n%s", out.String())
	}
	if !strings.Contains(logBuf.String(), `"severity":"critical"`) {
		t.Errorf("expected critical log entry:\n%s", logBuf.String())
	}
	if strings.Contains(out.String(), "Goodbye") {
		t.Error("loop should end on a critical failure")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	db := setupDB(t)
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New(clinic.NewService(db, p, zerolog.Nop()), p, &out, zerolog.Nop(), "").Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunInterruptedWhileWaitingForInput(t *testing.T) {
	db := setupDB(t)
	var out bytes.Buffer
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	p := NewPrompter(pr, &out, zerolog.Nop())
	c := New(clinic.NewService(db, p, zerolog.Nop()), p, &out, zerolog.Nop(), "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	// Start registering a pet, then leave the species prompt waiting.
	if _, err := io.WriteString(pw, "1\nRex\n"); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}

	if !strings.Contains(out.String(), "Interrupted. Goodbye!") {
		t.Errorf("expected interruption notice, got:\n%s", out.String())
	}
	pets, err := db.ListPets()
	if err != nil {
		t.Fatalf("ListPets failed: %v", err)
	}
	if len(pets) != 0 {
		t.Errorf("interrupted flow should not write, got %d pets", len(pets))
	}
}

func TestAskReturnsContextErrorWhileBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPrompter(pr, io.Discard, zerolog.Nop()).WithContext(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := p.Ask("Name: ")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Ask error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ask stayed blocked after cancel")
	}
}
