// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and import remapping.
package storage

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func seedClinic(t *testing.T, db *DB) {
	t.Helper()
	ana, err := db.InsertOwner(models.NewOwner("Ana", "555-1234", "Calle 1"))
	if err != nil {
		t.Fatalf("InsertOwner failed: %v", err)
	}
	rex, err := db.InsertPet(models.NewPet("Rex", "Dog", "Labrador", 3, ana.ID))
	if err != nil {
		t.Fatalf("InsertPet failed: %v", err)
	}
	mustVisit(t, db, "2024-01-10", rex.ID)
	mustVisit(t, db, "2024-03-05", rex.ID)

	bruno := mustOwner(t, db, "Bruno")
	mustPet(t, db, "Toby", bruno.ID)
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedClinic(t, db)

	data, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "vetclinic" {
		t.Errorf("Expected tool vetclinic, got %s", export.Tool)
	}
	if _, err := uuid.Parse(export.ExportID); err != nil {
		t.Errorf("export id %q is not a uuid: %v", export.ExportID, err)
	}
	if len(export.Owners) != 2 {
		t.Fatalf("Expected 2 owners, got %d", len(export.Owners))
	}

	ana := export.Owners[0]
	if ana.Name != "Ana" || ana.Phone != "555-1234" {
		t.Errorf("owner mismatch: %+v", ana.Owner)
	}
	if len(ana.Pets) != 1 || len(ana.Pets[0].Visits) != 2 {
		t.Fatalf("expected Ana to have 1 pet with 2 visits, got %+v", ana.Pets)
	}
	if got := ana.Pets[0].Visits[0].Date.Format(models.DateLayout); got != "2024-03-05" {
		t.Errorf("expected newest visit first, got %s", got)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedClinic(t, db)

	data, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed struct {
		Version string      `yaml:"version"`
		Tool    string      `yaml:"tool"`
		Owners  []yamlOwner `yaml:"owners"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if parsed.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, parsed.Version)
	}
	if len(parsed.Owners) != 2 {
		t.Fatalf("Expected 2 owners, got %d", len(parsed.Owners))
	}
	visits := parsed.Owners[0].Pets[0].Visits
	if len(visits) != 2 || visits[0].Date != "2024-03-05" {
		t.Errorf("unexpected visits: %+v", visits)
	}
	if len(parsed.Owners[1].Pets[0].Visits) != 0 {
		t.Errorf("expected Toby to have no visits")
	}
}

func TestExportYAMLEmpty(t *testing.T) {
	db := setupTestDB(t)

	data, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["tool"] != "vetclinic" {
		t.Errorf("Expected tool vetclinic, got %v", parsed["tool"])
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedClinic(t, db)

	md, err := db.ExportMarkdown()
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Clinic Export",
		"## Ana",
		"- Phone: 555-1234",
		"### Rex (Dog, Labrador, 3 y)",
		"| 05-03-2024 | checkup | healthy |",
		"| 10-01-2024 | checkup | healthy |",
		"## Bruno",
		"No visits recorded.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	if strings.Index(md, "05-03-2024") > strings.Index(md, "10-01-2024") {
		t.Error("expected newest visit first in markdown")
	}
}

func TestExportMarkdownEmptyDB(t *testing.T) {
	db := setupTestDB(t)

	md, err := db.ExportMarkdown()
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No owners registered.") {
		t.Errorf("expected empty notice, got %q", md)
	}
}

func TestMarkdownCellEscaping(t *testing.T) {
	if got := mdCell("a|b\nc"); got != `a\|b c` {
		t.Errorf("mdCell = %q", got)
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedClinic(t, src)

	raw, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	mustOwner(t, dst, "Zoe")

	summary, err := dst.ImportJSON(raw)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if summary.Owners != 2 || summary.OwnersReused != 0 || summary.Pets != 2 || summary.Visits != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	ana, err := dst.GetOwnerByName("Ana")
	if err != nil || ana == nil {
		t.Fatalf("imported owner not found: %v", err)
	}
	if ana.ID == 1 {
		t.Error("expected ids to be reassigned")
	}
	pets, _ := dst.ListPetsByOwner(ana.ID)
	if len(pets) != 1 || pets[0].Name != "Rex" {
		t.Fatalf("unexpected pets: %+v", pets)
	}
	visits, _ := dst.ListVisitsByPet(pets[0].ID)
	if len(visits) != 2 || visits[0].Date.Format(models.DateLayout) != "2024-03-05" {
		t.Errorf("unexpected visits: %+v", visits)
	}
}

func TestImportReusesExistingOwner(t *testing.T) {
	db := setupTestDB(t)
	ana := mustOwner(t, db, "Ana")

	data := &ExportData{Owners: []*OwnerRecord{{
		Owner: models.Owner{Name: "Ana"},
		Pets:  []*PetRecord{{Pet: models.Pet{Name: "Mia", Age: 1}}},
	}}}

	summary, err := db.ImportData(data)
	if err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}
	if summary.OwnersReused != 1 || summary.Owners != 0 || summary.Pets != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	pets, _ := db.ListPetsByOwner(ana.ID)
	if len(pets) != 1 || pets[0].Name != "Mia" {
		t.Errorf("expected Mia under existing owner, got %+v", pets)
	}
}

func TestImportRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	data := &ExportData{Owners: []*OwnerRecord{
		{Owner: models.Owner{Name: "Ana"}},
		{
			Owner: models.Owner{Name: "Bruno"},
			Pets:  []*PetRecord{{Pet: models.Pet{Name: "Bad", Age: -4}}},
		},
	}}

	if _, err := db.ImportData(data); !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}

	owners, err := db.ListOwners()
	if err != nil {
		t.Fatalf("ListOwners failed: %v", err)
	}
	if len(owners) != 0 {
		t.Errorf("expected rollback to leave no owners, got %d", len(owners))
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.ImportJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := db.ImportData(nil); err == nil {
		t.Error("expected error for nil data")
	}
}

func TestImportAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")
	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	seedClinic(t, db)
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	all, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if len(all.Owners) != 2 {
		t.Errorf("expected data to persist across reopen, got %d owners", len(all.Owners))
	}
}
