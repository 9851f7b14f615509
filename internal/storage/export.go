// ABOUTME: Export and import functionality for clinic records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vetclinic/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format: owners, their pets, and
// each pet's visit history.
type ExportData struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tool       string         `json:"tool" yaml:"tool"`
	ExportID   string         `json:"export_id" yaml:"export_id"`
	Owners     []*OwnerRecord `json:"owners" yaml:"owners"`
}

// OwnerRecord is an owner with its pets.
type OwnerRecord struct {
	models.Owner `yaml:",inline"`
	Pets         []*PetRecord `json:"pets" yaml:"pets"`
}

// PetRecord is a pet with its visits, most recent first.
type PetRecord struct {
	models.Pet `yaml:",inline"`
	Visits     []*models.Visit `json:"visits" yaml:"visits"`
}

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	Owners       int `json:"owners"`
	OwnersReused int `json:"owners_reused"`
	Pets         int `json:"pets"`
	Visits       int `json:"visits"`
}

// GetAllData retrieves all records for export.
func (d *DB) GetAllData() (*ExportData, error) {
	owners, err := d.ListOwners()
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "vetclinic",
		ExportID:   uuid.NewString(),
		Owners:     make([]*OwnerRecord, 0, len(owners)),
	}

	for _, o := range owners {
		pets, err := d.ListPetsByOwner(o.ID)
		if err != nil {
			return nil, err
		}
		rec := &OwnerRecord{Owner: *o, Pets: make([]*PetRecord, 0, len(pets))}
		for _, p := range pets {
			visits, err := d.ListVisitsByPet(p.ID)
			if err != nil {
				return nil, err
			}
			rec.Pets = append(rec.Pets, &PetRecord{Pet: *p, Visits: visits})
		}
		data.Owners = append(data.Owners, rec)
	}

	return data, nil
}

// ImportData inserts an exported tree in a single transaction. IDs are
// reassigned; owners whose names already exist are reused.
func (d *DB) ImportData(data *ExportData) (*ImportSummary, error) {
	if data == nil {
		return nil, errors.New("import: no data")
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, d.fail("begin import", err)
	}

	txd := *d
	txd.q = tx

	summary, err := txd.importTree(data)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, d.fail("commit import", err)
	}

	d.log.Info().
		Int("owners", summary.Owners).
		Int("owners_reused", summary.OwnersReused).
		Int("pets", summary.Pets).
		Int("visits", summary.Visits).
		Msg("import complete")
	return summary, nil
}

func (d *DB) importTree(data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, rec := range data.Owners {
		if rec == nil {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, fmt.Errorf("import owner: %w: blank name", ErrStore)
		}

		var ownerID int64
		existing, err := d.GetOwnerByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Name == name {
			ownerID = existing.ID
			summary.OwnersReused++
		} else {
			o, err := d.InsertOwner(models.NewOwner(name, rec.Phone, rec.Address))
			if err != nil {
				return nil, err
			}
			ownerID = o.ID
			summary.Owners++
		}

		for _, pr := range rec.Pets {
			if pr == nil {
				continue
			}
			p, err := d.InsertPet(models.NewPet(pr.Name, pr.Species, pr.Breed, pr.Age, ownerID))
			if err != nil {
				return nil, err
			}
			summary.Pets++

			for _, v := range pr.Visits {
				if v == nil {
					continue
				}
				if _, err := d.InsertVisit(models.NewVisit(v.Date, v.Reason, v.Diagnosis, p.ID)); err != nil {
					return nil, err
				}
				summary.Visits++
			}
		}
	}

	return summary, nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&data)
}

// ExportJSON exports all records as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all records as YAML. Dates are written as YYYY-MM-DD.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string      `yaml:"version"`
		ExportedAt string      `yaml:"exported_at"`
		Tool       string      `yaml:"tool"`
		ExportID   string      `yaml:"export_id"`
		Owners     []yamlOwner `yaml:"owners"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		ExportID:   data.ExportID,
		Owners:     make([]yamlOwner, 0, len(data.Owners)),
	}

	for _, o := range data.Owners {
		yo := yamlOwner{Name: o.Name, Phone: o.Phone, Address: o.Address}
		for _, p := range o.Pets {
			yp := yamlPet{Name: p.Name, Species: p.Species, Breed: p.Breed, Age: p.Age}
			for _, v := range p.Visits {
				yp.Visits = append(yp.Visits, yamlVisit{
					Date:      v.Date.Format(models.DateLayout),
					Reason:    v.Reason,
					Diagnosis: v.Diagnosis,
				})
			}
			yo.Pets = append(yo.Pets, yp)
		}
		yamlData.Owners = append(yamlData.Owners, yo)
	}

	return yaml.Marshal(yamlData)
}

type yamlOwner struct {
	Name    string    `yaml:"name"`
	Phone   string    `yaml:"phone,omitempty"`
	Address string    `yaml:"address,omitempty"`
	Pets    []yamlPet `yaml:"pets,omitempty"`
}

type yamlPet struct {
	Name    string      `yaml:"name"`
	Species string      `yaml:"species,omitempty"`
	Breed   string      `yaml:"breed,omitempty"`
	Age     int         `yaml:"age"`
	Visits  []yamlVisit `yaml:"visits,omitempty"`
}

type yamlVisit struct {
	Date      string `yaml:"date"`
	Reason    string `yaml:"reason,omitempty"`
	Diagnosis string `yaml:"diagnosis,omitempty"`
}

// ExportMarkdown exports all records as Markdown, one section per owner.
func (d *DB) ExportMarkdown() (string, error) {
	data, err := d.GetAllData()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Clinic Export - %s\n\n", data.ExportedAt.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	if len(data.Owners) == 0 {
		sb.WriteString("No owners registered.\n")
		return sb.String(), nil
	}

	for _, o := range data.Owners {
		sb.WriteString(fmt.Sprintf("## %s\n\n", o.Name))
		if o.Phone != "" {
			sb.WriteString(fmt.Sprintf("- Phone: %s\n", o.Phone))
		}
		if o.Address != "" {
			sb.WriteString(fmt.Sprintf("- Address: %s\n", o.Address))
		}
		if o.Phone != "" || o.Address != "" {
			sb.WriteString("\n")
		}

		for _, p := range o.Pets {
			sb.WriteString(fmt.Sprintf("### %s\n\n", petHeading(&p.Pet)))
			if len(p.Visits) == 0 {
				sb.WriteString("No visits recorded.\n\n")
				continue
			}
			sb.WriteString("| Date | Reason | Diagnosis |\n")
			sb.WriteString("|------|--------|-----------|\n")
			for _, v := range p.Visits {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
					models.FormatDisplayDate(v.Date), mdCell(v.Reason), mdCell(v.Diagnosis)))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func petHeading(p *models.Pet) string {
	var details []string
	if p.Species != "" {
		details = append(details, p.Species)
	}
	if p.Breed != "" {
		details = append(details, p.Breed)
	}
	details = append(details, fmt.Sprintf("%d y", p.Age))
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(details, ", "))
}

// mdCell keeps a value from breaking the table row.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
