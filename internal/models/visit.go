// ABOUTME: Visit model for clinical encounters.
// ABOUTME: A visit is dated (no time component) and belongs to one pet.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Visit is a clinical encounter for exactly one Pet.
type Visit struct {
	ID        int64     `json:"id" yaml:"id"`
	Date      time.Time `json:"date" yaml:"date"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Diagnosis string    `json:"diagnosis,omitempty" yaml:"diagnosis,omitempty"`
	PetID     int64     `json:"pet_id" yaml:"pet_id"`

	// PetName is filled from a join on read; it is never stored.
	PetName string `json:"pet_name,omitempty" yaml:"pet_name,omitempty"`
}

// NewVisit creates an unsaved Visit. The date is truncated to the calendar day.
func NewVisit(date time.Time, reason, diagnosis string, petID int64) *Visit {
	return &Visit{
		Date:      TruncateDate(date),
		Reason:    strings.TrimSpace(reason),
		Diagnosis: strings.TrimSpace(diagnosis),
		PetID:     petID,
	}
}

// PetLabel returns the pet name when known, otherwise the pet id.
func (v *Visit) PetLabel() string {
	if v.PetName != "" {
		return v.PetName
	}
	return "pet #" + itoa(v.PetID)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
