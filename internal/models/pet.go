// ABOUTME: Pet model for animals registered at the clinic.
// ABOUTME: Every pet belongs to exactly one owner.
package models

import "strings"

// Pet is an animal belonging to exactly one Owner.
type Pet struct {
	ID      int64  `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Species string `json:"species,omitempty" yaml:"species,omitempty"`
	Breed   string `json:"breed,omitempty" yaml:"breed,omitempty"`
	Age     int    `json:"age" yaml:"age"`
	OwnerID int64  `json:"owner_id" yaml:"owner_id"`

	// OwnerName is filled from a join on read; it is never stored.
	OwnerName string `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
}

// NewPet creates an unsaved Pet for the given owner.
func NewPet(name, species, breed string, age int, ownerID int64) *Pet {
	return &Pet{
		Name:    strings.TrimSpace(name),
		Species: strings.TrimSpace(species),
		Breed:   strings.TrimSpace(breed),
		Age:     age,
		OwnerID: ownerID,
	}
}

// OwnerLabel returns the owner name when known, otherwise the owner id.
func (p *Pet) OwnerLabel() string {
	if p.OwnerName != "" {
		return p.OwnerName
	}
	return "owner #" + itoa(p.OwnerID)
}
