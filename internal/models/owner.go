// ABOUTME: Owner model for clinic clients.
// ABOUTME: Owners hold pets; names are unique across the clinic.
package models

import "strings"

// Owner is a pet-owning client of the clinic.
type Owner struct {
	ID      int64  `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// NewOwner creates an unsaved Owner. The ID is assigned on insert.
func NewOwner(name, phone, address string) *Owner {
	return &Owner{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
}
