// ABOUTME: Sparse update types for owners, pets, and visits.
// ABOUTME: A nil field means "leave unchanged"; column names come from a fixed set.
package models

// Column names that may appear in an UPDATE statement.
const (
	ColName      = "name"
	ColPhone     = "phone"
	ColAddress   = "address"
	ColSpecies   = "species"
	ColBreed     = "breed"
	ColAge       = "age"
	ColOwnerID   = "owner_id"
	ColDate      = "date"
	ColReason    = "reason"
	ColDiagnosis = "diagnosis"
)

// OwnerUpdate lists the owner fields to change.
type OwnerUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// IsEmpty reports whether no field is set.
func (u OwnerUpdate) IsEmpty() bool {
	return len(u.Columns()) == 0
}

// Columns returns the set fields keyed by column name.
func (u OwnerUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Name != nil {
		cols[ColName] = *u.Name
	}
	if u.Phone != nil {
		cols[ColPhone] = *u.Phone
	}
	if u.Address != nil {
		cols[ColAddress] = *u.Address
	}
	return cols
}

// PetUpdate lists the pet fields to change.
type PetUpdate struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *int
	OwnerID *int64
}

// IsEmpty reports whether no field is set.
func (u PetUpdate) IsEmpty() bool {
	return len(u.Columns()) == 0
}

// Columns returns the set fields keyed by column name.
func (u PetUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Name != nil {
		cols[ColName] = *u.Name
	}
	if u.Species != nil {
		cols[ColSpecies] = *u.Species
	}
	if u.Breed != nil {
		cols[ColBreed] = *u.Breed
	}
	if u.Age != nil {
		cols[ColAge] = *u.Age
	}
	if u.OwnerID != nil {
		cols[ColOwnerID] = *u.OwnerID
	}
	return cols
}

// VisitUpdate lists the visit fields to change.
type VisitUpdate struct {
	Date      *DateValue
	Reason    *string
	Diagnosis *string
}

// IsEmpty reports whether no field is set.
func (u VisitUpdate) IsEmpty() bool {
	return len(u.Columns()) == 0
}

// Columns returns the set fields keyed by column name. Dates are rendered
// in their canonical YYYY-MM-DD form.
func (u VisitUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Date != nil {
		cols[ColDate] = u.Date.Canonical()
	}
	if u.Reason != nil {
		cols[ColReason] = *u.Reason
	}
	if u.Diagnosis != nil {
		cols[ColDiagnosis] = *u.Diagnosis
	}
	return cols
}

// Ptr returns a pointer to v. Handy when filling update structs.
func Ptr[T any](v T) *T {
	return &v
}
