// ABOUTME: Repository interface for clinic record storage.
// ABOUTME: Defines the contract for owners, pets, and visits CRUD operations.
package storage

import "github.com/harperreed/vetclinic/internal/models"

// Repository defines the storage interface for clinic records.
//
// Lookups that find nothing return a nil entity and a nil error. Updates and
// deletes report whether a row was affected. All other failures are returned
// as errors wrapping ErrStore, ErrDuplicateName or ErrMissingParent.
type Repository interface {
	// Owner operations
	InsertOwner(o *models.Owner) (*models.Owner, error)
	GetOwnerByID(id int64) (*models.Owner, error)
	GetOwnerByName(name string) (*models.Owner, error)
	ListOwners() ([]*models.Owner, error)
	UpdateOwner(id int64, u models.OwnerUpdate) (bool, error)
	DeleteOwner(id int64) (bool, error)

	// Pet operations
	InsertPet(p *models.Pet) (*models.Pet, error)
	GetPetByID(id int64) (*models.Pet, error)
	ListPets() ([]*models.Pet, error)
	ListPetsByOwner(ownerID int64) ([]*models.Pet, error)
	UpdatePet(id int64, u models.PetUpdate) (bool, error)
	DeletePet(id int64) (bool, error)

	// Visit operations
	InsertVisit(v *models.Visit) (*models.Visit, error)
	GetVisitByID(id int64) (*models.Visit, error)
	ListVisitsByPet(petID int64) ([]*models.Visit, error)
	CountVisitsByOwner(ownerID int64) (int, error)
	UpdateVisit(id int64, u models.VisitUpdate) (bool, error)
	DeleteVisit(id int64) (bool, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) (*ImportSummary, error)

	// Lifecycle
	Close() error
}
