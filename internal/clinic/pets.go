// ABOUTME: Pet flows: registration, sparse updates, and cascading delete.
package clinic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
)

// PetInput holds the values collected for a new pet.
type PetInput struct {
	Name      string
	Species   string
	Breed     string
	Age       int
	OwnerName string
}

// RegisterPet validates the input, resolves (or creates) the owner and stores the pet.
func (s *Service) RegisterPet(in PetInput) (*models.Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: pet name is required", ErrInvalidInput)
	}
	if in.Age < 0 {
		s.log.Warn().Int("age", in.Age).Msg("negative pet age rejected")
		return nil, fmt.Errorf("%w: age %d is negative", ErrInvalidInput, in.Age)
	}

	owner, err := s.FindOrCreateOwner(in.OwnerName)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.InsertPet(models.NewPet(in.Name, in.Species, in.Breed, in.Age, owner.ID))
	if err != nil {
		return nil, fmt.Errorf("register pet: %w", err)
	}
	p.OwnerName = owner.Name

	s.log.Info().Int64("pet_id", p.ID).Str("name", p.Name).Int64("owner_id", owner.ID).Msg("pet registered")
	return p, nil
}

// PetEdits carries raw user input. Blank fields leave the value unchanged.
// NewOwnerName moves the pet to an existing owner.
type PetEdits struct {
	Name         string
	Species      string
	Breed        string
	Age          string
	NewOwnerName string
}

// UpdatePet applies edits to a pet. An invalid age or an unknown new owner
// skips that field only and is reported as a warning.
func (s *Service) UpdatePet(id int64, edits PetEdits) (*UpdateResult, error) {
	pet, err := s.Pet(id)
	if err != nil {
		return nil, err
	}

	res := &UpdateResult{}
	var u models.PetUpdate
	if v := strings.TrimSpace(edits.Name); v != "" {
		u.Name = &v
	}
	if v := strings.TrimSpace(edits.Species); v != "" {
		u.Species = &v
	}
	if v := strings.TrimSpace(edits.Breed); v != "" {
		u.Breed = &v
	}
	if v := strings.TrimSpace(edits.Age); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil || age < 0 {
			s.log.Warn().Int64("pet_id", id).Str("age", v).Msg("invalid age ignored")
			res.warn("Invalid age %q; keeping %d.", v, pet.Age)
		} else {
			u.Age = &age
		}
	}
	if v := strings.TrimSpace(edits.NewOwnerName); v != "" {
		owner, err := s.repo.GetOwnerByName(v)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			s.log.Warn().Int64("pet_id", id).Str("owner", v).Msg("new owner not found; owner unchanged")
			res.warn("Owner %q not found; owner unchanged.", v)
		} else {
			u.OwnerID = &owner.ID
		}
	}

	if u.IsEmpty() {
		res.NoChanges = true
		s.log.Info().Int64("pet_id", id).Msg("pet update had no changes")
		return res, nil
	}

	ok, err := s.repo.UpdatePet(id, u)
	if errors.Is(err, storage.ErrMissingParent) {
		return nil, fmt.Errorf("%w: new owner", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, id)
	}

	res.Updated = true
	s.log.Info().Int64("pet_id", id).Msg("pet updated")
	return res, nil
}

// DeletePet removes a pet and its visits after the user confirms.
func (s *Service) DeletePet(id int64) (*models.Pet, error) {
	p, err := s.Pet(id)
	if err != nil {
		return nil, err
	}
	visits, err := s.repo.ListVisitsByPet(id)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Delete pet '%s' (ID: %d)? This also removes %s.", p.Name, p.ID, plural(len(visits), "visit"))
	if err := s.confirm(prompt, "pet", id); err != nil {
		return nil, err
	}

	ok, err := s.repo.DeletePet(id)
	if err != nil {
		return nil, fmt.Errorf("delete pet: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, id)
	}

	s.log.Info().Int64("pet_id", id).Int("visits", len(visits)).Msg("pet deleted with visits")
	return p, nil
}
