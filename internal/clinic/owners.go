// ABOUTME: Owner flows: find-or-create, update with rename check, cascading delete.
// ABOUTME: The store's UNIQUE constraint remains the final integrity guarantee.
package clinic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
)

// FindOrCreateOwner looks an owner up by name and offers to register a new
// one when none matches. Declining returns ErrCancelled without writing.
func (s *Service) FindOrCreateOwner(name string) (*models.Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: owner name is required", ErrInvalidInput)
	}

	o, err := s.repo.GetOwnerByName(name)
	if err != nil {
		return nil, err
	}
	if o != nil {
		return o, nil
	}

	s.prompt.Notify(fmt.Sprintf("Owner '%s' is not registered.", name))
	ok, err := s.prompt.Confirm("Register them now?")
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Info().Str("name", name).Msg("owner registration declined")
		return nil, fmt.Errorf("%w: owner %q not registered", ErrCancelled, name)
	}

	newName, err := s.prompt.Ask(fmt.Sprintf("New owner's name (%s): ", name))
	if err != nil {
		return nil, err
	}
	if newName = strings.TrimSpace(newName); newName == "" {
		newName = name
	}

	if existing, err := s.registeredOwner(newName); existing != nil || err != nil {
		return existing, err
	}

	phone, err := s.prompt.Ask("New owner's phone: ")
	if err != nil {
		return nil, err
	}
	address, err := s.prompt.Ask("New owner's address: ")
	if err != nil {
		return nil, err
	}

	// Look again right before inserting.
	if existing, err := s.registeredOwner(newName); existing != nil || err != nil {
		return existing, err
	}

	created, err := s.repo.InsertOwner(models.NewOwner(newName, phone, address))
	if errors.Is(err, storage.ErrDuplicateName) {
		existing, lookupErr := s.repo.GetOwnerByName(newName)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil {
			s.log.Warn().Str("name", newName).Int64("owner_id", existing.ID).Msg("owner appeared concurrently; reusing")
			return existing, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("register owner: %w", err)
	}

	s.prompt.Notify("Owner registered.")
	s.log.Info().Int64("owner_id", created.ID).Str("name", created.Name).Msg("owner registered")
	return created, nil
}

// registeredOwner returns the owner already registered under name, telling
// the user it will be reused.
func (s *Service) registeredOwner(name string) (*models.Owner, error) {
	existing, err := s.repo.GetOwnerByName(name)
	if err != nil || existing == nil {
		return nil, err
	}
	s.prompt.Notify(fmt.Sprintf("Owner '%s' already exists. Using this owner.", existing.Name))
	s.log.Info().Str("name", name).Int64("owner_id", existing.ID).Msg("reusing registered owner")
	return existing, nil
}

// OwnerEdits carries raw user input. Blank fields leave the value unchanged.
type OwnerEdits struct {
	Name    string
	Phone   string
	Address string
}

// UpdateOwner applies edits to an owner. Renaming to a name held by a
// different owner rejects the whole update with ErrNameConflict.
func (s *Service) UpdateOwner(id int64, edits OwnerEdits) (*UpdateResult, error) {
	if _, err := s.Owner(id); err != nil {
		return nil, err
	}

	var u models.OwnerUpdate
	if name := strings.TrimSpace(edits.Name); name != "" {
		existing, err := s.repo.GetOwnerByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id && strings.EqualFold(existing.Name, name) {
			s.log.Warn().Int64("owner_id", id).Int64("holder_id", existing.ID).Str("name", name).Msg("rename to duplicate owner name rejected")
			return nil, fmt.Errorf("%w: %q is used by owner %d", ErrNameConflict, name, existing.ID)
		}
		u.Name = &name
	}
	if phone := strings.TrimSpace(edits.Phone); phone != "" {
		u.Phone = &phone
	}
	if address := strings.TrimSpace(edits.Address); address != "" {
		u.Address = &address
	}

	res := &UpdateResult{}
	if u.IsEmpty() {
		res.NoChanges = true
		s.log.Info().Int64("owner_id", id).Msg("owner update had no changes")
		return res, nil
	}

	ok, err := s.repo.UpdateOwner(id, u)
	if errors.Is(err, storage.ErrDuplicateName) {
		s.log.Warn().Int64("owner_id", id).Msg("rename rejected by store")
		return nil, fmt.Errorf("%w: %q", ErrNameConflict, *u.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("update owner: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: owner %d", ErrNotFound, id)
	}

	res.Updated = true
	s.log.Info().Int64("owner_id", id).Msg("owner updated")
	return res, nil
}

// DeleteOwner removes an owner and, through the cascade, its pets and visits
// after the user confirms.
func (s *Service) DeleteOwner(id int64) (*models.Owner, error) {
	o, err := s.Owner(id)
	if err != nil {
		return nil, err
	}
	pets, err := s.repo.ListPetsByOwner(id)
	if err != nil {
		return nil, err
	}
	visits, err := s.repo.CountVisitsByOwner(id)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Delete owner '%s' (ID: %d)? This also removes %s and %s.",
		o.Name, o.ID, plural(len(pets), "pet"), plural(visits, "visit"))
	if err := s.confirm(prompt, "owner", id); err != nil {
		return nil, err
	}

	ok, err := s.repo.DeleteOwner(id)
	if err != nil {
		return nil, fmt.Errorf("delete owner: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: owner %d", ErrNotFound, id)
	}

	s.log.Info().Int64("owner_id", id).Int("pets", len(pets)).Int("visits", visits).Msg("owner deleted with dependents")
	return o, nil
}

// confirm asks before a destructive action and maps "no" to ErrCancelled.
func (s *Service) confirm(prompt, kind string, id int64) error {
	ok, err := s.prompt.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Info().Str("kind", kind).Int64("id", id).Msg("delete cancelled")
		return fmt.Errorf("%w: delete %s %d", ErrCancelled, kind, id)
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
