// ABOUTME: Record service coordinating prompts, validation, and storage.
// ABOUTME: Owns find-or-create, update assembly, and delete confirmation flows.
package clinic

import (
	"errors"
	"fmt"

	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/rs/zerolog"
)

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNameConflict is returned when an owner name belongs to another owner.
	ErrNameConflict = errors.New("owner name already in use")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput is returned for values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Prompter asks the user for input during multi-step flows.
type Prompter interface {
	Ask(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
	Notify(msg string)
}

// Service implements the clinic's record operations.
type Service struct {
	repo   storage.Repository
	prompt Prompter
	log    zerolog.Logger
}

// NewService creates a Service.
func NewService(repo storage.Repository, prompt Prompter, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		prompt: prompt,
		log:    logger.With().Str("component", "clinic").Logger(),
	}
}

// UpdateResult describes the outcome of an update.
type UpdateResult struct {
	// Updated is true when a change was written.
	Updated bool
	// NoChanges is true when every edit was blank or rejected.
	NoChanges bool
	// Warnings lists edits that were skipped.
	Warnings []string
}

func (r *UpdateResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Owner returns the owner with the given id.
func (s *Service) Owner(id int64) (*models.Owner, error) {
	o, err := s.repo.GetOwnerByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		s.log.Info().Int64("owner_id", id).Msg("owner not found")
		return nil, fmt.Errorf("%w: owner %d", ErrNotFound, id)
	}
	return o, nil
}

// Pet returns the pet with the given id.
func (s *Service) Pet(id int64) (*models.Pet, error) {
	p, err := s.repo.GetPetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		s.log.Info().Int64("pet_id", id).Msg("pet not found")
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, id)
	}
	return p, nil
}

// Visit returns the visit with the given id.
func (s *Service) Visit(id int64) (*models.Visit, error) {
	v, err := s.repo.GetVisitByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		s.log.Info().Int64("visit_id", id).Msg("visit not found")
		return nil, fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}
	return v, nil
}

// Owners lists every owner.
func (s *Service) Owners() ([]*models.Owner, error) {
	owners, err := s.repo.ListOwners()
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(owners)).Msg("owners listed")
	return owners, nil
}

// Pets lists every pet with its owner's name.
func (s *Service) Pets() ([]*models.Pet, error) {
	pets, err := s.repo.ListPets()
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(pets)).Msg("pets listed")
	return pets, nil
}

// History returns a pet and its visits, most recent first.
func (s *Service) History(petID int64) (*models.Pet, []*models.Visit, error) {
	p, err := s.Pet(petID)
	if err != nil {
		return nil, nil, err
	}
	visits, err := s.repo.ListVisitsByPet(petID)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info().Int64("pet_id", petID).Int("visits", len(visits)).Msg("history viewed")
	return p, visits, nil
}
