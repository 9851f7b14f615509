// ABOUTME: Visit flows: registration, date-aware updates, and delete.
package clinic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/vetclinic/internal/models"
	"github.com/harperreed/vetclinic/internal/storage"
)

// VisitInput holds the values collected for a new visit.
type VisitInput struct {
	PetID     int64
	Date      time.Time
	Reason    string
	Diagnosis string
}

// RegisterVisit stores a visit for an existing pet.
func (s *Service) RegisterVisit(in VisitInput) (*models.Visit, error) {
	pet, err := s.Pet(in.PetID)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: visit date is required", ErrInvalidInput)
	}

	v, err := s.repo.InsertVisit(models.NewVisit(in.Date, in.Reason, in.Diagnosis, pet.ID))
	if errors.Is(err, storage.ErrMissingParent) {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, pet.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("register visit: %w", err)
	}
	v.PetName = pet.Name

	s.log.Info().Int64("visit_id", v.ID).Int64("pet_id", pet.ID).Msg("visit registered")
	return v, nil
}

// VisitEdits carries raw user input. Date is DD-MM-YYYY; blank fields leave
// the value unchanged.
type VisitEdits struct {
	Date      string
	Reason    string
	Diagnosis string
}

// UpdateVisit applies edits to a visit. A malformed date is skipped with a warning.
func (s *Service) UpdateVisit(id int64, edits VisitEdits) (*UpdateResult, error) {
	visit, err := s.Visit(id)
	if err != nil {
		return nil, err
	}

	res := &UpdateResult{}
	var u models.VisitUpdate
	if v := strings.TrimSpace(edits.Date); v != "" {
		d, err := models.ParseDisplayDate(v)
		if err != nil {
			s.log.Warn().Int64("visit_id", id).Str("date", v).Msg("invalid date ignored")
			res.warn("Invalid date %q; keeping %s.", v, models.FormatDisplayDate(visit.Date))
		} else {
			u.Date = models.DateOf(d)
		}
	}
	if v := strings.TrimSpace(edits.Reason); v != "" {
		u.Reason = &v
	}
	if v := strings.TrimSpace(edits.Diagnosis); v != "" {
		u.Diagnosis = &v
	}

	if u.IsEmpty() {
		res.NoChanges = true
		s.log.Info().Int64("visit_id", id).Msg("visit update had no changes")
		return res, nil
	}

	ok, err := s.repo.UpdateVisit(id, u)
	if err != nil {
		return nil, fmt.Errorf("update visit: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}

	res.Updated = true
	s.log.Info().Int64("visit_id", id).Msg("visit updated")
	return res, nil
}

// DeleteVisit removes a single visit after the user confirms.
func (s *Service) DeleteVisit(id int64) (*models.Visit, error) {
	v, err := s.Visit(id)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Delete visit %d for pet '%s'?", v.ID, v.PetLabel())
	if err := s.confirm(prompt, "visit", id); err != nil {
		return nil, err
	}

	ok, err := s.repo.DeleteVisit(id)
	if err != nil {
		return nil, fmt.Errorf("delete visit: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: visit %d", ErrNotFound, id)
	}

	s.log.Info().Int64("visit_id", id).Msg("visit deleted")
	return v, nil
}
