// ABOUTME: Visit CRUD operations for SQLite storage.
// ABOUTME: Dates are stored as YYYY-MM-DD; histories list newest first.
package storage

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/vetclinic/internal/models"
)

func selectVisits() sq.SelectBuilder {
	return sq.Select("v.id", "v.date", "v.reason", "v.diagnosis", "v.pet_id", "p.name").
		From("visits v").
		Join("pets p ON p.id = v.pet_id")
}

// InsertVisit stores a new visit and sets its ID. The pet must exist.
func (d *DB) InsertVisit(v *models.Visit) (*models.Visit, error) {
	id, err := d.insert("insert visit", sq.Insert("visits").
		Columns("date", "reason", "diagnosis", "pet_id").
		Values(v.Date.Format(models.DateLayout), v.Reason, v.Diagnosis, v.PetID))
	if err != nil {
		return nil, err
	}

	v.ID = id
	d.log.Info().Int64("visit_id", id).Int64("pet_id", v.PetID).Msg("visit inserted")
	return v, nil
}

// GetVisitByID retrieves a visit by ID. A missing visit yields nil, nil.
func (d *DB) GetVisitByID(id int64) (*models.Visit, error) {
	var v models.Visit
	found, err := d.queryRow("get visit by id",
		selectVisits().Where(sq.Eq{"v.id": id}),
		func(row *sql.Row) error { return scanVisit(row, &v) })
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// ListVisitsByPet returns a pet's visits, most recent first.
func (d *DB) ListVisitsByPet(petID int64) ([]*models.Visit, error) {
	visits := make([]*models.Visit, 0)
	err := d.queryRows("list visits by pet",
		selectVisits().Where(sq.Eq{"v.pet_id": petID}).OrderBy("v.date DESC", "v.id DESC"),
		func(rows *sql.Rows) error {
			var v models.Visit
			if err := scanVisit(rows, &v); err != nil {
				return err
			}
			visits = append(visits, &v)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// CountVisitsByOwner counts the visits of all pets belonging to an owner.
func (d *DB) CountVisitsByOwner(ownerID int64) (int, error) {
	var n int
	_, err := d.queryRow("count visits by owner",
		sq.Select("COUNT(*)").From("visits v").
			Join("pets p ON p.id = v.pet_id").
			Where(sq.Eq{"p.owner_id": ownerID}),
		func(row *sql.Row) error { return row.Scan(&n) })
	if err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateVisit applies the set fields of u. Dates are bound in YYYY-MM-DD form;
// date text that is not a valid YYYY-MM-DD date is rejected with ErrStore.
func (d *DB) UpdateVisit(id int64, u models.VisitUpdate) (bool, error) {
	if u.Date != nil {
		if err := u.Date.Validate(); err != nil {
			d.log.Warn().Err(err).Int64("visit_id", id).Msg("malformed visit date rejected")
			return false, fmt.Errorf("update visit: %w: %v", ErrStore, err)
		}
	}
	return d.updateColumns("update visit", "visits", id, u.Columns())
}

// DeleteVisit removes a single visit.
func (d *DB) DeleteVisit(id int64) (bool, error) {
	return d.deleteByID("delete visit", "visits", id)
}

func scanVisit(s scanner, v *models.Visit) error {
	var date string
	var reason, diagnosis sql.NullString
	if err := s.Scan(&v.ID, &date, &reason, &diagnosis, &v.PetID, &v.PetName); err != nil {
		return err
	}
	t, err := models.ParseStoredDate(date)
	if err != nil {
		return fmt.Errorf("visit %d: %w", v.ID, err)
	}
	v.Date = t
	v.Reason = reason.String
	v.Diagnosis = diagnosis.String
	return nil
}
