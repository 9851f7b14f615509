// ABOUTME: Owner CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for owners.
package storage

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/vetclinic/internal/models"
)

var ownerColumns = []string{"id", "name", "phone", "address"}

// InsertOwner stores a new owner and sets its ID.
func (d *DB) InsertOwner(o *models.Owner) (*models.Owner, error) {
	id, err := d.insert("insert owner", sq.Insert("owners").
		Columns("name", "phone", "address").
		Values(o.Name, o.Phone, o.Address))
	if err != nil {
		return nil, err
	}

	o.ID = id
	d.log.Info().Int64("owner_id", id).Str("name", o.Name).Msg("owner inserted")
	return o, nil
}

// GetOwnerByID retrieves an owner by ID. A missing owner yields nil, nil.
func (d *DB) GetOwnerByID(id int64) (*models.Owner, error) {
	var o models.Owner
	found, err := d.queryRow("get owner by id",
		sq.Select(ownerColumns...).From("owners").Where(sq.Eq{"id": id}),
		func(row *sql.Row) error { return scanOwner(row, &o) })
	if err != nil || !found {
		return nil, err
	}
	return &o, nil
}

// GetOwnerByName retrieves the first owner whose name matches the LIKE
// pattern. An exact match is preferred over a pattern match.
func (d *DB) GetOwnerByName(name string) (*models.Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var o models.Owner
	found, err := d.queryRow("get owner by name",
		sq.Select(ownerColumns...).From("owners").
			Where(sq.Like{"name": name}).
			OrderByClause("name = ? DESC", name).
			OrderBy("id").
			Limit(1),
		func(row *sql.Row) error { return scanOwner(row, &o) })
	if err != nil || !found {
		return nil, err
	}
	return &o, nil
}

// ListOwners returns all owners. The slice is empty, not nil, when none exist.
func (d *DB) ListOwners() ([]*models.Owner, error) {
	owners := make([]*models.Owner, 0)
	err := d.queryRows("list owners",
		sq.Select(ownerColumns...).From("owners").OrderBy("id"),
		func(rows *sql.Rows) error {
			var o models.Owner
			if err := scanOwner(rows, &o); err != nil {
				return err
			}
			owners = append(owners, &o)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return owners, nil
}

// UpdateOwner applies the set fields of u. It reports whether the owner existed.
func (d *DB) UpdateOwner(id int64, u models.OwnerUpdate) (bool, error) {
	return d.updateColumns("update owner", "owners", id, u.Columns())
}

// DeleteOwner removes an owner together with its pets and their visits.
func (d *DB) DeleteOwner(id int64) (bool, error) {
	return d.deleteByID("delete owner", "owners", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOwner(s scanner, o *models.Owner) error {
	var phone, address sql.NullString
	if err := s.Scan(&o.ID, &o.Name, &phone, &address); err != nil {
		return err
	}
	o.Phone = phone.String
	o.Address = address.String
	return nil
}
