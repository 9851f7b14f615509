// ABOUTME: Pet CRUD operations for SQLite storage.
// ABOUTME: Reads join the owner's name; deletes cascade to visits.
package storage

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/vetclinic/internal/models"
)

func selectPets() sq.SelectBuilder {
	return sq.Select("p.id", "p.name", "p.species", "p.breed", "p.age", "p.owner_id", "o.name").
		From("pets p").
		Join("owners o ON o.id = p.owner_id")
}

// InsertPet stores a new pet and sets its ID. The owner must exist.
func (d *DB) InsertPet(p *models.Pet) (*models.Pet, error) {
	id, err := d.insert("insert pet", sq.Insert("pets").
		Columns("name", "species", "breed", "age", "owner_id").
		Values(p.Name, p.Species, p.Breed, p.Age, p.OwnerID))
	if err != nil {
		return nil, err
	}

	p.ID = id
	d.log.Info().Int64("pet_id", id).Int64("owner_id", p.OwnerID).Str("name", p.Name).Msg("pet inserted")
	return p, nil
}

// GetPetByID retrieves a pet by ID. A missing pet yields nil, nil.
func (d *DB) GetPetByID(id int64) (*models.Pet, error) {
	var p models.Pet
	found, err := d.queryRow("get pet by id",
		selectPets().Where(sq.Eq{"p.id": id}),
		func(row *sql.Row) error { return scanPet(row, &p) })
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ListPets returns all pets with their owner names.
func (d *DB) ListPets() ([]*models.Pet, error) {
	return d.listPets("list pets", selectPets().OrderBy("p.id"))
}

// ListPetsByOwner returns the pets belonging to an owner.
func (d *DB) ListPetsByOwner(ownerID int64) ([]*models.Pet, error) {
	return d.listPets("list pets by owner", selectPets().Where(sq.Eq{"p.owner_id": ownerID}).OrderBy("p.id"))
}

func (d *DB) listPets(op string, stmt sq.SelectBuilder) ([]*models.Pet, error) {
	pets := make([]*models.Pet, 0)
	err := d.queryRows(op, stmt, func(rows *sql.Rows) error {
		var p models.Pet
		if err := scanPet(rows, &p); err != nil {
			return err
		}
		pets = append(pets, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// UpdatePet applies the set fields of u. It reports whether the pet existed.
func (d *DB) UpdatePet(id int64, u models.PetUpdate) (bool, error) {
	return d.updateColumns("update pet", "pets", id, u.Columns())
}

// DeletePet removes a pet together with its visits.
func (d *DB) DeletePet(id int64) (bool, error) {
	return d.deleteByID("delete pet", "pets", id)
}

func scanPet(s scanner, p *models.Pet) error {
	var species, breed sql.NullString
	var age sql.NullInt64
	if err := s.Scan(&p.ID, &p.Name, &species, &breed, &age, &p.OwnerID, &p.OwnerName); err != nil {
		return err
	}
	p.Species = species.String
	p.Breed = breed.String
	p.Age = int(age.Int64)
	return nil
}
