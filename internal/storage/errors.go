// ABOUTME: Storage error sentinels and driver error classification.
// ABOUTME: Driver failures are logged here and never leave the package raw.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrStore wraps any store-level failure that is not otherwise classified.
	ErrStore = errors.New("store failure")
	// ErrDuplicateName is returned when an owner name is already taken.
	ErrDuplicateName = errors.New("owner name already exists")
	// ErrMissingParent is returned when a foreign key does not resolve.
	ErrMissingParent = errors.New("referenced record does not exist")
)

// classify maps driver constraint errors onto storage sentinels.
// It returns nil for anything it does not recognise.
func classify(err error) error {
	var me *sqlite.Error
	if errors.As(err, &me) {
		switch me.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrDuplicateName
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrMissingParent
		}
	}

	if kind := classifyMattn(err); kind != nil {
		return kind
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateName
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrMissingParent
	}
	return nil
}

// fail logs a store error and converts it into a storage sentinel.
func (d *DB) fail(op string, err error) error {
	switch kind := classify(err); {
	case errors.Is(kind, ErrDuplicateName):
		d.log.Warn().Err(err).Str("op", op).Msg("uniqueness conflict")
		return fmt.Errorf("%s: %w", op, ErrDuplicateName)
	case errors.Is(kind, ErrMissingParent):
		d.log.Warn().Err(err).Str("op", op).Msg("foreign key does not resolve")
		return fmt.Errorf("%s: %w", op, ErrMissingParent)
	default:
		d.log.Error().Err(err).Str("op", op).Msg("store failure")
		return fmt.Errorf("%s: %w: %v", op, ErrStore, err)
	}
}
