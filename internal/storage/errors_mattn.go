// ABOUTME: Error classification for the cgo go-sqlite3 driver.
// ABOUTME: Only built with cgo, where the driver's error type exists.

//go:build cgo

package storage

import (
	"errors"

	mattn "github.com/mattn/go-sqlite3"
)

func classifyMattn(err error) error {
	var ce mattn.Error
	if errors.As(err, &ce) {
		switch ce.ExtendedCode {
		case mattn.ErrConstraintUnique, mattn.ErrConstraintPrimaryKey:
			return ErrDuplicateName
		case mattn.ErrConstraintForeignKey:
			return ErrMissingParent
		}
	}
	return nil
}
