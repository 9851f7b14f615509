// ABOUTME: Tests for go-sqlite3 error code classification.
// ABOUTME: Only built with cgo, alongside the classifier.

//go:build cgo

package storage

import (
	"errors"
	"fmt"
	"testing"

	mattn "github.com/mattn/go-sqlite3"
)

func TestClassifyMattnCodes(t *testing.T) {
	tests := []struct {
		name string
		code mattn.ErrNoExtended
		want error
	}{
		{"unique", mattn.ErrConstraintUnique, ErrDuplicateName},
		{"primary key", mattn.ErrConstraintPrimaryKey, ErrDuplicateName},
		{"foreign key", mattn.ErrConstraintForeignKey, ErrMissingParent},
		{"check", mattn.ErrConstraintCheck, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", mattn.Error{Code: mattn.ErrConstraint, ExtendedCode: tt.code})
			if got := classifyMattn(err); got != tt.want {
				t.Errorf("classifyMattn = %v, want %v", got, tt.want)
			}
		})
	}

	if got := classifyMattn(errors.New("disk I/O error")); got != nil {
		t.Errorf("classifyMattn(plain error) = %v, want nil", got)
	}
}
