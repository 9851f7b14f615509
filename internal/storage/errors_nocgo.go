// ABOUTME: Pure Go stand-in for go-sqlite3 error classification.
// ABOUTME: The driver registers a stub without cgo, so there are no codes to read.

//go:build !cgo

package storage

import (
	_ "github.com/mattn/go-sqlite3"
)

func classifyMattn(error) error {
	return nil
}
