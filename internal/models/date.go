// ABOUTME: Calendar date helpers shared by storage and presentation.
// ABOUTME: Storage uses YYYY-MM-DD, users type and read DD-MM-YYYY.
package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the persisted form of a visit date.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the form users type and read.
	DisplayDateLayout = "02-01-2006"
)

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDisplayDate parses a DD-MM-YYYY date as typed by a user.
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use DD-MM-YYYY)", s)
	}
	return t, nil
}

// ParseStoredDate parses a YYYY-MM-DD date as persisted.
func ParseStoredDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDisplayDate renders a date as DD-MM-YYYY.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// DateValue is a visit date supplied either as a calendar date or as
// pre-formatted YYYY-MM-DD text.
type DateValue struct {
	Time time.Time
	Text string
}

// DateOf wraps a calendar date.
func DateOf(t time.Time) *DateValue {
	return &DateValue{Time: t}
}

// DateText wraps text already in YYYY-MM-DD form.
func DateText(s string) *DateValue {
	return &DateValue{Text: s}
}

// Canonical returns the YYYY-MM-DD text to bind. Text is passed through unchanged.
func (d DateValue) Canonical() string {
	if d.Text != "" {
		return d.Text
	}
	return d.Time.Format(DateLayout)
}

// Validate reports whether Text, when set, is a real YYYY-MM-DD date.
// Calendar dates are always valid.
func (d DateValue) Validate() error {
	if d.Text == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, d.Text); err != nil {
		return fmt.Errorf("invalid date text %q (want YYYY-MM-DD)", d.Text)
	}
	return nil
}
