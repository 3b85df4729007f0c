package model

// Package model contains domain models/data structures.
// Keep it free of persistence and transport concerns.

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for birth dates in JSON input and HTML forms.
const DateLayout = "2006-01-02"

// Validation errors reported by Member.Validate. Callers compare with errors.Is.
var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrInvalidGender     = errors.New("invalid gender")
	ErrBirthDateRequired = errors.New("birth date is required")
	ErrBirthDateInFuture = errors.New("birth date is in the future")
	ErrInvalidCountry    = errors.New("invalid country code")
)

// Member represents a club membership record.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Member struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    Gender    `json:"gender"`
	BirthDate time.Time `json:"birth_date"`
	Country   string    `json:"country"`
	Consent   bool      `json:"consent"`
	PhotoPath string    `json:"photo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports the first violated record invariant, or nil.
// The country code must already be normalized (see NormalizeCountry).
func (m *Member) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(m.LastName) == "" {
		return ErrLastNameRequired
	}
	if !m.Gender.Valid() {
		return ErrInvalidGender
	}
	if m.BirthDate.IsZero() {
		return ErrBirthDateRequired
	}
	if m.BirthDate.After(time.Now()) {
		return ErrBirthDateInFuture
	}
	if !IsCountryCode(m.Country) {
		return ErrInvalidCountry
	}
	return nil
}

// FullName returns the display name used by list pages and exports.
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Age returns the member's age in whole years at the given time.
func (m *Member) Age(now time.Time) int {
	years := now.Year() - m.BirthDate.Year()
	if m.BirthDate.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

// HasPhoto reports whether a photo object has been stored for the member.
func (m *Member) HasPhoto() bool {
	return m.PhotoPath != ""
}
