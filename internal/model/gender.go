package model

import "strings"

// Gender enumerates the values accepted for a member's gender field.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders returns every declared value, in the order forms render them.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid reports whether g is one of the declared values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func (g Gender) String() string {
	return string(g)
}

// Label returns the capitalized label shown in forms and list columns.
func (g Gender) Label() string {
	if g == "" {
		return ""
	}
	s := string(g)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseGender normalizes user input to a declared Gender value.
// It accepts the full words in any case plus the single-letter forms m, f and o.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other", "o":
		return GenderOther, nil
	}
	return "", ErrInvalidGender
}
