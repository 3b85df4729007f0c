package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validMember() *Member {
	return &Member{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Gender:    GenderFemale,
		BirthDate: time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		Country:   "GB",
		Consent:   true,
	}
}

func TestMemberValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Member)
		wantErr error
	}{
		{"valid", func(m *Member) {}, nil},
		{"missing first name", func(m *Member) { m.FirstName = "  " }, ErrFirstNameRequired},
		{"missing last name", func(m *Member) { m.LastName = "" }, ErrLastNameRequired},
		{"unknown gender", func(m *Member) { m.Gender = "unknown" }, ErrInvalidGender},
		{"zero birth date", func(m *Member) { m.BirthDate = time.Time{} }, ErrBirthDateRequired},
		{"future birth date", func(m *Member) { m.BirthDate = time.Now().AddDate(1, 0, 0) }, ErrBirthDateInFuture},
		{"bad country", func(m *Member) { m.Country = "XX" }, ErrInvalidCountry},
		{"lowercase country not normalized", func(m *Member) { m.Country = "gb" }, ErrInvalidCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMember()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMemberFullName(t *testing.T) {
	m := validMember()
	assert.Equal(t, "Ada Lovelace", m.FullName())

	m.FirstName = ""
	assert.Equal(t, "Lovelace", m.FullName())
}

func TestMemberAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday passed this year", time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC), 34},
		{"birthday later this year", time.Date(1990, 10, 1, 0, 0, 0, 0, time.UTC), 33},
		{"birthday today", time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Member{BirthDate: tt.birth}
			assert.Equal(t, tt.want, m.Age(now))
		})
	}
}

func TestMemberHasPhoto(t *testing.T) {
	m := validMember()
	assert.False(t, m.HasPhoto())

	m.PhotoPath = "members/photos/abc.png"
	assert.True(t, m.HasPhoto())
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"male", GenderMale, false},
		{"FEMALE", GenderFemale, false},
		{" Other ", GenderOther, false},
		{"m", GenderMale, false},
		{"F", GenderFemale, false},
		{"o", GenderOther, false},
		{"", "", true},
		{"robot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, err := ParseGender(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGender)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, g)
		})
	}
}

func TestGenderLabel(t *testing.T) {
	assert.Equal(t, "Male", GenderMale.Label())
	assert.Equal(t, "Female", GenderFemale.Label())
	assert.Equal(t, "Other", GenderOther.Label())
	assert.Equal(t, "", Gender("").Label())
}

func TestGenders(t *testing.T) {
	gs := Genders()
	assert.Len(t, gs, 3)
	for _, g := range gs {
		assert.True(t, g.Valid())
	}
}

func TestCountryCodes(t *testing.T) {
	assert.True(t, IsCountryCode("US"))
	assert.True(t, IsCountryCode("DE"))
	assert.True(t, IsCountryCode("JP"))
	assert.False(t, IsCountryCode("us"))
	assert.False(t, IsCountryCode("XX"))
	assert.False(t, IsCountryCode(""))
	assert.Len(t, countryCodes, 249)
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "US", NormalizeCountry(" us "))
	assert.Equal(t, "GB", NormalizeCountry("gB"))
	assert.Equal(t, "", NormalizeCountry("  "))
}
