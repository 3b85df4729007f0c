// Package factory builds membership records with valid, deterministic defaults
// for tests and database seeding. Overrides mutate the record before it is
// returned or persisted.
package factory

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"clubapi/internal/model"
	"clubapi/internal/repository"
)

var seq atomic.Int64

var baseBirthDate = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Reset rewinds the generation sequence. Tests that assert on generated
// values call this first.
func Reset() {
	seq.Store(0)
}

// NewMember returns an unsaved member with valid defaults. Each call advances
// a package-level sequence so names and birth dates stay distinct; the gender
// cycles through every declared value.
func NewMember(overrides ...func(*model.Member)) *model.Member {
	n := seq.Add(1)
	genders := model.Genders()
	m := &model.Member{
		FirstName: fmt.Sprintf("Member%d", n),
		LastName:  fmt.Sprintf("Example%d", n),
		Gender:    genders[int(n-1)%len(genders)],
		BirthDate: baseBirthDate.AddDate(0, 0, int(n-1)),
		Country:   "GB",
		Consent:   true,
	}
	for _, o := range overrides {
		o(m)
	}
	return m
}

// NewMembers returns n unsaved members built by NewMember.
func NewMembers(n int, overrides ...func(*model.Member)) []*model.Member {
	out := make([]*model.Member, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewMember(overrides...))
	}
	return out
}

// CreateMember persists a factory member through the repository and returns
// the stored record with its DB-assigned ID.
func CreateMember(ctx context.Context, repo repository.MemberRepository, overrides ...func(*model.Member)) (*model.Member, error) {
	m := NewMember(overrides...)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	stored, err := repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("factory create member: %w", err)
	}
	return stored, nil
}

// CreateMembers persists n factory members and returns the stored records.
func CreateMembers(ctx context.Context, repo repository.MemberRepository, n int, overrides ...func(*model.Member)) ([]*model.Member, error) {
	out := make([]*model.Member, 0, n)
	for i := 0; i < n; i++ {
		m, err := CreateMember(ctx, repo, overrides...)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
