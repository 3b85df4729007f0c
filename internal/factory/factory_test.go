package factory

import (
	"context"
	"errors"
	"testing"

	"clubapi/internal/model"
	"clubapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewMember(t *testing.T) {
	Reset()

	t.Run("defaults are valid and sequential", func(t *testing.T) {
		first := NewMember()
		second := NewMember()

		assert.NoError(t, first.Validate())
		assert.NoError(t, second.Validate())

		assert.Equal(t, "Member1", first.FirstName)
		assert.Equal(t, "Member2", second.FirstName)
		assert.NotEqual(t, first.BirthDate, second.BirthDate)
		assert.NotEqual(t, first.Gender, second.Gender)
	})

	t.Run("gender cycles through all values", func(t *testing.T) {
		Reset()
		seen := map[model.Gender]bool{}
		for _, m := range NewMembers(3) {
			seen[m.Gender] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("overrides apply last", func(t *testing.T) {
		m := NewMember(func(m *model.Member) {
			m.FirstName = "Grace"
			m.Country = "US"
			m.Consent = false
		})
		assert.Equal(t, "Grace", m.FirstName)
		assert.Equal(t, "US", m.Country)
		assert.False(t, m.Consent)
	})
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("persists through the repository", func(t *testing.T) {
		Reset()
		repo := new(mocks.MockMemberRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(m *model.Member) bool {
			return m.FirstName == "Member1" && !m.CreatedAt.IsZero() && m.CreatedAt.Equal(m.UpdatedAt)
		})).Return(&model.Member{ID: 1, FirstName: "Member1"}, nil).Once()

		stored, err := CreateMember(ctx, repo)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), stored.ID)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(mocks.MockMemberRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed")).Once()

		_, err := CreateMember(ctx, repo)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insert failed")
	})
}

func TestCreateMembers(t *testing.T) {
	ctx := context.Background()
	Reset()

	repo := new(mocks.MockMemberRepository)
	repo.On("Create", ctx, mock.Anything).Return(&model.Member{ID: 9}, nil).Times(4)

	out, err := CreateMembers(ctx, repo, 4)

	assert.NoError(t, err)
	assert.Len(t, out, 4)
	repo.AssertExpectations(t)
}
