package mocks

import (
	"context"

	"clubapi/internal/model"
	"clubapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.Member) (*model.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, f repository.MemberFilter, order repository.Order, pq repository.PageQuery) (*repository.PageResult[model.Member], error) {
	args := m.Called(ctx, f, order, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Member]), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *model.Member) (*model.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdatePhotoPath(ctx context.Context, id int64, photoPath string) error {
	args := m.Called(ctx, id, photoPath)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
