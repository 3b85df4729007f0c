package mocks

import (
	"context"
	"io"
	"time"

	"clubapi/internal/model"
	"clubapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Create(ctx context.Context, in service.MemberInput) (*model.Member, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberService) List(ctx context.Context, p service.ListParams) (*service.MemberListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MemberListResult), args.Error(1)
}

func (m *MockMemberService) Get(ctx context.Context, id int64) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberService) Update(ctx context.Context, id int64, in service.MemberInput) (*model.Member, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberService) UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Member, error) {
	args := m.Called(ctx, id, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberService) PhotoURL(ctx context.Context, id int64, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}
