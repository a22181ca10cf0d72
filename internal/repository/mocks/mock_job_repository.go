package mocks

import (
	"context"

	"recruitapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindPublished(ctx context.Context, id string) (*model.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobPosting), args.Error(1)
}

func (m *MockJobRepository) ListPublished(ctx context.Context) ([]model.JobPosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobPosting), args.Error(1)
}
