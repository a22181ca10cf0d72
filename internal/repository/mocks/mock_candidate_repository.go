package mocks

import (
	"context"

	"recruitapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *model.Candidate) *model.Candidate); ok {
		return fn(ctx, c), args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) List(ctx context.Context) ([]model.CandidateSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CandidateSummary), args.Error(1)
}

func (m *MockCandidateRepository) Stats(ctx context.Context) (*model.CandidateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CandidateStats), args.Error(1)
}
