// Package mocks contains hand-written testify mocks for the service layer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recruitapi/internal/model"
	"recruitapi/internal/service"
)

// MockApplicationService is a mock implementation of service.ApplicationService.
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) ProcessApplication(ctx context.Context, req service.ApplicationRequest) (*service.ApplicationOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationOutcome), args.Error(1)
}

func (m *MockApplicationService) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobPosting), args.Error(1)
}

func (m *MockApplicationService) ListCandidates(ctx context.Context) ([]model.CandidateSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CandidateSummary), args.Error(1)
}

func (m *MockApplicationService) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockApplicationService) Analytics(ctx context.Context) (*model.CandidateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CandidateStats), args.Error(1)
}
