package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jotter/internal/service"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) NoteStats(ctx context.Context) (*service.ResourceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResourceStats), args.Error(1)
}

func (m *MockStatsService) PdfStats(ctx context.Context) (*service.ResourceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResourceStats), args.Error(1)
}

func (m *MockStatsService) ImageStats(ctx context.Context) (*service.ResourceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResourceStats), args.Error(1)
}

func (m *MockStatsService) DatabaseStats(ctx context.Context) (*service.DatabaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DatabaseStats), args.Error(1)
}
