package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DatabaseSizeBytes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
