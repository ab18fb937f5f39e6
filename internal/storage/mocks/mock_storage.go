package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, originalName, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) List(ctx context.Context, suffixes ...string) ([]string, error) {
	callArgs := make([]interface{}, 0, len(suffixes)+1)
	callArgs = append(callArgs, ctx)
	for _, s := range suffixes {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) SizeOf(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlobStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
