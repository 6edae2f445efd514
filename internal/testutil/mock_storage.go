//go:build !production

package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/hilo-trainer/internal/server/storage"
)

// MockSessionStore 实现 types.SessionStore 的 mock
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SaveSession(ctx context.Context, data *storage.SessionData, ttl time.Duration) error {
	args := m.Called(ctx, data, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) LoadSession(ctx context.Context, token string) (*storage.SessionData, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStore) IncrOnline(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionStore) DecrOnline(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionStore) Online(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
