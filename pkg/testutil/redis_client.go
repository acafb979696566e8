package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/wastebounty/backend/pkg/xredis"
)

// MockRedisClient keeps values in memory unless a XxxFunc overrides the
// call. TTLs are ignored.
type MockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	GetObjFunc func(ctx context.Context, key string, v any) error
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error

	mutex sync.Mutex
	data  map[string]string
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", xredis.ErrNotFound
	}

	return value, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	s, err := m.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return m.Set(ctx, key, string(b), ttl)
}
