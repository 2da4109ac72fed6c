package store

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
)

var errStorage = errors.New("storage down")

// memRepo is an in-memory metadata.Repository. Setting failWrites makes
// Set and Delete fail; failDeletes fails Delete only; failReads makes Get
// fail.
type memRepo struct {
	mu          sync.Mutex
	data        map[string][]byte
	failWrites  bool
	failDeletes bool
	failReads   bool
}

var _ metadata.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errStorage
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errStorage
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memRepo) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites || m.failDeletes {
		return errStorage
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memRepo) raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}
