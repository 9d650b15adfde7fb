package testutil

import (
	"context"
	"sync"

	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/s3"
)

// MockS3Service keeps objects in memory.
type MockS3Service struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

func (m *MockS3Service) key(bucket s3.Bucket, key string) string {
	return string(bucket) + "/" + key
}

func (m *MockS3Service) Upload(_ context.Context, bucket s3.Bucket, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[m.key(bucket, key)] = cp
	return "https://test-bucket.local/" + m.key(bucket, key), nil
}

func (m *MockS3Service) Get(_ context.Context, bucket s3.Bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.objects[m.key(bucket, key)]; ok {
		cp := make([]byte, len(data))
		copy(cp, data)
		return cp, nil
	}
	return nil, ierr.NewError("object not found").Mark(ierr.ErrNotFound)
}

func (m *MockS3Service) PresignedURL(_ context.Context, bucket s3.Bucket, key string) (string, error) {
	return "https://test-bucket.local/" + m.key(bucket, key) + "?signed", nil
}

func (m *MockS3Service) Exists(_ context.Context, bucket s3.Bucket, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.objects[m.key(bucket, key)]
	return ok, nil
}
