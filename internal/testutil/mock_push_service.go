package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/push"
)

// SentPush records one notification made through the mock service.
type SentPush struct {
	Token        string
	Topic        string
	Notification push.Notification
}

// MockPushService records notifications instead of calling FCM.
type MockPushService struct {
	mu   sync.Mutex
	Sent []SentPush
}

func NewMockPushService() *MockPushService {
	return &MockPushService{}
}

func (m *MockPushService) SendToToken(_ context.Context, token string, n push.Notification) error {
	m.record(SentPush{Token: token, Notification: n})
	return nil
}

func (m *MockPushService) SendToTopic(_ context.Context, topic string, n push.Notification) error {
	m.record(SentPush{Topic: topic, Notification: n})
	return nil
}

func (m *MockPushService) Broadcast(ctx context.Context, n push.Notification) error {
	return m.SendToTopic(ctx, "all_users", n)
}

func (m *MockPushService) record(p SentPush) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, p)
}
