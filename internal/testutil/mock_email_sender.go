package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/email"
	"github.com/pcist/pcist-backend/internal/types"
)

// SentEmail records one delivery made through the mock sender.
type SentEmail struct {
	To          string
	Subject     string
	HTML        string
	Attachments []email.Attachment
}

// MockEmailSender records sends instead of calling the provider.
type MockEmailSender struct {
	mu       sync.Mutex
	Disabled bool
	Sent     []SentEmail
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) IsEnabled() bool {
	return !m.Disabled
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, htmlContent string) (string, error) {
	return m.SendWithAttachments(ctx, to, subject, htmlContent, nil)
}

func (m *MockEmailSender) SendWithAttachments(ctx context.Context, to, subject, htmlContent string, attachments []email.Attachment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = append(m.Sent, SentEmail{
		To:          to,
		Subject:     subject,
		HTML:        htmlContent,
		Attachments: attachments,
	})
	return types.GenerateUUID(), nil
}

// LastSent returns the most recent delivery, or nil.
func (m *MockEmailSender) LastSent() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Sent) == 0 {
		return nil
	}
	return &m.Sent[len(m.Sent)-1]
}
