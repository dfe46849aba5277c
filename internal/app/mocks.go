package app

import (
	"unimatch_backend/internal/email"
	"unimatch_backend/internal/logger"
)

// MockEmailProvider logs instead of sending. Used when SMTP is not
// configured, typically in development.
type MockEmailProvider struct{}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) Send(e *email.Email) error {
	logger.Info("mock email send", "to", e.To, "subject", e.Subject)
	return nil
}

func (p *MockEmailProvider) SendActivation(to, token string) error {
	logger.Info("mock activation email", "to", to, "token", token)
	return nil
}

func (p *MockEmailProvider) Validate() error { return nil }

func (p *MockEmailProvider) Close() error { return nil }
