// internal/pkg/sms/service.go
package sms

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// Message represents an outbound SMS
type Message struct {
	To   string
	Body string
}

// Service handles all SMS delivery operations
type Service struct {
	config *config.Config
	client *http.Client
}

// NewService creates a new SMS service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers an SMS using the configured provider
func (s *Service) Send(ctx context.Context, msg *Message) error {
	switch s.config.External.SMS.Provider {
	case "console":
		return s.sendConsole(msg)
	case "msg91":
		return s.sendMSG91(ctx, msg)
	case "textlocal":
		return s.sendTextLocal(ctx, msg)
	default:
		return fmt.Errorf("unsupported SMS provider: %s", s.config.External.SMS.Provider)
	}
}

// SendOTP sends a one-time password to the given phone number
func (s *Service) SendOTP(ctx context.Context, phone, code string, expiry time.Duration) error {
	msg := &Message{
		To: phone,
		Body: fmt.Sprintf("%s is your %s verification code. Valid for %d minutes. Do not share it with anyone.",
			code, s.config.App.Name, int(expiry.Minutes())),
	}
	return s.Send(ctx, msg)
}

// sendConsole logs the message instead of delivering it. Used in development.
func (s *Service) sendConsole(msg *Message) error {
	log.Printf("[sms:console] to=%s body=%q", msg.To, msg.Body)
	return nil
}
