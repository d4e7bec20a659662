// internal/pkg/sms/providers.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// MSG91 API structures
type msg91Request struct {
	Sender string         `json:"sender"`
	Route  string         `json:"route"`
	SMS    []msg91Payload `json:"sms"`
}

type msg91Payload struct {
	Message string   `json:"message"`
	To      []string `json:"to"`
}

type msg91Response struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// sendMSG91 sends an SMS using the MSG91 API
func (s *Service) sendMSG91(ctx context.Context, msg *Message) error {
	apiKey := s.config.External.SMS.APIKey
	if apiKey == "" {
		return fmt.Errorf("MSG91 API key not configured")
	}

	baseURL := s.config.External.SMS.BaseURL
	if baseURL == "" {
		baseURL = "https://api.msg91.com/api/v2/sendsms"
	}

	reqData := msg91Request{
		Sender: s.config.External.SMS.SenderID,
		Route:  "4", // transactional route
		SMS: []msg91Payload{
			{
				Message: msg.Body,
				To:      []string{msg.To},
			},
		},
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return fmt.Errorf("failed to marshal MSG91 request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create MSG91 request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authkey", apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("MSG91 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("MSG91 returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp msg91Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err == nil && apiResp.Type == "error" {
		return fmt.Errorf("MSG91 rejected message: %s", apiResp.Message)
	}

	return nil
}

// sendTextLocal sends an SMS using the TextLocal API
func (s *Service) sendTextLocal(ctx context.Context, msg *Message) error {
	apiKey := s.config.External.SMS.APIKey
	if apiKey == "" {
		return fmt.Errorf("TextLocal API key not configured")
	}

	baseURL := s.config.External.SMS.BaseURL
	if baseURL == "" {
		baseURL = "https://api.textlocal.in/send/"
	}

	form := url.Values{}
	form.Set("apikey", apiKey)
	form.Set("numbers", msg.To)
	form.Set("sender", s.config.External.SMS.SenderID)
	form.Set("message", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create TextLocal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("TextLocal request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiResp struct {
		Status string `json:"status"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode TextLocal response: %w", err)
	}

	if apiResp.Status != "success" {
		if len(apiResp.Errors) > 0 {
			return fmt.Errorf("TextLocal rejected message: %s", apiResp.Errors[0].Message)
		}
		return fmt.Errorf("TextLocal rejected message with status %s", apiResp.Status)
	}

	return nil
}
