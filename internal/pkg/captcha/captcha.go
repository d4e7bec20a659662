// internal/pkg/captcha/captcha.go
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// Verifier validates captcha tokens against the reCAPTCHA siteverify API
type Verifier struct {
	config *config.Config
	client *http.Client
}

// NewVerifier creates a new captcha verifier
func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		config: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a captcha token. A token must be verified before any OTP
// is generated for the requesting client.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.config.External.Captcha.Enabled {
		return nil
	}

	if token == "" {
		return fmt.Errorf("captcha token is required")
	}

	form := url.Values{}
	form.Set("secret", v.config.External.Captcha.SecretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.config.External.Captcha.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var result siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	if !result.Success {
		if len(result.ErrorCodes) > 0 {
			return fmt.Errorf("captcha verification failed: %s", result.ErrorCodes[0])
		}
		return fmt.Errorf("captcha verification failed")
	}

	// Score is only present for v3 tokens; zero means v2, which has no score.
	if result.Score > 0 && result.Score < v.config.External.Captcha.MinScore {
		return fmt.Errorf("captcha score %.2f below threshold", result.Score)
	}

	return nil
}
