// internal/domain/user/otp.go
package user

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// otpState is the OTP checkpoint stored in Redis, keyed by phone number.
// ExpiresAt is an absolute timestamp: clients recompute the remaining
// countdown from it instead of carrying a relative counter.
type otpState struct {
	Code      string    `json:"code"`
	Phone     string    `json:"phone"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// OTPStore manages one-time-password checkpoints in Redis
type OTPStore struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewOTPStore creates a new OTP store
func NewOTPStore(redisClient *redis.Client, cfg *config.Config) *OTPStore {
	return &OTPStore{
		redisClient: redisClient,
		config:      cfg,
	}
}

func otpKey(phone string) string {
	return fmt.Sprintf("otp:phone:%s", phone)
}

// Issue generates and stores a fresh OTP for a phone number and returns the
// code with its absolute expiry. Issuing for a phone that already holds a
// recent OTP is refused until the resend cooldown has passed; issuing for a
// different phone is always a fresh flow since state is keyed by phone.
func (o *OTPStore) Issue(ctx context.Context, phone string) (code string, expiresAt time.Time, err error) {
	key := otpKey(phone)

	// Enforce the resend cooldown from the stored absolute issue time
	data, err := o.redisClient.Get(ctx, key).Result()
	if err == nil {
		var existing otpState
		if jsonErr := json.Unmarshal([]byte(data), &existing); jsonErr == nil {
			elapsed := time.Now().UTC().Sub(existing.IssuedAt)
			if elapsed < o.config.OTP.ResendCooldown {
				remaining := o.config.OTP.ResendCooldown - elapsed
				return "", time.Time{}, fmt.Errorf("please wait %d seconds before requesting a new code", int(remaining.Seconds())+1)
			}
		}
	} else if err != redis.Nil {
		return "", time.Time{}, fmt.Errorf("failed to check OTP state: %w", err)
	}

	code, err = GenerateOTPCode(o.config.OTP.Length)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now().UTC()
	state := otpState{
		Code:      code,
		Phone:     phone,
		IssuedAt:  now,
		ExpiresAt: now.Add(o.config.OTP.Expiry),
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to marshal OTP state: %w", err)
	}

	if err := o.redisClient.Set(ctx, key, payload, o.config.OTP.Expiry).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store OTP: %w", err)
	}

	return code, state.ExpiresAt, nil
}

// Verify checks a submitted code against the stored OTP. The comparison is
// constant-time, attempts are capped, and a successful verification consumes
// the code.
func (o *OTPStore) Verify(ctx context.Context, phone, code string) error {
	key := otpKey(phone)

	data, err := o.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("no OTP requested for this number or it has expired")
	}
	if err != nil {
		return fmt.Errorf("failed to load OTP state: %w", err)
	}

	var state otpState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return fmt.Errorf("failed to read OTP state: %w", err)
	}

	if time.Now().UTC().After(state.ExpiresAt) {
		o.redisClient.Del(ctx, key)
		return fmt.Errorf("OTP has expired, please request a new one")
	}

	if state.Attempts >= o.config.OTP.MaxAttempts {
		o.redisClient.Del(ctx, key)
		return fmt.Errorf("too many incorrect attempts, please request a new OTP")
	}

	if subtle.ConstantTimeCompare([]byte(state.Code), []byte(code)) != 1 {
		state.Attempts++
		if payload, jsonErr := json.Marshal(state); jsonErr == nil {
			ttl := time.Until(state.ExpiresAt)
			if ttl > 0 {
				o.redisClient.Set(ctx, key, payload, ttl)
			}
		}
		return fmt.Errorf("incorrect OTP")
	}

	// Single use
	if err := o.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	return nil
}

// Clear drops any OTP state for a phone number. Editing the phone mid-flow
// restarts the whole flow, so the old code must not remain usable.
func (o *OTPStore) Clear(ctx context.Context, phone string) error {
	return o.redisClient.Del(ctx, otpKey(phone)).Err()
}

// GenerateOTPCode generates a random numeric code of the given length
func GenerateOTPCode(length int) (string, error) {
	if length < 4 || length > 8 {
		return "", fmt.Errorf("invalid OTP length %d", length)
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate OTP: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
