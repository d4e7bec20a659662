// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/pkg/auth"
	"github.com/divyanshus020/Project-VMC-sub000/internal/pkg/captcha"
	"github.com/divyanshus020/Project-VMC-sub000/internal/pkg/sms"
)

// Service handles user authentication business logic
type Service struct {
	db              *gorm.DB
	redisClient     *redis.Client
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	otpStore        *OTPStore
	smsService      *sms.Service
	captchaVerifier *captcha.Verifier
}

// NewService creates a new user service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		redisClient:     redisClient,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		otpStore:        NewOTPStore(redisClient, cfg),
		smsService:      sms.NewService(cfg),
		captchaVerifier: captcha.NewVerifier(cfg),
	}
}

// RequestOTPRequest represents an OTP request payload
type RequestOTPRequest struct {
	Phone        string `json:"phone" binding:"required,min=10,max=15"`
	CaptchaToken string `json:"captcha_token"`
}

// RequestOTPResponse carries the absolute expiry back to the client so it can
// drive its countdown from server time
type RequestOTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyOTPRequest represents an OTP verification payload
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=10,max=15"`
	Code  string `json:"code" binding:"required,min=4,max=8"`
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// LoginRequest represents a password login payload
type LoginRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest represents a password reset initiation payload
type ForgotPasswordRequest struct {
	Phone        string `json:"phone" binding:"required,min=10,max=15"`
	CaptchaToken string `json:"captcha_token"`
}

// ResetPasswordRequest represents a password reset completion payload
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// RequestOTP verifies the captcha, generates an OTP and delivers it by SMS.
// The returned expiry is absolute.
func (s *Service) RequestOTP(ctx context.Context, req *RequestOTPRequest, remoteIP string) (*RequestOTPResponse, error) {
	phone := normalizePhone(req.Phone)

	if err := s.captchaVerifier.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
		return nil, fmt.Errorf("captcha verification failed: %w", err)
	}

	// Refuse OTP login for deactivated accounts up front
	var existing User
	err := s.db.Where("phone = ?", phone).First(&existing).Error
	if err == nil && !existing.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	code, expiresAt, err := s.otpStore.Issue(ctx, phone)
	if err != nil {
		return nil, err
	}

	if err := s.smsService.SendOTP(ctx, phone, code, s.config.OTP.Expiry); err != nil {
		// The stored code stays valid; delivery can be retried after cooldown
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return &RequestOTPResponse{Phone: phone, ExpiresAt: expiresAt}, nil
}

// VerifyOTP validates a code and logs the user in, registering the phone on
// first sight. Registration and login are one flow for OTP users.
func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*AuthResponse, error) {
	phone := normalizePhone(req.Phone)

	if err := s.otpStore.Verify(ctx, phone, req.Code); err != nil {
		return nil, err
	}

	var u User
	err := s.db.Where("phone = ?", phone).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		u = User{
			Phone: phone,
			Name:  strings.TrimSpace(req.Name),
			Email: req.Email,
		}
		if err := s.db.Create(&u).Error; err != nil {
			return nil, fmt.Errorf("failed to register user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return s.issueTokens(&u)
}

// Login authenticates with phone or email plus password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(u)
}

// AdminLogin authenticates an administrator with password. Non-admin accounts
// are rejected even with correct credentials, before any token is issued or
// login timestamp recorded.
func (s *Service) AdminLogin(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}

	if !u.IsAdmin {
		return nil, fmt.Errorf("invalid credentials")
	}

	return s.issueTokens(u)
}

// authenticate checks credentials without issuing tokens or touching
// last_login_at.
func (s *Service) authenticate(req *LoginRequest) (*User, error) {
	var u User
	var err error

	switch {
	case req.Phone != "":
		err = s.db.Where("phone = ?", normalizePhone(req.Phone)).First(&u).Error
	case req.Email != "":
		err = s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error
	default:
		return nil, fmt.Errorf("phone or email is required")
	}

	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if u.Password == "" {
		return nil, fmt.Errorf("this account uses OTP login")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return &u, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var u User
	if err := s.db.First(&u, claims.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return s.issueTokens(&u)
}

// GetProfile returns a user by ID
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

// UpdateProfileRequest represents profile field updates
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile updates mutable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if len(updates) > 0 {
		if err := s.db.Model(u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// ForgotPassword verifies the captcha and issues a single-use reset token,
// delivered by SMS. Responds identically whether or not the phone exists.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, remoteIP string) error {
	phone := normalizePhone(req.Phone)

	if err := s.captchaVerifier.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
		return fmt.Errorf("captcha verification failed: %w", err)
	}

	var u User
	err := s.db.Where("phone = ?", phone).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		// Do not reveal whether the phone is registered
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	token := uuid.New().String()
	key := fmt.Sprintf("password_reset:%s", token)
	if err := s.redisClient.Set(ctx, key, u.ID, 15*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	msg := &sms.Message{
		To:   phone,
		Body: fmt.Sprintf("Your password reset token is %s. It is valid for 15 minutes.", token),
	}
	if err := s.smsService.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset token: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	key := fmt.Sprintf("password_reset:%s", req.Token)

	userID, err := s.redisClient.Get(ctx, key).Uint64()
	if err == redis.Nil {
		return fmt.Errorf("invalid or expired reset token")
	}
	if err != nil {
		return fmt.Errorf("failed to load reset token: %w", err)
	}

	if err := s.passwordManager.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(&User{}).Where("id = ?", uint(userID)).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Single use
	s.redisClient.Del(ctx, key)

	return nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Phone, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.Model(u).Update("last_login_at", now).Error; err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Warn("failed to record last login")
	}
	u.LastLoginAt = &now

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	}, nil
}

func normalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
