// internal/domain/user/service_test.go
package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

func testServiceConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "vmc-api-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough!"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	cfg.Security.BcryptCost = 4
	return cfg
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&User{}))
	require.NoError(t, db.Exec("TRUNCATE users RESTART IDENTITY CASCADE").Error)

	return db
}

func TestAdminLoginRejectsNonAdminWithoutRecordingLogin(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, testServiceConfig())

	hashed, err := service.passwordManager.HashPassword("Sup3r-secret")
	require.NoError(t, err)
	u := User{Phone: "9876543210", Name: "Regular", Password: hashed, IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	_, err = service.AdminLogin(context.Background(), &LoginRequest{Phone: "9876543210", Password: "Sup3r-secret"})
	require.Error(t, err)

	var reloaded User
	require.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.Nil(t, reloaded.LastLoginAt, "a rejected admin login must not record last_login_at")

	// The same credentials still work on the customer login
	resp, err := service.Login(context.Background(), &LoginRequest{Phone: "9876543210", Password: "Sup3r-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestAdminLoginAcceptsAdmin(t *testing.T) {
	db := testDB(t)
	service := NewService(db, nil, testServiceConfig())

	hashed, err := service.passwordManager.HashPassword("Adm1n-secret")
	require.NoError(t, err)
	u := User{Phone: "9000000001", Name: "Admin", Password: hashed, IsActive: true, IsAdmin: true}
	require.NoError(t, db.Create(&u).Error)

	resp, err := service.AdminLogin(context.Background(), &LoginRequest{Phone: "9000000001", Password: "Adm1n-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.User.IsAdmin)
	assert.NotNil(t, resp.User.LastLoginAt)
}
