// internal/config/config_test.go
package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.App.Environment = "development"
	cfg.Server.Port = "8080"
	cfg.JWT.Secret = strings.Repeat("s", 32)
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "vmc_db"
	cfg.Database.User = "vmc_user"
	cfg.Redis.Host = "localhost"
	cfg.OTP.Length = 6
	cfg.Upload.Provider = "local"
	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "too-short"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingDatabaseFields(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Database.Host = "" },
		func(c *Config) { c.Database.Name = "" },
		func(c *Config) { c.Database.User = "" },
		func(c *Config) { c.Redis.Host = "" },
		func(c *Config) { c.Server.Port = "" },
	} {
		cfg := validConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate())
	}
}

func TestValidateOTPLengthBounds(t *testing.T) {
	for _, length := range []int{3, 9, 0} {
		cfg := validConfig()
		cfg.OTP.Length = length
		assert.Error(t, cfg.Validate(), "length %d should be rejected", length)
	}

	for _, length := range []int{4, 6, 8} {
		cfg := validConfig()
		cfg.OTP.Length = length
		assert.NoError(t, cfg.Validate())
	}
}

func TestValidateCloudinaryCredentialsInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	cfg.Upload.Provider = "cloudinary"
	require.Error(t, cfg.Validate())

	cfg.External.Cloudinary.CloudName = "demo"
	cfg.External.Cloudinary.APIKey = "key"
	cfg.External.Cloudinary.APISecret = "secret"
	assert.NoError(t, cfg.Validate())

	// Development tolerates missing credentials for local testing
	dev := validConfig()
	dev.Upload.Provider = "cloudinary"
	assert.NoError(t, dev.Validate())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestConnectionStrings(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Port = "5432"
	cfg.Database.Password = "pw"
	cfg.Database.SSLMode = "disable"
	cfg.Redis.Port = "6379"

	dsn := cfg.GetDatabaseDSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=vmc_db")
	assert.Contains(t, dsn, "sslmode=disable")

	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}
