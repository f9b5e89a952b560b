package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Session: SessionConfig{JWTSecret: "secret", JWTAudience: "mentor-mentee-users", TTLMinutes: 60},
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "release mode",
			config:   &Config{Server: ServerConfig{GinMode: "release", AppEnv: "production"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "staging"}}).IsProduction())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing port",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "PORT is required",
		},
		{
			name:     "missing jwt secret",
			mutate:   func(c *Config) { c.Session.JWTSecret = "" },
			errorMsg: "JWT_SECRET is required",
		},
		{
			name:     "non-positive session ttl",
			mutate:   func(c *Config) { c.Session.TTLMinutes = 0 },
			errorMsg: "SESSION_TTL_MINUTES must be positive",
		},
		{
			name: "audience check without audience",
			mutate: func(c *Config) {
				c.Session.VerifyAudience = true
				c.Session.JWTAudience = ""
			},
			errorMsg: "JWT_AUDIENCE is required",
		},
		{
			name:     "bucket without credentials",
			mutate:   func(c *Config) { c.ImageStorage.BucketName = "avatars" },
			errorMsg: "IMAGE_STORAGE_ACCESS_KEY_ID",
		},
		{
			name: "bucket with credentials",
			mutate: func(c *Config) {
				c.ImageStorage = ImageStorageConfig{BucketName: "avatars", AccessKeyID: "id", SecretAccessKey: "key"}
			},
		},
		{
			name:     "profiling without endpoint",
			mutate:   func(c *Config) { c.Profiling.Enabled = true },
			errorMsg: "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mentor-mentee-app", cfg.Session.JWTIssuer)
	assert.Equal(t, "mentor-mentee-users", cfg.Session.JWTAudience)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
	assert.False(t, cfg.Session.VerifyAudience)
	assert.True(t, cfg.Matching.StrictTransitions)
	assert.Equal(t, DefaultMentorImageURL, cfg.Images.DefaultMentorURL)
	assert.Equal(t, DefaultMenteeImageURL, cfg.Images.DefaultMenteeURL)
	assert.False(t, cfg.UseObjectStorage())
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_VERIFY_AUDIENCE", "true")
	t.Setenv("MATCH_STRICT_TRANSITIONS", "false")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("IMAGE_STORAGE_BUCKET_NAME", "avatars")
	t.Setenv("IMAGE_STORAGE_ACCESS_KEY_ID", "id")
	t.Setenv("IMAGE_STORAGE_SECRET_ACCESS_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Session.VerifyAudience)
	assert.False(t, cfg.Matching.StrictTransitions)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.True(t, cfg.UseObjectStorage())
}

func TestLoad_ValidationFailure(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
