package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultMentorImageURL = "https://placehold.co/500x500.jpg?text=MENTOR"
	DefaultMenteeImageURL = "https://placehold.co/500x500.jpg?text=MENTEE"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Session       SessionConfig
	Matching      MatchingConfig
	Images        ImagesConfig
	ImageStorage  ImageStorageConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

// SessionConfig controls session credential signing and validation
type SessionConfig struct {
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	TTLMinutes     int
	VerifyAudience bool
}

// MatchingConfig controls match request transition rules
type MatchingConfig struct {
	// StrictTransitions rejects accept/reject on requests that are no longer
	// pending, except repeating the same decision.
	StrictTransitions bool
}

// ImagesConfig holds the role placeholders served when no avatar is stored
type ImagesConfig struct {
	DefaultMentorURL string
	DefaultMenteeURL string
}

// ImageStorageConfig enables S3-compatible avatar storage when BucketName is set
type ImageStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type CacheConfig struct {
	DirectoryTTLSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("JWT_ISSUER", "mentor-mentee-app")
	v.SetDefault("JWT_AUDIENCE", "mentor-mentee-users")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("JWT_VERIFY_AUDIENCE", false)
	v.SetDefault("MATCH_STRICT_TRANSITIONS", true)
	v.SetDefault("DEFAULT_MENTOR_IMAGE_URL", DefaultMentorImageURL)
	v.SetDefault("DEFAULT_MENTEE_IMAGE_URL", DefaultMenteeImageURL)
	v.SetDefault("DIRECTORY_CACHE_TTL", 60)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "mentor-match-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentor-match")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentor-match-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Session: SessionConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			JWTIssuer:      v.GetString("JWT_ISSUER"),
			JWTAudience:    v.GetString("JWT_AUDIENCE"),
			TTLMinutes:     v.GetInt("SESSION_TTL_MINUTES"),
			VerifyAudience: v.GetBool("JWT_VERIFY_AUDIENCE"),
		},
		Matching: MatchingConfig{
			StrictTransitions: v.GetBool("MATCH_STRICT_TRANSITIONS"),
		},
		Images: ImagesConfig{
			DefaultMentorURL: v.GetString("DEFAULT_MENTOR_IMAGE_URL"),
			DefaultMenteeURL: v.GetString("DEFAULT_MENTEE_IMAGE_URL"),
		},
		ImageStorage: ImageStorageConfig{
			AccessKeyID:     v.GetString("IMAGE_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("IMAGE_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("IMAGE_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("IMAGE_STORAGE_ENDPOINT"),
			Region:          v.GetString("IMAGE_STORAGE_REGION"),
		},
		Cache: CacheConfig{
			DirectoryTTLSeconds: v.GetInt("DIRECTORY_CACHE_TTL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.Session.VerifyAudience && c.Session.JWTAudience == "" {
		return fmt.Errorf("JWT_AUDIENCE is required when JWT_VERIFY_AUDIENCE is enabled")
	}

	if c.ImageStorage.BucketName != "" &&
		(c.ImageStorage.AccessKeyID == "" || c.ImageStorage.SecretAccessKey == "") {
		return fmt.Errorf("IMAGE_STORAGE_ACCESS_KEY_ID and IMAGE_STORAGE_SECRET_ACCESS_KEY are required when IMAGE_STORAGE_BUCKET_NAME is set")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// UseObjectStorage reports whether avatars go to S3-compatible storage
func (c *Config) UseObjectStorage() bool {
	return c.ImageStorage.BucketName != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
