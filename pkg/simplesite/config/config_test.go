package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-site/pkg/simplesite/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, "memory", cfg.ImageStorage)
	assert.Equal(t, "noop", cfg.MailProvider)
	assert.True(t, cfg.EnableEventLogging)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ADMIN_API_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "secret", cfg.AdminAPIKey)
}

func TestValidate(t *testing.T) {
	base := config.ServerConfig{
		Port:         "8080",
		DatabaseType: "memory",
		ImageStorage: "memory",
		MailProvider: "noop",
	}

	tests := []struct {
		name        string
		mutate      func(*config.ServerConfig)
		expectError bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *config.ServerConfig) {},
		},
		{
			name:        "missing port",
			mutate:      func(c *config.ServerConfig) { c.Port = "" },
			expectError: true,
		},
		{
			name:        "unknown database type",
			mutate:      func(c *config.ServerConfig) { c.DatabaseType = "sqlite" },
			expectError: true,
		},
		{
			name:        "postgres without url",
			mutate:      func(c *config.ServerConfig) { c.DatabaseType = "postgres" },
			expectError: true,
		},
		{
			name: "postgres with url",
			mutate: func(c *config.ServerConfig) {
				c.DatabaseType = "postgres"
				c.DatabaseURL = "postgres://localhost/site"
			},
		},
		{
			name:        "s3 without bucket",
			mutate:      func(c *config.ServerConfig) { c.ImageStorage = "s3" },
			expectError: true,
		},
		{
			name: "s3 with bucket",
			mutate: func(c *config.ServerConfig) {
				c.ImageStorage = "s3"
				c.S3Bucket = "site-images"
			},
		},
		{
			name:        "resend without api key",
			mutate:      func(c *config.ServerConfig) { c.MailProvider = "resend" },
			expectError: true,
		},
		{
			name: "resend fully configured",
			mutate: func(c *config.ServerConfig) {
				c.MailProvider = "resend"
				c.ResendAPIKey = "re_123"
				c.ResendSender = "news@example.com"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg := config.ServerConfig{
		Port:         "8080",
		DatabaseType: "memory",
		ImageStorage: "memory",
		MailProvider: "noop",
	}

	svc, err := cfg.BuildService(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
