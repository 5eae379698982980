package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-site/pkg/simplesite"
	mailresend "github.com/tendant/simple-site/pkg/simplesite/mail/resend"
	"github.com/tendant/simple-site/pkg/simplesite/repo/memory"
	repopg "github.com/tendant/simple-site/pkg/simplesite/repo/postgres"
	memorystorage "github.com/tendant/simple-site/pkg/simplesite/storage/memory"
	s3storage "github.com/tendant/simple-site/pkg/simplesite/storage/s3"
)

// ServerConfig represents server configuration for the simple-site service.
// All fields are populated from environment variables.
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	// Database configuration
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"` // "memory", "postgres"
	DatabaseURL  string `env:"DATABASE_URL"`

	// Admin API
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Image storage configuration
	ImageStorage      string `env:"IMAGE_STORAGE" env-default:"memory"` // "memory", "s3"
	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`

	// Mail configuration
	MailProvider     string `env:"MAIL_PROVIDER" env-default:"noop"` // "noop", "resend"
	ResendAPIKey     string `env:"RESEND_API_KEY"`
	ResendSender     string `env:"RESEND_SENDER_EMAIL"`
	ResendSenderName string `env:"RESEND_SENDER_NAME"`
	ContactRecipient string `env:"CONTACT_RECIPIENT"`

	// Server options
	EnableEventLogging bool `env:"ENABLE_EVENT_LOGGING" env-default:"true"`
}

// Load reads the server configuration from the environment and validates it
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.ImageStorage != "memory" && c.ImageStorage != "s3" {
		return errors.New("image_storage must be 'memory' or 's3'")
	}
	if c.ImageStorage == "s3" && c.S3Bucket == "" {
		return errors.New("s3_bucket is required when using s3 image storage")
	}

	if c.MailProvider != "noop" && c.MailProvider != "resend" {
		return errors.New("mail_provider must be 'noop' or 'resend'")
	}
	if c.MailProvider == "resend" {
		if c.ResendAPIKey == "" {
			return errors.New("resend_api_key is required when using resend")
		}
		if c.ResendSender == "" {
			return errors.New("resend_sender_email is required when using resend")
		}
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context) (simplesite.Service, error) {
	var options []simplesite.Option

	repo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, simplesite.WithRepository(repo))

	store, err := c.buildImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build image store: %w", err)
	}
	options = append(options, simplesite.WithImageStore(store))

	mailer, err := c.buildMailer()
	if err != nil {
		return nil, fmt.Errorf("failed to build mailer: %w", err)
	}
	options = append(options, simplesite.WithMailer(mailer))

	if c.ContactRecipient != "" {
		options = append(options, simplesite.WithContactRecipient(c.ContactRecipient))
	}

	if c.EnableEventLogging {
		options = append(options, simplesite.WithEventSink(simplesite.NewLoggingEventSink(nil)))
	}

	return simplesite.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context) (simplesite.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildImageStore creates a BlobStore based on the configuration
func (c *ServerConfig) buildImageStore() (simplesite.BlobStore, error) {
	switch c.ImageStorage {
	case "memory":
		return memorystorage.New(), nil
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKeyID,
			SecretAccessKey:        c.S3SecretAccessKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			PublicBaseURL:          c.S3PublicBaseURL,
			CreateBucketIfNotExist: c.S3CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported image storage type: %s", c.ImageStorage)
	}
}

// buildMailer creates a Mailer based on the configuration
func (c *ServerConfig) buildMailer() (simplesite.Mailer, error) {
	switch c.MailProvider {
	case "noop":
		return simplesite.NewNoopMailer(), nil
	case "resend":
		return mailresend.New(mailresend.Config{
			APIKey:      c.ResendAPIKey,
			SenderEmail: c.ResendSender,
			SenderName:  c.ResendSenderName,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", c.MailProvider)
	}
}
