package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is loaded once at startup and passed explicitly into each adapter;
// nothing re-reads the environment per request.
type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string

	S3    S3Config
	Queue QueueConfig

	Timeouts TimeoutConfig
}

// S3Config holds the object-store endpoint and credentials.
type S3Config struct {
	Address   string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

// QueueConfig holds the message-broker settings.
// An empty URL selects the in-process publisher (local development).
type QueueConfig struct {
	URL     string
	Stream  string
	Subject string
}

// TimeoutConfig bounds every external call the workflow makes.
type TimeoutConfig struct {
	Upload   time.Duration
	DB       time.Duration
	Publish  time.Duration
	Shutdown time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {

	// Load .env file into the process environment. If the file just
	// doesn't exist, that's fine in prod; rely on OS-set env vars.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	bindings := map[string]string{
		"app.env":          "APP_ENV",
		"http.addr":        "HTTP_ADDR",
		"database.url":     "DATABASE_URL",
		"s3.address":       "S3_ADDRESS",
		"s3.access_key":    "S3_ACCESS_KEY",
		"s3.secret_key":    "S3_SECRET_KEY",
		"s3.region":        "S3_REGION",
		"s3.bucket":        "S3_BUCKET",
		"queue.url":        "NATS_URL",
		"queue.stream":     "QUEUE_STREAM",
		"queue.subject":    "QUEUE_SUBJECT",
		"timeout.upload":   "UPLOAD_TIMEOUT",
		"timeout.db":       "DB_TIMEOUT",
		"timeout.publish":  "PUBLISH_TIMEOUT",
		"timeout.shutdown": "SHUTDOWN_TIMEOUT",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("s3.region", "default")
	viper.SetDefault("s3.bucket", "image-1bucket")
	viper.SetDefault("queue.stream", "USERNAMES")
	viper.SetDefault("queue.subject", "username_queue")
	viper.SetDefault("timeout.upload", "15s")
	viper.SetDefault("timeout.db", "5s")
	viper.SetDefault("timeout.publish", "5s")
	viper.SetDefault("timeout.shutdown", "10s")

	cfg := Config{
		AppEnv:      viper.GetString("app.env"),
		HTTPAddr:    viper.GetString("http.addr"),
		DatabaseURL: viper.GetString("database.url"),
		S3: S3Config{
			Address:   viper.GetString("s3.address"),
			AccessKey: viper.GetString("s3.access_key"),
			SecretKey: viper.GetString("s3.secret_key"),
			Region:    viper.GetString("s3.region"),
			Bucket:    viper.GetString("s3.bucket"),
		},
		Queue: QueueConfig{
			URL:     viper.GetString("queue.url"),
			Stream:  viper.GetString("queue.stream"),
			Subject: viper.GetString("queue.subject"),
		},
		Timeouts: TimeoutConfig{
			Upload:   viper.GetDuration("timeout.upload"),
			DB:       viper.GetDuration("timeout.db"),
			Publish:  viper.GetDuration("timeout.publish"),
			Shutdown: viper.GetDuration("timeout.shutdown"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if cfg.S3.Address == "" {
		return nil, errors.New("S3_ADDRESS is not set in environment or .env file")
	}
	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		return nil, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must both be set")
	}

	return &cfg, nil
}
