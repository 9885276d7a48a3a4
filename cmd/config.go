package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	httpin "parcel/internal/adapters/in/http"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/payment"
	"parcel/internal/core/domain/services"
	"parcel/internal/jobs"

	"github.com/spf13/viper"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel       string
	RequestTimeout time.Duration
	JWTSecret      string
	TokenTTL       time.Duration

	RequireVerifiedDriver bool
	OrderNumberPrefix     string
	PaymentCurrency       string

	KafkaHost           string
	OrderEventsTopic    string
	OutboxRelaySchedule string
	OutboxBatchSize     int

	StorageDriver   string
	StorageLocalDir string
	MaxUploadSize   string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "parcel")
	v.SetDefault("DB_PASSWORD", "parcel")
	v.SetDefault("DB_NAME", "parcel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REQUIRE_VERIFIED_DRIVER", false)
	v.SetDefault("ORDER_NUMBER_PREFIX", services.DefaultOrderNumberPrefix)
	v.SetDefault("PAYMENT_CURRENCY", payment.DefaultCurrency)
	v.SetDefault("KAFKA_HOST", "")
	v.SetDefault("ORDER_EVENTS_TOPIC", "parcel.order-events")
	v.SetDefault("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule)
	v.SetDefault("OUTBOX_BATCH_SIZE", commands.DefaultRelayBatchSize)
	v.SetDefault("STORAGE_DRIVER", StorageDriverLocal)
	v.SetDefault("STORAGE_LOCAL_DIR", "./data/documents")
	v.SetDefault("MAX_UPLOAD_SIZE", httpin.DefaultMaxUploadSize)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "eu-central-1")
	v.SetDefault("S3_ENDPOINT", "")
}

// LoadConfig reads the configuration from v, which should already have defaults and
// environment binding set up.
//
// Returns an error when a duration is malformed, the storage driver is unknown, or a
// required key for the selected driver is empty.
func LoadConfig(v *viper.Viper) (Config, error) {
	requestTimeout, timeoutErr := time.ParseDuration(v.GetString("REQUEST_TIMEOUT"))
	tokenTTL, ttlErr := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err := errors.Join(timeoutErr, ttlErr); err != nil {
		return Config{}, fmt.Errorf("parse durations: %w", err)
	}

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		RequestTimeout:        requestTimeout,
		JWTSecret:             v.GetString("JWT_SECRET"),
		TokenTTL:              tokenTTL,
		RequireVerifiedDriver: v.GetBool("REQUIRE_VERIFIED_DRIVER"),
		OrderNumberPrefix:     v.GetString("ORDER_NUMBER_PREFIX"),
		PaymentCurrency:       strings.ToUpper(v.GetString("PAYMENT_CURRENCY")),
		KafkaHost:             v.GetString("KAFKA_HOST"),
		OrderEventsTopic:      v.GetString("ORDER_EVENTS_TOPIC"),
		OutboxRelaySchedule:   v.GetString("OUTBOX_RELAY_SCHEDULE"),
		OutboxBatchSize:       v.GetInt("OUTBOX_BATCH_SIZE"),
		StorageDriver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
		StorageLocalDir:       v.GetString("STORAGE_LOCAL_DIR"),
		MaxUploadSize:         v.GetString("MAX_UPLOAD_SIZE"),
		S3Bucket:              v.GetString("S3_BUCKET"),
		S3Region:              v.GetString("S3_REGION"),
		S3Endpoint:            v.GetString("S3_ENDPOINT"),
	}

	switch cfg.StorageDriver {
	case StorageDriverLocal:
		if cfg.StorageLocalDir == "" {
			return Config{}, errors.New("STORAGE_LOCAL_DIR is required for local storage")
		}
	case StorageDriverS3:
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET is required for s3 storage")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
