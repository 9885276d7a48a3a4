package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"parcel/internal/adapters/out/blobstore"
	"parcel/internal/adapters/out/kafka"
	"parcel/internal/core/ports"

	"github.com/spf13/afero"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to PostgreSQL. Driver errors are translated into gorm's
// portable errors so repositories can detect unique violations.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stderr, "", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// NewDocumentStorage builds the blob store selected by STORAGE_DRIVER.
func NewDocumentStorage(ctx context.Context, cfg Config) (ports.DocumentStorage, error) {
	switch cfg.StorageDriver {
	case StorageDriverS3:
		client, err := blobstore.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		return blobstore.NewS3Storage(client, cfg.S3Bucket), nil
	case StorageDriverLocal:
		return blobstore.NewLocalStorage(afero.NewOsFs(), cfg.StorageLocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// NewEventPublisher connects to Kafka. It returns nil without error when KAFKA_HOST is
// empty, in which case outbox messages stay unpublished.
func NewEventPublisher(cfg Config) (*kafka.EventPublisher, error) {
	if cfg.KafkaHost == "" {
		return nil, nil //nolint:nilnil // relay disabled
	}
	producer, err := kafka.NewSyncProducer(cfg.KafkaHost)
	if err != nil {
		return nil, fmt.Errorf("connect to kafka: %w", err)
	}
	return kafka.NewEventPublisher(producer, cfg.OrderEventsTopic), nil
}
