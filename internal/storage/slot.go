package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	cfg "github.com/templui/goalboard/internal/config"
)

var (
	// ErrSlotEmpty is returned by Read when nothing has been written yet.
	ErrSlotEmpty = errors.New("storage slot is empty")
)

// Slot is a single named, durable entry holding one serialized document.
// Write replaces the whole document.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// New creates the slot selected by STORAGE_DRIVER.
// db is only used by the sql driver and may be nil otherwise.
func New(ctx context.Context, c *cfg.Config, db *sqlx.DB) (Slot, error) {
	slog.Info("initializing storage slot", "driver", c.StorageDriver, "key", c.StorageKey)

	switch c.StorageDriver {
	case "file":
		return NewFileSlot(c.StoragePath), nil
	case "sql":
		if db == nil {
			return nil, errors.New("sql storage requires a database connection")
		}
		return NewSQLSlot(db, c.StorageKey), nil
	case "s3":
		return NewS3Slot(ctx, S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			Key:       c.StorageKey + ".json",
		})
	case "redis":
		return NewRedisSlot(ctx, RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Key:      c.StorageKey,
		})
	case "memory":
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", c.StorageDriver)
	}
}
