package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

// Storages aggregates every persistence component handed to the service layer.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	JobRepository     JobRepository
	AttachmentStorage AttachmentStorage
}

// NewStorages connects to the database, applies migrations and selects the
// attachment backend: S3 when a bucket is configured, the upload dir otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	var attachments AttachmentStorage
	if cfg.Files.S3.Enabled() {
		attachments, err = NewS3AttachmentStorage(ctx, cfg.Files.S3, log)
	} else {
		attachments, err = NewLocalAttachmentStorage(cfg.Files.UploadDir, log)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating attachment storage: %w", err)
	}

	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		JobRepository:     NewJobRepository(db, log),
		AttachmentStorage: attachments,
	}, nil
}

// Close releases the database pool.
func (s *Storages) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
