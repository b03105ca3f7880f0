// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with the assigned id.
	// Returns ErrEmailAlreadyExists on an email collision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrNoUserWasFound when no account has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrNoUserWasFound when the account does not exist.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdateProfilePhoto sets the profile photo key and returns the updated user.
	UpdateProfilePhoto(ctx context.Context, userID int64, key string) (models.User, error)
}

// JobRepository persists jobs. Every method that addresses a single job
// filters by both id and owner and returns ErrJobNotFound otherwise.
type JobRepository interface {
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
	GetJob(ctx context.Context, userID int64, jobID string) (models.Job, error)
	// ListJobs returns the requested page and the number of jobs matching
	// the filters. query must be normalized.
	ListJobs(ctx context.Context, userID int64, query models.ListJobsQuery) ([]models.Job, int64, error)
	// UpdateJob writes the non-nil fields of update and returns the new row.
	UpdateJob(ctx context.Context, update models.JobUpdate) (models.Job, error)
	// DeleteJob removes the job and returns the row as it was.
	DeleteJob(ctx context.Context, userID int64, jobID string) (models.Job, error)
}

// AttachmentStorage keeps uploaded file bodies under opaque keys.
type AttachmentStorage interface {
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}
