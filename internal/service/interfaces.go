// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateProfilePhoto(ctx context.Context, userID int64, photo models.AttachmentRef) (models.User, error)
}

// JobService is the owner-scoped job pipeline. userID always comes from the
// authenticated identity, never from client input.
type JobService interface {
	CreateJob(ctx context.Context, userID int64, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error)
	GetJob(ctx context.Context, userID int64, jobID string) (models.Job, error)
	ListJobs(ctx context.Context, userID int64, query models.ListJobsQuery) (models.JobPage, error)
	UpdateJob(ctx context.Context, userID int64, jobID string, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error)
	DeleteJob(ctx context.Context, userID int64, jobID string) error
}

// AttachmentService checks and stores uploaded files. Store reads at most
// the field's size limit plus one byte from body.
type AttachmentService interface {
	Store(ctx context.Context, field models.AttachmentField, filename string, body io.Reader) (models.AttachmentRef, error)
	// Discard removes objects stored for a mutation that was rejected.
	Discard(ctx context.Context, refs ...models.AttachmentRef)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// PasswordResetNotifier delivers a password reset token to the account owner.
type PasswordResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, user models.User, token models.Token) error
}
