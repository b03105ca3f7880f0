// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

// jobService is the concrete implementation of JobService. It expects input
// that already passed validation (see jobValidationService) and turns it
// into repository calls scoped to the owner.
type jobService struct {
	jobRepository store.JobRepository
	attachments   AttachmentService
	uuid          *utils.UUIDGenerator
	now           func() time.Time
	logger        *logger.Logger
}

func NewJobService(jobRepository store.JobRepository, attachments AttachmentService, logger *logger.Logger) JobService {
	return &jobService{
		jobRepository: jobRepository,
		attachments:   attachments,
		uuid:          utils.NewUUIDGenerator(),
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}
}

// CreateJob stores a new job owned by userID. Absent status and application
// date default to Applied and the current time.
func (s *jobService) CreateJob(ctx context.Context, userID int64, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error) {
	log := logger.FromContext(ctx)

	now := s.now()
	input = withCreateDefaults(input.Normalize(), now)

	applicationDate, ok := models.ParseApplicationDate(*input.ApplicationDate)
	if !ok {
		return models.Job{}, fmt.Errorf("%w: application date %q", ErrInvalidDataProvided, *input.ApplicationDate)
	}

	job := models.Job{
		ID:              s.uuid.Generate(),
		UserID:          userID,
		Position:        deref(input.Position),
		Company:         deref(input.Company),
		ApplicationDate: applicationDate,
		JobLink:         deref(input.JobLink),
		Status:          models.JobStatus(*input.Status),
		Notes:           deref(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, ref := range attachments {
		switch ref.Field {
		case models.AttachmentResume:
			job.Resume = ref.Key
		case models.AttachmentProfilePhoto:
			job.ProfilePhoto = ref.Key
		default:
			return models.Job{}, fmt.Errorf("%w: %q", ErrUnknownAttachmentField, ref.Field)
		}
	}

	created, err := s.jobRepository.CreateJob(ctx, job)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("job creation ended with error")
		return models.Job{}, fmt.Errorf("job creation ended with error: %w", err)
	}

	return created, nil
}

func (s *jobService) GetJob(ctx context.Context, userID int64, jobID string) (models.Job, error) {
	if !utils.IsUUID(jobID) {
		return models.Job{}, store.ErrJobNotFound
	}

	job, err := s.jobRepository.GetJob(ctx, userID, jobID)
	if err != nil {
		return models.Job{}, fmt.Errorf("error getting job: %w", err)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, userID int64, query models.ListJobsQuery) (models.JobPage, error) {
	query = query.Normalize()

	jobs, total, err := s.jobRepository.ListJobs(ctx, userID, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error listing jobs")
		return models.JobPage{}, fmt.Errorf("error listing jobs: %w", err)
	}

	return models.NewJobPage(jobs, total, query), nil
}

// UpdateJob writes the supplied fields of input and links new attachments.
// Objects of replaced attachments are removed after the row is updated.
func (s *jobService) UpdateJob(ctx context.Context, userID int64, jobID string, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error) {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(jobID) {
		return models.Job{}, store.ErrJobNotFound
	}

	update, err := newJobUpdate(userID, jobID, input.Normalize(), attachments)
	if err != nil {
		return models.Job{}, err
	}

	if update.IsEmpty() {
		return s.GetJob(ctx, userID, jobID)
	}

	var previous models.Job
	if len(attachments) > 0 {
		if previous, err = s.GetJob(ctx, userID, jobID); err != nil {
			return models.Job{}, err
		}
	}

	updated, err := s.jobRepository.UpdateJob(ctx, update)
	if err != nil {
		log.Err(err).Str("job_id", jobID).Msg("job update ended with error")
		return models.Job{}, fmt.Errorf("job update ended with error: %w", err)
	}

	var replaced []models.AttachmentRef
	for _, ref := range attachments {
		old := previous.Resume
		if ref.Field == models.AttachmentProfilePhoto {
			old = previous.ProfilePhoto
		}
		if old != "" && old != ref.Key {
			replaced = append(replaced, models.AttachmentRef{Field: ref.Field, Key: old})
		}
	}
	if len(replaced) > 0 {
		s.attachments.Discard(ctx, replaced...)
	}

	return updated, nil
}

// DeleteJob removes the job and then, best-effort, its attachment objects.
func (s *jobService) DeleteJob(ctx context.Context, userID int64, jobID string) error {
	if !utils.IsUUID(jobID) {
		return store.ErrJobNotFound
	}

	deleted, err := s.jobRepository.DeleteJob(ctx, userID, jobID)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}

	s.attachments.Discard(ctx,
		models.AttachmentRef{Field: models.AttachmentResume, Key: deleted.Resume},
		models.AttachmentRef{Field: models.AttachmentProfilePhoto, Key: deleted.ProfilePhoto},
	)

	return nil
}

func newJobUpdate(userID int64, jobID string, input models.JobInput, attachments []models.AttachmentRef) (models.JobUpdate, error) {
	update := models.JobUpdate{
		ID:       jobID,
		UserID:   userID,
		Position: input.Position,
		Company:  input.Company,
		JobLink:  input.JobLink,
		Notes:    input.Notes,
	}

	if input.ApplicationDate != nil {
		date, ok := models.ParseApplicationDate(*input.ApplicationDate)
		if !ok {
			return models.JobUpdate{}, fmt.Errorf("%w: application date %q", ErrInvalidDataProvided, *input.ApplicationDate)
		}
		update.ApplicationDate = &date
	}
	if input.Status != nil {
		status := models.JobStatus(*input.Status)
		update.Status = &status
	}

	for _, ref := range attachments {
		key := ref.Key
		switch ref.Field {
		case models.AttachmentResume:
			update.Resume = &key
		case models.AttachmentProfilePhoto:
			update.ProfilePhoto = &key
		default:
			return models.JobUpdate{}, fmt.Errorf("%w: %q", ErrUnknownAttachmentField, ref.Field)
		}
	}

	return update, nil
}

// withCreateDefaults fills an absent or blank status and application date.
func withCreateDefaults(input models.JobInput, now time.Time) models.JobInput {
	if input.Status == nil || strings.TrimSpace(*input.Status) == "" {
		status := string(models.StatusApplied)
		input.Status = &status
	}
	if input.ApplicationDate == nil || strings.TrimSpace(*input.ApplicationDate) == "" {
		date := now.Format(time.RFC3339Nano)
		input.ApplicationDate = &date
	}
	return input
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
