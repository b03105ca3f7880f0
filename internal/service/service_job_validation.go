package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/validators"
	"github.com/MKhiriev/go-job-tracker/models"
)

// JobServiceWrapper defines middleware composition for JobService.
// Implementations wrap an existing JobService to add behavior such as
// validation.
type JobServiceWrapper interface {
	Wrap(JobService) JobService
}

// jobValidationService checks job input before it reaches the wrapped
// JobService. Create validates every field after defaults are applied.
// Update first resolves the job for the owner, so a missing job wins over
// invalid fields, and then validates only the supplied ones.
type jobValidationService struct {
	inner     JobService
	validator validators.Validator
	now       func() time.Time
}

func NewJobValidationService() JobServiceWrapper {
	return &jobValidationService{
		validator: validators.NewJobValidator(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (v *jobValidationService) CreateJob(ctx context.Context, userID int64, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error) {
	input = withCreateDefaults(input.Normalize(), v.now())

	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Job{}, fmt.Errorf("error during job validation before saving: %w", err)
	}

	return v.inner.CreateJob(ctx, userID, input, attachments...)
}

func (v *jobValidationService) GetJob(ctx context.Context, userID int64, jobID string) (models.Job, error) {
	return v.inner.GetJob(ctx, userID, jobID)
}

func (v *jobValidationService) ListJobs(ctx context.Context, userID int64, query models.ListJobsQuery) (models.JobPage, error) {
	return v.inner.ListJobs(ctx, userID, query)
}

func (v *jobValidationService) UpdateJob(ctx context.Context, userID int64, jobID string, input models.JobInput, attachments ...models.AttachmentRef) (models.Job, error) {
	input = input.Normalize()

	if fields := input.Supplied(); len(fields) > 0 {
		if _, err := v.inner.GetJob(ctx, userID, jobID); err != nil {
			return models.Job{}, err
		}
		if err := v.validator.Validate(ctx, input, fields...); err != nil {
			return models.Job{}, fmt.Errorf("error during job validation before updating: %w", err)
		}
	}

	return v.inner.UpdateJob(ctx, userID, jobID, input, attachments...)
}

func (v *jobValidationService) DeleteJob(ctx context.Context, userID int64, jobID string) error {
	return v.inner.DeleteJob(ctx, userID, jobID)
}

func (v *jobValidationService) Wrap(inner JobService) JobService {
	v.inner = inner
	return v
}
