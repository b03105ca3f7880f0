package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/mock"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/models"
)

const testJobID = "0192f1a4-7c3e-7b8a-9d2e-3f4a5b6c7d8e"

var testNow = time.Date(2026, 4, 10, 8, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newTestJobSvc(t *testing.T, ctrl *gomock.Controller) (*jobService, *mock.MockJobRepository, *mock.MockAttachmentService) {
	t.Helper()

	repo := mock.NewMockJobRepository(ctrl)
	attachments := mock.NewMockAttachmentService(ctrl)

	svc := NewJobService(repo, attachments, logger.Nop()).(*jobService)
	svc.now = func() time.Time { return testNow }
	return svc, repo, attachments
}

// ── CreateJob ────────────────────────────────────────────────────────────────

func TestJobService_CreateJob_BindsOwnerAndDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateJob(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, job models.Job) (models.Job, error) {
			assert.Equal(t, int64(7), job.UserID)
			assert.NotEmpty(t, job.ID)
			assert.Equal(t, "Go Developer", job.Position)
			assert.Equal(t, "Acme", job.Company)
			assert.Equal(t, models.StatusApplied, job.Status)
			assert.True(t, job.ApplicationDate.Equal(testNow))
			assert.Equal(t, "resumes/cv.pdf", job.Resume)
			assert.Equal(t, testNow, job.CreatedAt)
			return job, nil
		},
	)

	_, err := svc.CreateJob(ctx, 7,
		models.JobInput{Position: strPtr(" Go Developer "), Company: strPtr("Acme")},
		models.AttachmentRef{Field: models.AttachmentResume, Key: "resumes/cv.pdf"},
	)
	require.NoError(t, err)
}

func TestJobService_CreateJob_ParsesDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job models.Job) (models.Job, error) {
			assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), job.ApplicationDate)
			assert.Equal(t, models.StatusOffer, job.Status)
			return job, nil
		},
	)

	_, err := svc.CreateJob(context.Background(), 7, models.JobInput{
		Position:        strPtr("Go Developer"),
		Company:         strPtr("Acme"),
		ApplicationDate: strPtr("2024-02-01"),
		Status:          strPtr("Offer"),
	})
	require.NoError(t, err)
}

func TestJobService_CreateJob_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(models.Job{}, store.ErrQueryTimeout)

	_, err := svc.CreateJob(context.Background(), 7, models.JobInput{Position: strPtr("A"), Company: strPtr("B")})
	assert.ErrorIs(t, err, store.ErrQueryTimeout)
}

// ── GetJob / ListJobs ────────────────────────────────────────────────────────

func TestJobService_GetJob_MalformedIDIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestJobSvc(t, ctrl)

	_, err := svc.GetJob(context.Background(), 7, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

func TestJobService_GetJob_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	repo.EXPECT().GetJob(gomock.Any(), int64(8), testJobID).Return(models.Job{}, store.ErrJobNotFound)

	_, err := svc.GetJob(context.Background(), 8, testJobID)
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

func TestJobService_ListJobs_NormalizesAndPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	want := models.ListJobsQuery{Search: "go", Status: "all", Page: 1, Limit: 100}
	repo.EXPECT().ListJobs(gomock.Any(), int64(7), want).Return(nil, int64(250), nil)

	page, err := svc.ListJobs(context.Background(), 7, models.ListJobsQuery{Search: "go", Status: "all", Page: -3, Limit: 1000})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(250), page.Total)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Limit)
}

// ── UpdateJob ────────────────────────────────────────────────────────────────

func TestJobService_UpdateJob_OnlySuppliedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().UpdateJob(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.JobUpdate) (models.Job, error) {
			assert.Equal(t, testJobID, u.ID)
			assert.Equal(t, int64(7), u.UserID)
			require.NotNil(t, u.Status)
			assert.Equal(t, models.StatusInterview, *u.Status)
			assert.Nil(t, u.Position)
			assert.Nil(t, u.Company)
			assert.Nil(t, u.ApplicationDate)
			assert.Nil(t, u.Resume)
			return models.Job{ID: u.ID, Status: *u.Status}, nil
		},
	)

	job, err := svc.UpdateJob(ctx, 7, testJobID, models.JobInput{Status: strPtr("Interview")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, job.Status)
}

func TestJobService_UpdateJob_ReplacesAttachment(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, attachments := newTestJobSvc(t, ctrl)
	ctx := context.Background()

	newResume := models.AttachmentRef{Field: models.AttachmentResume, Key: "resumes/new.pdf"}

	gomock.InOrder(
		repo.EXPECT().GetJob(ctx, int64(7), testJobID).Return(models.Job{ID: testJobID, Resume: "resumes/old.pdf"}, nil),
		repo.EXPECT().UpdateJob(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.JobUpdate) (models.Job, error) {
				require.NotNil(t, u.Resume)
				assert.Equal(t, newResume.Key, *u.Resume)
				return models.Job{ID: testJobID, Resume: *u.Resume}, nil
			},
		),
		attachments.EXPECT().Discard(ctx, models.AttachmentRef{Field: models.AttachmentResume, Key: "resumes/old.pdf"}),
	)

	job, err := svc.UpdateJob(ctx, 7, testJobID, models.JobInput{}, newResume)
	require.NoError(t, err)
	assert.Equal(t, newResume.Key, job.Resume)
}

func TestJobService_UpdateJob_EmptyUpdateReadsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	repo.EXPECT().GetJob(gomock.Any(), int64(7), testJobID).Return(models.Job{ID: testJobID}, nil)

	job, err := svc.UpdateJob(context.Background(), 7, testJobID, models.JobInput{})
	require.NoError(t, err)
	assert.Equal(t, testJobID, job.ID)
}

func TestJobService_UpdateJob_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestJobSvc(t, ctrl)

	repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(models.Job{}, store.ErrJobNotFound)

	_, err := svc.UpdateJob(context.Background(), 8, testJobID, models.JobInput{Notes: strPtr("x")})
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

// ── DeleteJob ────────────────────────────────────────────────────────────────

func TestJobService_DeleteJob_RemovesAttachments(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, attachments := newTestJobSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().DeleteJob(ctx, int64(7), testJobID).
			Return(models.Job{ID: testJobID, Resume: "resumes/cv.pdf"}, nil),
		attachments.EXPECT().Discard(ctx,
			models.AttachmentRef{Field: models.AttachmentResume, Key: "resumes/cv.pdf"},
			models.AttachmentRef{Field: models.AttachmentProfilePhoto, Key: ""},
		),
	)

	require.NoError(t, svc.DeleteJob(ctx, 7, testJobID))
}

func TestJobService_DeleteJob_SecondDeleteIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, attachments := newTestJobSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().DeleteJob(ctx, int64(7), testJobID).Return(models.Job{ID: testJobID}, nil),
		attachments.EXPECT().Discard(ctx, gomock.Any(), gomock.Any()),
		repo.EXPECT().DeleteJob(ctx, int64(7), testJobID).Return(models.Job{}, store.ErrJobNotFound),
	)

	require.NoError(t, svc.DeleteJob(ctx, 7, testJobID))
	assert.ErrorIs(t, svc.DeleteJob(ctx, 7, testJobID), store.ErrJobNotFound)
}
