package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/migrations"
	"github.com/MKhiriev/go-job-tracker/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestJobRepo(t *testing.T) (*jobRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &jobRepository{
		db:     newDB(db, migrations.Postgres, logger.Nop()),
		logger: logger.Nop(),
		now:    func() time.Time { return fixedNow },
	}, mock
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows(jobColumns)
}

func addJobRow(rows *sqlmock.Rows, id string, userID int64) *sqlmock.Rows {
	return rows.AddRow(id, userID, "Go Developer", "Acme", fixedNow, "", "Applied", "", "", "", fixedNow, fixedNow)
}

func TestJobRepository_GetJob(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id = \$1 AND user_id = \$2`).
		WithArgs("job-1", int64(5)).
		WillReturnRows(addJobRow(jobRows(), "job-1", 5))

	job, err := repo.GetJob(context.Background(), 5, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, int64(5), job.UserID)
	assert.Equal(t, models.StatusApplied, job.Status)
	assert.True(t, job.ApplicationDate.Equal(fixedNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_GetJob_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "no row",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM jobs").WillReturnRows(jobRows())
			},
			wantErr: ErrJobNotFound,
		},
		{
			name: "malformed id",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM jobs").WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))
			},
			wantErr: ErrJobNotFound,
		},
		{
			name: "statement canceled",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM jobs").WillReturnError(pgError(pgerrcode.QueryCanceled))
			},
			wantErr: ErrQueryTimeout,
		},
		{
			name: "deadline",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM jobs").WillReturnError(context.DeadlineExceeded)
			},
			wantErr: ErrQueryTimeout,
		},
		{
			name: "driver failure",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM jobs").WillReturnError(errors.New("broken pipe"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestJobRepo(t)
			tt.prepare(mock)

			_, err := repo.GetJob(context.Background(), 5, "job-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJobRepository_CreateJob(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	job := models.Job{
		ID:              "job-1",
		UserID:          5,
		Position:        "Go Developer",
		Company:         "Acme",
		ApplicationDate: fixedNow,
		Status:          models.StatusApplied,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}

	mock.ExpectQuery(`INSERT INTO jobs \(id,user_id,.+\) VALUES \(\$1,\$2,.+\) RETURNING id, user_id`).
		WithArgs("job-1", int64(5), "Go Developer", "Acme", fixedNow, "", "Applied", "", "", "", fixedNow, fixedNow).
		WillReturnRows(addJobRow(jobRows(), "job-1", 5))

	created, err := repo.CreateJob(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "job-1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListJobs_EmptyCountSkipsSelect(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE \(user_id = \$1\)`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	query := models.ListJobsQuery{}.Normalize()
	jobs, total, err := repo.ListJobs(context.Background(), 5, query)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListJobs_Page(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	query := models.ListJobsQuery{Status: "Applied", Search: "go", Page: 2, Limit: 1}.Normalize()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE`).
		WithArgs(int64(5), "Applied", "%go%", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE .+ ORDER BY application_date DESC, created_at DESC, id DESC LIMIT 1 OFFSET 1`).
		WithArgs(int64(5), "Applied", "%go%", "%go%").
		WillReturnRows(addJobRow(jobRows(), "job-2", 5))

	jobs, total, err := repo.ListJobs(context.Background(), 5, query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-2", jobs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ListJobs_CountFails(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))

	_, _, err := repo.ListJobs(context.Background(), 5, models.ListJobsQuery{}.Normalize())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestJobRepository_UpdateJob_SetsOnlySuppliedFields(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	status := models.StatusInterview
	update := models.JobUpdate{ID: "job-1", UserID: 5, Status: &status}

	mock.ExpectQuery(`UPDATE jobs SET status = \$1, updated_at = \$2 WHERE id = \$3 AND user_id = \$4 RETURNING`).
		WithArgs("Interview", fixedNow, "job-1", int64(5)).
		WillReturnRows(addJobRow(jobRows(), "job-1", 5))

	_, err := repo.UpdateJob(context.Background(), update)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_DeleteJob_NotFound(t *testing.T) {
	repo, mock := newTestJobRepo(t)

	mock.ExpectQuery(`DELETE FROM jobs WHERE id = \$1 AND user_id = \$2 RETURNING`).
		WithArgs("job-1", int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteJob(context.Background(), 5, "job-1")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
