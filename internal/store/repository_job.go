// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
)

// jobRepository is the SQL implementation of [JobRepository] on the "jobs"
// table. Statements are built with squirrel for the DB's dialect.
type jobRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewJobRepository constructs a [JobRepository] backed by db.
func NewJobRepository(db *DB, logger *logger.Logger) JobRepository {
	logger.Debug().Msg("creating job repository")
	return &jobRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *jobRepository) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildInsertJobQuery(job)
	if err != nil {
		log.Err(err).Str("func", "*jobRepository.CreateJob").Msg("error building insert query")
		return models.Job{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*jobRepository.CreateJob").Msg("error inserting job")
		return models.Job{}, r.db.queryError(ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *jobRepository) GetJob(ctx context.Context, userID int64, jobID string) (models.Job, error) {
	query, args, err := r.db.buildGetJobQuery(userID, jobID)
	if err != nil {
		return models.Job{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.singleJob(ctx, "*jobRepository.GetJob", query, args)
}

// ListJobs counts the matching jobs, then selects the requested page. Both
// statements share one WHERE clause.
func (r *jobRepository) ListJobs(ctx context.Context, userID int64, q models.ListJobsQuery) ([]models.Job, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.db.buildCountJobsQuery(userID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*jobRepository.ListJobs").Msg("error counting jobs")
		return nil, 0, r.db.queryError(ErrExecutingQuery, err)
	}

	jobs := make([]models.Job, 0, q.Limit)
	if total == 0 || q.Offset() >= uint64(total) {
		return jobs, total, nil
	}

	listQuery, listArgs, err := r.db.buildListJobsQuery(userID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*jobRepository.ListJobs").Msg("error selecting jobs")
		return nil, 0, r.db.queryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Err(err).Str("func", "*jobRepository.ListJobs").Msg("error scanning job row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*jobRepository.ListJobs").Msg("error iterating job rows")
		return nil, 0, r.db.queryError(ErrScanningRows, err)
	}

	return jobs, total, nil
}

func (r *jobRepository) UpdateJob(ctx context.Context, update models.JobUpdate) (models.Job, error) {
	query, args, err := r.db.buildUpdateJobQuery(update, r.now())
	if err != nil {
		return models.Job{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.singleJob(ctx, "*jobRepository.UpdateJob", query, args)
}

func (r *jobRepository) DeleteJob(ctx context.Context, userID int64, jobID string) (models.Job, error) {
	query, args, err := r.db.buildDeleteJobQuery(userID, jobID)
	if err != nil {
		return models.Job{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.singleJob(ctx, "*jobRepository.DeleteJob", query, args)
}

// singleJob runs a statement addressing one (id, user_id) pair. No row and
// an id the database cannot cast both mean [ErrJobNotFound].
func (r *jobRepository) singleJob(ctx context.Context, funcName, query string, args []any) (models.Job, error) {
	log := logger.FromContext(ctx)

	job, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return job, nil
	case errors.Is(err, sql.ErrNoRows), r.db.classify(err) == InvalidTextRepresentation:
		return models.Job{}, ErrJobNotFound
	default:
		log.Err(err).Str("func", funcName).Msg("error executing job statement")
		return models.Job{}, r.db.queryError(ErrExecutingQuery, err)
	}
}
