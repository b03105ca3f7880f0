package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	userColumns = `id, name, email, password_hash, profile_photo, created_at`

	createUser = `INSERT INTO users (name, email, password_hash, profile_photo, created_at)
    VALUES (?, ?, ?, ?, ?)
    RETURNING ` + userColumns

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = ?`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = ?`

	updateUserProfilePhoto = `UPDATE users
    SET profile_photo = ?
    WHERE id = ?
    RETURNING ` + userColumns
)

const jobsTable = "jobs"

var jobColumns = []string{
	"id",
	"user_id",
	"position",
	"company",
	"application_date",
	"job_link",
	"status",
	"notes",
	"resume",
	"profile_photo",
	"created_at",
	"updated_at",
}

// likeEscaper makes LIKE wildcards in a search term literal. The escape
// character is declared with ESCAPE '\' in the predicate.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// jobFilter returns the WHERE clause shared by the list and count queries.
func jobFilter(userID int64, query models.ListJobsQuery) sq.And {
	where := sq.And{sq.Eq{"user_id": userID}}

	if status, ok := query.StatusFilter(); ok {
		where = append(where, sq.Eq{"status": string(status)})
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		where = append(where, sq.Or{
			sq.Expr(`LOWER(position) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(company) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return where
}

// jobOrder orders by application date, then creation time, then id, all in
// the same direction.
func jobOrder(query models.ListJobsQuery) []string {
	dir := "DESC"
	if query.Ascending() {
		dir = "ASC"
	}
	return []string{
		"application_date " + dir,
		"created_at " + dir,
		"id " + dir,
	}
}

func (db *DB) buildListJobsQuery(userID int64, query models.ListJobsQuery) (string, []any, error) {
	return db.builder.
		Select(jobColumns...).
		From(jobsTable).
		Where(jobFilter(userID, query)).
		OrderBy(jobOrder(query)...).
		Limit(uint64(query.Limit)).
		Offset(query.Offset()).
		ToSql()
}

func (db *DB) buildCountJobsQuery(userID int64, query models.ListJobsQuery) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(jobsTable).
		Where(jobFilter(userID, query)).
		ToSql()
}

func (db *DB) buildInsertJobQuery(job models.Job) (string, []any, error) {
	return db.builder.
		Insert(jobsTable).
		Columns(jobColumns...).
		Values(
			job.ID,
			job.UserID,
			job.Position,
			job.Company,
			job.ApplicationDate,
			job.JobLink,
			string(job.Status),
			job.Notes,
			job.Resume,
			job.ProfilePhoto,
			job.CreatedAt,
			job.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
}

func (db *DB) buildGetJobQuery(userID int64, jobID string) (string, []any, error) {
	return db.builder.
		Select(jobColumns...).
		From(jobsTable).
		Where(sq.Eq{"id": jobID, "user_id": userID}).
		ToSql()
}

// buildUpdateJobQuery sets only the non-nil fields of update plus updated_at.
func (db *DB) buildUpdateJobQuery(update models.JobUpdate, now time.Time) (string, []any, error) {
	set := map[string]any{"updated_at": now}

	if update.Position != nil {
		set["position"] = *update.Position
	}
	if update.Company != nil {
		set["company"] = *update.Company
	}
	if update.ApplicationDate != nil {
		set["application_date"] = update.ApplicationDate.UTC()
	}
	if update.JobLink != nil {
		set["job_link"] = *update.JobLink
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.Resume != nil {
		set["resume"] = *update.Resume
	}
	if update.ProfilePhoto != nil {
		set["profile_photo"] = *update.ProfilePhoto
	}

	return db.builder.
		Update(jobsTable).
		SetMap(set).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
}

func (db *DB) buildDeleteJobQuery(userID int64, jobID string) (string, []any, error) {
	return db.builder.
		Delete(jobsTable).
		Where(sq.Eq{"id": jobID, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (models.Job, error) {
	var job models.Job
	var status string

	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Position,
		&job.Company,
		timestamp{&job.ApplicationDate},
		&job.JobLink,
		&status,
		&job.Notes,
		&job.Resume,
		&job.ProfilePhoto,
		timestamp{&job.CreatedAt},
		timestamp{&job.UpdatedAt},
	)
	job.Status = models.JobStatus(status)

	return job, err
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ProfilePhoto,
		timestamp{&user.CreatedAt},
	)

	return user, err
}

// timestampLayouts are the text forms SQLite may hand back for a DATETIME
// column, most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339Nano,
}

// timestamp scans a time column into a UTC time.Time whether the driver
// returns time.Time (pgx, SQLite with a declared DATETIME type) or text
// (SQLite expressions such as RETURNING).
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}
