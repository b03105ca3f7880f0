package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
)

// userRepository is the SQL implementation of [UserRepository] on the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] so
// database failures are logged with the request's trace id.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts the user and returns the stored row.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - canceled statement → [ErrQueryTimeout].
//   - anything else → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, r.db.rebind(createUser),
		user.Name, user.Email, user.PasswordHash, user.ProfilePhoto, user.CreatedAt.UTC())

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if r.db.classify(err) == UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.queryError(ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByEmail looks a user up by the normalized email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID looks a user up by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

// UpdateProfilePhoto stores key as the user's profile photo.
func (r *userRepository) UpdateProfilePhoto(ctx context.Context, userID int64, key string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.UpdateProfilePhoto", updateUserProfilePhoto, key, userID)
}

// findOne runs a single-row users query. No row → [ErrNoUserWasFound].
func (r *userRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, r.db.rebind(query), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, r.db.queryError(ErrExecutingQuery, err)
	}

	return user, nil
}
