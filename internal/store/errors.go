package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user cannot be created because
	// the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrJobNotFound is returned when no job with the given id exists for the
	// given owner. Absent, foreign and malformed ids are indistinguishable.
	ErrJobNotFound = errors.New("job was not found")

	// ErrQueryTimeout is returned when the request deadline expires or the
	// database cancels the statement.
	ErrQueryTimeout = errors.New("database query timed out")

	// ErrAttachmentKeyInvalid is returned for storage keys that are empty or
	// would escape the storage root.
	ErrAttachmentKeyInvalid = errors.New("invalid attachment key")
)

// Low-level database operation errors, wrapped together with the driver error.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a statement.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDatabase is returned for a DSN with an unknown scheme.
	ErrUnsupportedDatabase = errors.New("unsupported database")
)
