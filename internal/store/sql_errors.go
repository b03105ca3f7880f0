package store

// ErrorClassification is the dialect-independent category of a failed
// database operation.
type ErrorClassification int

const (
	// Unclassified covers every error without a dedicated category.
	Unclassified ErrorClassification = iota
	// UniqueViolation is a unique constraint or index collision.
	UniqueViolation
	// InvalidTextRepresentation is a value the database could not cast,
	// e.g. a malformed UUID.
	InvalidTextRepresentation
	// QueryCanceled is a statement canceled by timeout or by the client.
	QueryCanceled
	// ConnectionFailure is a lost or refused database connection.
	ConnectionFailure
)

func (c ErrorClassification) String() string {
	switch c {
	case UniqueViolation:
		return "unique_violation"
	case InvalidTextRepresentation:
		return "invalid_text_representation"
	case QueryCanceled:
		return "query_canceled"
	case ConnectionFailure:
		return "connection_failure"
	default:
		return "unclassified"
	}
}

// ErrorClassificator classifies driver errors of one SQL dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
