package http

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/MKhiriev/go-job-tracker/internal/app"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/internal/validators"
	"github.com/MKhiriev/go-job-tracker/models"
)

// Values of the "errorKind" field of failed responses.
const (
	KindInvalidInput       = "InvalidInput"
	KindValidationError    = "ValidationError"
	KindInvalidCredentials = "InvalidCredentials"
	KindUnauthenticated    = "Unauthenticated"
	KindInvalidToken       = "InvalidToken"
	KindExpiredToken       = "ExpiredToken"
	KindNotFound           = "NotFound"
	KindDuplicateIdentity  = "DuplicateIdentity"
	KindTimeout            = "Timeout"
	KindTooManyRequests    = "TooManyRequests"
	KindServerFault        = "ServerFault"
)

// apiError is the client-facing form of an error.
type apiError struct {
	kind    string
	status  int
	message string
	fields  map[string]string
}

// errorKindTable is checked in order; the first target matched by
// [errors.Is] wins.
var errorKindTable = []struct {
	target error
	apiError
}{
	{service.ErrInvalidCredentials, apiError{kind: KindInvalidCredentials, status: http.StatusUnauthorized, message: app.MsgInvalidCredentials}},

	{ErrEmptyAuthorizationHeader, apiError{kind: KindUnauthenticated, status: http.StatusUnauthorized, message: app.MsgNotAuthenticated}},
	{ErrNoUserInContext, apiError{kind: KindUnauthenticated, status: http.StatusUnauthorized, message: app.MsgNotAuthenticated}},
	{ErrUnknownTokenSubject, apiError{kind: KindUnauthenticated, status: http.StatusUnauthorized, message: app.MsgNotAuthenticated}},
	{ErrInvalidAuthorizationHeader, apiError{kind: KindInvalidToken, status: http.StatusUnauthorized, message: app.MsgInvalidToken}},
	{ErrEmptyToken, apiError{kind: KindInvalidToken, status: http.StatusUnauthorized, message: app.MsgInvalidToken}},
	{service.ErrTokenIsInvalid, apiError{kind: KindInvalidToken, status: http.StatusUnauthorized, message: app.MsgInvalidToken}},
	{service.ErrTokenIsExpired, apiError{kind: KindExpiredToken, status: http.StatusUnauthorized, message: app.MsgTokenExpired}},

	{store.ErrJobNotFound, apiError{kind: KindNotFound, status: http.StatusNotFound, message: app.MsgJobNotFound}},
	{store.ErrNoUserWasFound, apiError{kind: KindNotFound, status: http.StatusNotFound, message: app.MsgUserNotFound}},
	{store.ErrEmailAlreadyExists, apiError{kind: KindDuplicateIdentity, status: http.StatusBadRequest, message: app.MsgEmailTaken}},

	{ErrInvalidBody, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgInvalidBody}},
	{ErrBodyTooLarge, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgFileTooLarge}},
	{ErrUnexpectedFile, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgUnexpectedFile}},
	{service.ErrInvalidDataProvided, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgInvalidBody}},
	{service.ErrAttachmentMissing, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgSelectFile}},
	{service.ErrAttachmentTooLarge, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgFileTooLarge}},
	{service.ErrUnknownAttachmentField, apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: app.MsgUnexpectedFile}},

	{ErrRateLimited, apiError{kind: KindTooManyRequests, status: http.StatusTooManyRequests, message: app.MsgTooManyRequests}},
	{store.ErrQueryTimeout, apiError{kind: KindTimeout, status: http.StatusServiceUnavailable, message: app.MsgServiceOverloaded}},
	{context.DeadlineExceeded, apiError{kind: KindTimeout, status: http.StatusServiceUnavailable, message: app.MsgServiceOverloaded}},
}

var serverFault = apiError{kind: KindServerFault, status: http.StatusInternalServerError, message: app.MsgServerFault}

func errorKindFromError(err error) apiError {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return apiError{
			kind:    KindValidationError,
			status:  http.StatusBadRequest,
			message: joinFieldMessages(validationErr.Fields),
			fields:  validationErr.Fields,
		}
	}

	var inputErr *validators.InputError
	if errors.As(err, &inputErr) {
		return apiError{kind: KindInvalidInput, status: http.StatusBadRequest, message: inputErr.Message}
	}

	for _, entry := range errorKindTable {
		if errors.Is(err, entry.target) {
			return entry.apiError
		}
	}
	return serverFault
}

// uploadError gives a rejected file type the message of its field.
func uploadError(field models.AttachmentField, err error) error {
	if !errors.Is(err, service.ErrAttachmentType) {
		return err
	}
	switch field {
	case models.AttachmentProfilePhoto:
		return &validators.InputError{Message: app.MsgPhotoMustBeImage}
	case models.AttachmentResume:
		return &validators.InputError{Message: app.MsgResumeMustBeDoc}
	}
	return err
}

func joinFieldMessages(fields map[string]string) string {
	if len(fields) == 0 {
		return app.MsgValidationFailed
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k])
	}
	return strings.Join(messages, ", ")
}

// writeError renders err as a failure envelope. Server faults are logged
// with their cause; the client only sees the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	apiErr := errorKindFromError(err)

	if apiErr.status >= http.StatusInternalServerError {
		log.Err(err).Str("error_kind", apiErr.kind).Msg("request failed")
	} else {
		log.Info().Err(err).Str("error_kind", apiErr.kind).Msg("request rejected")
	}

	if apiErr.status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "1")
	}

	utils.WriteJSON(w, models.Envelope{
		Success:   false,
		Message:   apiErr.message,
		ErrorKind: apiErr.kind,
		Fields:    apiErr.fields,
	}, apiErr.status)
}
