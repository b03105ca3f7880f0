// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	maxJSONBodySize = 1 << 20

	// multipartMemory is kept in memory; larger file parts spill to disk.
	multipartMemory = 1 << 20
	// maxMultipartBodySize fits both file parts at their limits plus the form fields.
	maxMultipartBodySize = service.MaxResumeSize + service.MaxProfilePhotoSize + 1<<20
)

// decodeJSON decodes the request body into dst. An empty body leaves dst
// untouched so that missing fields are reported by validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrBodyTooLarge
	}
	return fmt.Errorf("%w: %w", ErrInvalidBody, err)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart parses a multipart/form-data body and rejects file parts
// other than allowed.
func parseMultipart(w http.ResponseWriter, r *http.Request, allowed ...models.AttachmentField) (*multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBodySize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	form := r.MultipartForm
	for name := range form.File {
		if !containsField(allowed, models.AttachmentField(name)) {
			form.RemoveAll()
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedFile, name)
		}
	}
	return form, nil
}

func containsField(fields []models.AttachmentField, field models.AttachmentField) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// jobInputFromForm maps form values onto a JobInput. A value absent from the
// form stays nil.
func jobInputFromForm(form *multipart.Form) models.JobInput {
	value := func(name string) *string {
		values, ok := form.Value[name]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	return models.JobInput{
		Position:        value(models.FieldPosition),
		Company:         value(models.FieldCompany),
		ApplicationDate: value(models.FieldApplicationDate),
		JobLink:         value(models.FieldJobLink),
		Status:          value(models.FieldStatus),
		Notes:           value(models.FieldNotes),
	}
}

// storeUploads stores the first file of every given field present in form.
// If one upload is rejected, the ones stored before it are discarded.
func (h *Handler) storeUploads(ctx context.Context, form *multipart.Form, fields ...models.AttachmentField) ([]models.AttachmentRef, error) {
	refs := make([]models.AttachmentRef, 0, len(fields))
	for _, field := range fields {
		headers := form.File[string(field)]
		if len(headers) == 0 {
			continue
		}

		ref, err := h.storeUpload(ctx, field, headers[0])
		if err != nil {
			h.discardUploads(ctx, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// discardUploads releases files stored for a request that was rejected.
func (h *Handler) discardUploads(ctx context.Context, refs []models.AttachmentRef) {
	if len(refs) == 0 {
		return
	}
	h.services.AttachmentService.Discard(ctx, refs...)
}

func (h *Handler) storeUpload(ctx context.Context, field models.AttachmentField, header *multipart.FileHeader) (models.AttachmentRef, error) {
	file, err := header.Open()
	if err != nil {
		return models.AttachmentRef{}, fmt.Errorf("error opening upload %q: %w", field, err)
	}
	defer file.Close()

	ref, err := h.services.AttachmentService.Store(ctx, field, header.Filename, file)
	if err != nil {
		return models.AttachmentRef{}, uploadError(field, err)
	}
	return ref, nil
}

// readJobRequest reads a job body sent either as JSON or as multipart form
// data with optional resume and profilePhoto files.
func (h *Handler) readJobRequest(w http.ResponseWriter, r *http.Request) (models.JobInput, []models.AttachmentRef, error) {
	if !isMultipart(r) {
		var input models.JobInput
		if err := decodeJSON(w, r, &input); err != nil {
			return models.JobInput{}, nil, err
		}
		return input, nil, nil
	}

	form, err := parseMultipart(w, r, models.AttachmentResume, models.AttachmentProfilePhoto)
	if err != nil {
		return models.JobInput{}, nil, err
	}
	defer form.RemoveAll()

	refs, err := h.storeUploads(r.Context(), form, models.AttachmentResume, models.AttachmentProfilePhoto)
	if err != nil {
		return models.JobInput{}, nil, err
	}
	return jobInputFromForm(form), refs, nil
}

// listJobsQueryFromRequest reads the listing parameters. Unparsable numbers
// fall back to the defaults applied by [models.ListJobsQuery.Normalize].
func listJobsQueryFromRequest(r *http.Request) models.ListJobsQuery {
	values := r.URL.Query()
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	return models.ListJobsQuery{
		Search: values.Get("search"),
		Status: values.Get("status"),
		Sort:   values.Get("sort"),
		Page:   page,
		Limit:  limit,
	}
}

func userIDFromRequest(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}
