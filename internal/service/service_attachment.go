package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	MaxProfilePhotoSize int64 = 2 << 20
	MaxResumeSize       int64 = 5 << 20
)

// attachmentRule describes what a file part may contain and where it lives.
type attachmentRule struct {
	dir     string
	maxSize int64
	allowed func(m *mimetype.MIME) bool
}

var attachmentRules = map[models.AttachmentField]attachmentRule{
	models.AttachmentProfilePhoto: {
		dir:     "profile-photos",
		maxSize: MaxProfilePhotoSize,
		allowed: func(m *mimetype.MIME) bool {
			return strings.HasPrefix(m.String(), "image/")
		},
	},
	models.AttachmentResume: {
		dir:     "resumes",
		maxSize: MaxResumeSize,
		allowed: func(m *mimetype.MIME) bool {
			return m.Is("application/pdf") ||
				m.Is("application/msword") ||
				m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		},
	},
}

// MaxAttachmentSize returns the size limit of field, or 0 for an unknown field.
func MaxAttachmentSize(field models.AttachmentField) int64 {
	return attachmentRules[field].maxSize
}

type attachmentService struct {
	storage store.AttachmentStorage
	uuid    *utils.UUIDGenerator
	logger  *logger.Logger
}

func NewAttachmentService(storage store.AttachmentStorage, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		storage: storage,
		uuid:    utils.NewUUIDGenerator(),
		logger:  logger,
	}
}

// Store buffers the upload, checks its size and sniffed type against the
// rules of field and writes it under "<dir>/<uuid><ext>". The extension comes
// from the detected type, not from filename.
func (s *attachmentService) Store(ctx context.Context, field models.AttachmentField, filename string, body io.Reader) (models.AttachmentRef, error) {
	log := logger.FromContext(ctx)

	rule, ok := attachmentRules[field]
	if !ok {
		return models.AttachmentRef{}, fmt.Errorf("%w: %q", ErrUnknownAttachmentField, field)
	}
	if body == nil {
		return models.AttachmentRef{}, ErrAttachmentMissing
	}

	data, err := io.ReadAll(io.LimitReader(body, rule.maxSize+1))
	if err != nil {
		return models.AttachmentRef{}, fmt.Errorf("error reading upload: %w", err)
	}
	if len(data) == 0 {
		return models.AttachmentRef{}, ErrAttachmentMissing
	}
	if int64(len(data)) > rule.maxSize {
		log.Info().Str("field", string(field)).Str("filename", filename).Msg("upload exceeds size limit")
		return models.AttachmentRef{}, ErrAttachmentTooLarge
	}

	mime := mimetype.Detect(data)
	if !rule.allowed(mime) {
		log.Info().Str("field", string(field)).Str("filename", filename).Str("mime", mime.String()).Msg("upload type rejected")
		return models.AttachmentRef{}, fmt.Errorf("%w: %s", ErrAttachmentType, mime.String())
	}

	ref := models.AttachmentRef{
		Field:       field,
		Key:         path.Join(rule.dir, s.uuid.Generate()+mime.Extension()),
		Size:        int64(len(data)),
		ContentType: mime.String(),
	}

	if err = s.storage.Put(ctx, ref.Key, ref.ContentType, ref.Size, bytes.NewReader(data)); err != nil {
		log.Err(err).Str("func", "*attachmentService.Store").Str("key", ref.Key).Msg("error storing upload")
		return models.AttachmentRef{}, fmt.Errorf("error storing upload: %w", err)
	}

	return ref, nil
}

// Discard deletes every ref. Failures are logged and otherwise ignored.
func (s *attachmentService) Discard(ctx context.Context, refs ...models.AttachmentRef) {
	log := logger.FromContext(ctx)

	for _, ref := range refs {
		if ref.Key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, ref.Key); err != nil {
			log.Warn().Err(err).Str("key", ref.Key).Msg("error discarding attachment")
		}
	}
}
