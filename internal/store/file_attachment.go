package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

// localAttachmentStorage keeps attachments as files below a root directory.
// Keys are slash-separated relative paths such as "resumes/<uuid>.pdf".
type localAttachmentStorage struct {
	root   string
	logger *logger.Logger
}

// NewLocalAttachmentStorage creates root if needed and returns an
// [AttachmentStorage] writing below it.
func NewLocalAttachmentStorage(root string, logger *logger.Logger) (AttachmentStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload dir: %w", err)
	}

	logger.Debug().Str("root", root).Msg("creating local attachment storage")
	return &localAttachmentStorage{root: root, logger: logger}, nil
}

// Put writes body to a temporary file and renames it into place, so a
// failed or canceled upload never leaves a partial object under key.
func (s *localAttachmentStorage) Put(ctx context.Context, key, _ string, _ int64, body io.Reader) error {
	log := logger.FromContext(ctx)

	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating attachment dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, contextReader{ctx: ctx, r: body}); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*localAttachmentStorage.Put").Str("key", key).Msg("error writing attachment")
		return fmt.Errorf("error writing attachment: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing attachment: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error moving attachment into place: %w", err)
	}

	return nil
}

func (s *localAttachmentStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*localAttachmentStorage.Delete").Str("key", key).Msg("error removing attachment")
		return fmt.Errorf("error removing attachment: %w", err)
	}

	return nil
}

// path resolves key below root and rejects keys that would leave it.
func (s *localAttachmentStorage) path(key string) (string, error) {
	if key == "" || strings.Contains(key, `\`) || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("%w: %q", ErrAttachmentKeyInvalid, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
