package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sagarm04/Sublyze/internal/domain"
)

// ErrUnsupportedMediaType is returned for uploads whose MIME type is not video.
var ErrUnsupportedMediaType = errors.New("uploaded file is not a video")

// ErrInvalidDuration is returned when the declared media duration is negative.
var ErrInvalidDuration = errors.New("media duration must not be negative")

// Store stages uploaded media files in a local directory until the
// transcription attempt settles.
type Store struct {
	dir string
	log *logrus.Logger

	now      func() time.Time
	mkdirAll func(path string, perm os.FileMode) error
	create   func(name string) (*os.File, error)
	remove   func(name string) error
}

// NewStore creates a staging store rooted at dir. The directory itself is
// created lazily on first accept.
func NewStore(dir string, log *logrus.Logger) *Store {
	return &Store{
		dir:      dir,
		log:      log,
		now:      time.Now,
		mkdirAll: os.MkdirAll,
		create:   os.Create,
		remove:   os.Remove,
	}
}

// Accept validates the declared upload metadata and writes the byte stream to
// a collision-resistant staging path.
func (s *Store) Accept(r io.Reader, originalName, declaredMIME string, size int64, durationSeconds float64) (domain.MediaAsset, error) {
	if !IsVideoMIME(declaredMIME) {
		return domain.MediaAsset{}, ErrUnsupportedMediaType
	}
	if durationSeconds < 0 {
		return domain.MediaAsset{}, ErrInvalidDuration
	}

	// MkdirAll is a no-op when the directory already exists, so a retried
	// accept never fails here.
	if err := s.mkdirAll(s.dir, 0o755); err != nil {
		return domain.MediaAsset{}, fmt.Errorf("create staging directory: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, s.stagingName(id, originalName))

	f, err := s.create(path)
	if err != nil {
		return domain.MediaAsset{}, fmt.Errorf("create staged file: %w", err)
	}

	written, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.removeQuietly(path)
		return domain.MediaAsset{}, fmt.Errorf("write staged file: %w", err)
	}
	if size > 0 && written != size {
		s.removeQuietly(path)
		return domain.MediaAsset{}, fmt.Errorf("partial upload: wrote %d of %d declared bytes", written, size)
	}

	return domain.MediaAsset{
		ID:              id,
		Path:            path,
		MIMEType:        declaredMIME,
		SizeBytes:       written,
		DurationSeconds: durationSeconds,
	}, nil
}

// Release deletes the staged file for an asset. Deletion failure is logged
// as a warning and never propagated; the file is transient either way.
func (s *Store) Release(asset domain.MediaAsset) {
	if asset.Path == "" {
		return
	}

	if err := s.remove(asset.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"assetId": asset.ID,
				"path":    asset.Path,
			}).WithError(err).Warn("failed to delete staged upload")
		}
	}
}

// IsVideoMIME reports whether a declared MIME type has a video primary type.
func IsVideoMIME(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "video/")
}

// stagingName builds a time-based file name keeping the original extension.
func (s *Store) stagingName(id, originalName string) string {
	ext := filepath.Ext(originalName)
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixNano(), short, ext)
}

// removeQuietly deletes a partially written file without surfacing errors.
func (s *Store) removeQuietly(path string) {
	if err := s.remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		if s.log != nil {
			s.log.WithField("path", path).WithError(err).Warn("failed to remove partial upload")
		}
	}
}

// NewStoreForTests creates a store with injectable clock and fs dependencies.
func NewStoreForTests(
	dir string,
	log *logrus.Logger,
	now func() time.Time,
	mkdirAll func(string, os.FileMode) error,
	create func(string) (*os.File, error),
	remove func(string) error,
) *Store {
	return &Store{
		dir:      dir,
		log:      log,
		now:      now,
		mkdirAll: mkdirAll,
		create:   create,
		remove:   remove,
	}
}
