// Package staging materialises untrusted uploads on local scratch storage
// under opaque, collision-free names, and removes them again.
//
// Client-supplied filenames are advisory only; they never contribute to a
// path. Uniqueness across concurrent requests comes from uuid-based names.
package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/metrics"
)

// Kind labels what a scratch file holds. It selects the name prefix and
// extension, nothing else.
type Kind string

const (
	KindVideo     Kind = "video"
	KindSubtitles Kind = "subtitles"
	KindOutput    Kind = "output"
)

func (k Kind) filename() string {
	id := uuid.New().String()
	switch k {
	case KindSubtitles:
		return "in-subs-" + id + ".srt"
	case KindOutput:
		return "out-" + id + ".mp4"
	default:
		return "in-video-" + id + ".mp4"
	}
}

// ErrEmptyUpload is returned when an upload stream contains no bytes.
var ErrEmptyUpload = errors.New("upload is empty")

// StagedFile is one upload written to scratch storage.
type StagedFile struct {
	Path string
	Size int64
}

// Store manages a single scratch directory.
type Store struct {
	root   string
	logger zerolog.Logger
}

// NewStore creates the scratch directory if needed and verifies it is
// writable. A store that fails this check would turn every request into an
// infrastructure error, so startup fails instead.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create scratch dir %s: %w", root, err)
	}
	probe := filepath.Join(root, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return nil, fmt.Errorf("scratch dir %s is not writable: %w", root, err)
	}
	_ = os.Remove(probe)

	return &Store{
		root:   root,
		logger: log.WithComponent("staging"),
	}, nil
}

// Root returns the scratch directory.
func (s *Store) Root() string {
	return s.root
}

// Stage writes the upload stream to a freshly allocated unique path and
// syncs it to disk before returning. An empty stream yields ErrEmptyUpload
// and leaves nothing behind.
func (s *Store) Stage(r io.Reader, kind Kind) (*StagedFile, error) {
	path := filepath.Join(s.root, kind.filename())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write staged file: %w", err)
	}
	if n == 0 {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, ErrEmptyUpload
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("sync staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close staged file: %w", err)
	}

	metrics.BytesStaged.WithLabelValues(string(kind)).Add(float64(n))
	s.logger.Debug().
		Str("path", path).
		Int64("size", n).
		Str("kind", string(kind)).
		Msg("staged upload")

	return &StagedFile{Path: path, Size: n}, nil
}

// Allocate reserves a unique path for a file the transcoder will create.
// No file is created; the name is unique by construction.
func (s *Store) Allocate(kind Kind) string {
	return filepath.Join(s.root, kind.filename())
}

// Remove deletes the given scratch paths, ignoring files that are already
// gone. Safe to call multiple times.
func (s *Store) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", p).Msg("failed to remove scratch file")
		}
	}
}
