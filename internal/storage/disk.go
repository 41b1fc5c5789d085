package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// diskStore writes images under a local directory served as static files.
type diskStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewDiskStore creates the upload directory if needed. Stored files are
// reachable at baseURL + "/images/" + name.
func NewDiskStore(dir, baseURL string, logger zerolog.Logger) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &diskStore{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "disk-image-store").Logger(),
	}, nil
}

func (s *diskStore) Save(_ context.Context, name string, _ string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	url := s.baseURL + "/images/" + filepath.Base(name)
	s.logger.Debug().Str("path", path).Str("url", url).Msg("image stored")
	return url, nil
}
