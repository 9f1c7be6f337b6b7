package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mgiraldez/aurelia/internal/domain"
)

// Storage writes uploaded images under dir/images and serves them from
// /uploads/images. Keys are random tokens plus the original extension,
// so concurrent uploads of files with the same name never collide.
type Storage struct {
	dir string
}

func New(dir string) *Storage { return &Storage{dir: dir} }

func (s *Storage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
	default:
		ext = ".png"
	}
	key := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	target := filepath.Join(s.dir, "images")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", &domain.UploadError{Err: err}
	}
	if err := os.WriteFile(filepath.Join(target, key), data, 0o644); err != nil {
		return "", &domain.UploadError{Err: err}
	}
	return "/uploads/images/" + key, nil
}
