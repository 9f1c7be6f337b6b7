package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveImageWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	url, err := s.SaveImage(context.TODO(), "ring photo.JPG", []byte("imagedata"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, "images", filepath.Base(url)))
	assert.NoError(t, err)
	assert.Equal(t, []byte("imagedata"), data)
}

func TestSaveImageKeysDoNotCollide(t *testing.T) {
	s := New(t.TempDir())

	a, err := s.SaveImage(context.TODO(), "same.png", []byte("a"))
	assert.NoError(t, err)
	b, err := s.SaveImage(context.TODO(), "same.png", []byte("b"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveImageNormalizesUnknownExtension(t *testing.T) {
	s := New(t.TempDir())

	url, err := s.SaveImage(context.TODO(), "upload.exe", []byte("x"))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}
