package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "abc.jpg", "image/jpeg", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestDiskStore_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../etc/evil.jpg", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/evil.jpg", url)

	_, err = os.Stat(filepath.Join(dir, "evil.jpg"))
	assert.NoError(t, err)
}

func TestDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := NewDiskStore(dir, "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
