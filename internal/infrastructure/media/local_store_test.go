package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Store(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "http://cdn.local/media/")
	require.NoError(t, err)

	url, err := s.Store(context.Background(), "../foto.PNG", "image/png", []byte{0x89, 'P'})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.local/media/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P'}, data)
}

func TestLocalStore_Vacio(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	_, err = s.Store(context.Background(), "a.jpg", "image/jpeg", nil)
	assert.Error(t, err)
}

func TestLocalStore_ContextoCancelado(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Store(ctx, "a.jpg", "image/jpeg", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
