package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-catalog/internal/application/ports"
)

var _ ports.MediaStore = (*LocalStore)(nil)

// LocalStore guarda las fotos en un directorio local y devuelve su URL pública.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: crear directorio: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir directorio servido como estático.
func (s *LocalStore) Dir() string { return s.dir }

// Store escribe el archivo con nombre aleatorio conservando la extensión original.
func (s *LocalStore) Store(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("media: archivo vacío")
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("media: escribir %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}
