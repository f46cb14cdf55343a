package localstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var _ repository.CartStorage = (*FileStorage)(nil)

// FileStorage guarda cada clave en un archivo dentro de dir. El nombre del archivo es la
// clave en base64 URL, así claves como "@RocketShoes:cart" son válidas en cualquier SO.
// Las escrituras van a un temporal y se renombran, nunca queda un archivo a medias.
type FileStorage struct {
	dir string
}

// NewFileStorage crea dir si no existe.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de carritos: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+".json")
}

// Get lee el archivo de key.
func (f *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("leer %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set escribe value de forma atómica.
func (f *FileStorage) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("reemplazar %q: %w", key, err)
	}
	return nil
}

// Delete borra el archivo de key.
func (f *FileStorage) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %q: %w", key, err)
	}
	return nil
}
