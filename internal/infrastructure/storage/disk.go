package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Disk guarda archivos en un directorio local servido como estático bajo publicPath.
type Disk struct {
	dir        string
	publicPath string
}

// NewDisk crea el directorio si no existe.
func NewDisk(dir, publicPath string) (*Disk, error) {
	if dir == "" {
		return nil, errors.New("directorio de carga requerido")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de carga: %w", err)
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &Disk{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

func (d *Disk) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	name := filepath.Base(key)
	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return d.publicPath + "/" + name, nil
}

// Delete ignora referencias que no pertenecen a publicPath o que ya no existen.
func (d *Disk) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, d.publicPath+"/") {
		return nil
	}
	name := baseName(ref)
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
