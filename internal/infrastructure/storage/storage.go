// Package storage guarda la evidencia de ingresos y salidas (fotos y firmas)
// en disco local o en un bucket compatible con S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var _ ports.FileStore = (*Uploader)(nil)

// Backend destino físico de los archivos. Put devuelve la referencia pública del objeto.
type Backend interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// allowed tipos MIME aceptados y la extensión con la que se guardan.
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Uploader valida y guarda lotes de archivos sobre un Backend.
type Uploader struct {
	backend  Backend
	maxBytes int64
	maxFiles int
	log      *logger.Logger
}

// NewUploader crea el uploader con los límites de config.UploadConfig.
func NewUploader(backend Backend, limits config.UploadConfig, log *logger.Logger) *Uploader {
	if log == nil {
		log = logger.Nop()
	}
	return &Uploader{backend: backend, maxBytes: limits.MaxFileBytes, maxFiles: limits.MaxFiles, log: log}
}

// New construye el backend indicado por cfg.Storage.Driver y lo envuelve en un Uploader.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Uploader, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Storage.Driver {
	case "", "disk":
		backend, err = NewDisk(cfg.Upload.Dir, cfg.Upload.PublicPath)
	case "s3":
		backend, err = NewS3(ctx, cfg.Storage)
	default:
		err = fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return NewUploader(backend, cfg.Upload, log), nil
}

// Store valida todo el lote antes de escribir; si una escritura falla, borra las anteriores.
func (u *Uploader) Store(ctx context.Context, files []ports.Upload) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if u.maxFiles > 0 && len(files) > u.maxFiles {
		return nil, domain.NewValidationError("archivos", fmt.Sprintf("máximo %d archivos por petición", u.maxFiles))
	}

	types := make([]string, len(files))
	ve := &domain.ValidationError{}
	for i, f := range files {
		field := f.Field
		if field == "" {
			field = "archivo"
		}
		if len(f.Content) == 0 {
			ve.Add(field, "archivo vacío")
			continue
		}
		if u.maxBytes > 0 && int64(len(f.Content)) > u.maxBytes {
			ve.Add(field, fmt.Sprintf("%s supera el tamaño máximo de %d MB", f.Filename, u.maxBytes>>20))
			continue
		}
		mt := mimetype.Detect(f.Content)
		if _, ok := allowed[mt.String()]; !ok {
			ve.Add(field, fmt.Sprintf("%s: tipo %s no permitido", f.Filename, mt.String()))
			continue
		}
		types[i] = mt.String()
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(files))
	for i, f := range files {
		key := objectName(f.Field, types[i])
		ref, err := u.backend.Put(ctx, key, types[i], f.Content)
		if err != nil {
			u.rollback(ctx, refs)
			return nil, fmt.Errorf("guardar %s: %w", f.Filename, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Remove borra las referencias; los errores se acumulan y se devuelven juntos.
func (u *Uploader) Remove(ctx context.Context, refs []string) error {
	var errs []error
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := u.backend.Delete(ctx, ref); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
		}
	}
	return errors.Join(errs...)
}

func (u *Uploader) rollback(ctx context.Context, refs []string) {
	if err := u.Remove(ctx, refs); err != nil {
		u.log.Warn().Err(err).Int("archivos", len(refs)).Msg("no se pudieron limpiar archivos de un lote fallido")
	}
}

func objectName(field, contentType string) string {
	prefix := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, field)
	if prefix == "" {
		prefix = "archivo"
	}
	return prefix + "-" + uuid.NewString() + allowed[contentType]
}

// baseName último segmento de una referencia (ruta o URL).
func baseName(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return path.Base(ref)
}
