package ports

import "context"

// Upload archivo recibido en una petición multipart. Field identifica el campo del formulario.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// FileStore define el puerto de salida para guardar evidencia (fotos y firmas).
// La implementación valida el tipo real del contenido contra la lista permitida y
// los límites de tamaño y cantidad; nunca confía en el Content-Type del cliente.
type FileStore interface {
	// Store guarda todos los archivos o ninguno. Devuelve una referencia por archivo,
	// en el mismo orden, resoluble por la capa que sirve /uploads (o una URL pública).
	Store(ctx context.Context, files []Upload) ([]string, error)
	// Remove elimina archivos guardados previamente. Las referencias desconocidas se ignoran.
	Remove(ctx context.Context, refs []string) error
}
