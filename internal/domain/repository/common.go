package repository

// ListParams paginación y búsqueda libre para listados.
type ListParams struct {
	Limit  int
	Offset int
	Search string
}
