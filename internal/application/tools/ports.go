package tools

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ToolExporter genera el libro xlsx con el inventario de herramientas.
type ToolExporter interface {
	ExportTools(ctx context.Context, tools []*entity.Tool) ([]byte, error)
}
