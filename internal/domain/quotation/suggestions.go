package quotation

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/textnorm"
)

// LineRef línea histórica junto con los datos de su cotización (fuente del autocompletado).
type LineRef struct {
	Placa   string
	Empresa string
	Line    entity.QuotationLine
}

// Suggestion resultado del autocompletado.
type Suggestion struct {
	Placa          string `json:"placa"`
	Empresa        string `json:"empresa"`
	Proveedor      string `json:"proveedor"`
	Nombre         string `json:"nombre"`
	Categoria      string `json:"categoria"`
	Unidad         string `json:"unidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

// Suggest filtra refs cuyo placa, empresa o proveedor contenga query (sin distinguir
// mayúsculas ni tildes) y deduplica por (placa, empresa, proveedor); gana la primera
// aparición, así que refs debe venir ordenado del más reciente al más antiguo.
func Suggest(refs []LineRef, query string, limit int) []Suggestion {
	if textnorm.Fold(query) == "" {
		return []Suggestion{}
	}
	seen := make(map[[3]string]bool)
	out := []Suggestion{}
	for _, r := range refs {
		if !textnorm.Contains(r.Placa, query) &&
			!textnorm.Contains(r.Empresa, query) &&
			!textnorm.Contains(r.Line.Proveedor, query) {
			continue
		}
		key := [3]string{textnorm.Fold(r.Placa), textnorm.Fold(r.Empresa), textnorm.Fold(r.Line.Proveedor)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Suggestion{
			Placa:          r.Placa,
			Empresa:        r.Empresa,
			Proveedor:      r.Line.Proveedor,
			Nombre:         r.Line.Nombre,
			Categoria:      r.Line.Categoria,
			Unidad:         r.Line.Unidad,
			PrecioUnitario: r.Line.PrecioUnitario.StringFixed(2),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
