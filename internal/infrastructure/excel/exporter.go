// Package excel exporta herramientas y cotizaciones a hojas de cálculo xlsx.
package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Taller-api/internal/application/quotations"
	"github.com/jhoicas/Taller-api/internal/application/tools"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

var (
	_ tools.ToolExporter  = (*Exporter)(nil)
	_ quotations.Exporter = (*Exporter)(nil)
)

// Exporter implementa los puertos de exportación de herramientas y cotizaciones.
type Exporter struct {
	now func() time.Time
}

// NewExporter crea el exportador.
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// ExportTools una fila por herramienta.
func (e *Exporter) ExportTools(_ context.Context, list []*entity.Tool) ([]byte, error) {
	headers := []string{"SKU", "Nombre", "Categoría", "Proveedor", "Ubicación", "Estado", "Asignada a", "Precio", "Último mantenimiento", "Próximo mantenimiento", "Movimientos"}
	rows := make([][]any, 0, len(list))
	for _, t := range list {
		var asignada string
		if t.AssignedTo != nil {
			asignada = *t.AssignedTo
		}
		rows = append(rows, []any{
			t.SKU, t.Nombre, t.Categoria, t.Proveedor, t.Ubicacion, t.Estado, asignada,
			num(t.Precio.Float64()), dateOrEmpty(t.UltimoMantenimiento), dateOrEmpty(t.ProximoMantenimiento), t.Historial.Len(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := e.writeSheet(f, "Herramientas", "Inventario de herramientas", headers, rows); err != nil {
		return nil, err
	}
	return finish(f, "Herramientas")
}

// ExportQuotations hoja "Cotizaciones" con los totales y hoja "Productos" con las líneas vigentes.
func (e *Exporter) ExportQuotations(_ context.Context, list []*entity.Quotation) ([]byte, error) {
	qHeaders := []string{"Folio", "Fecha", "Empresa", "Cliente", "Placa", "Estado", "Subtotal", "IVA", "Total"}
	lHeaders := []string{"Folio", "Línea", "Producto", "Categoría", "Unidad", "Proveedor", "Cantidad", "Precio unitario", "Total", "Estado"}

	qRows := make([][]any, 0, len(list))
	var lRows [][]any
	for _, q := range list {
		qRows = append(qRows, []any{
			q.Folio, q.Fecha.Format("2006-01-02"), q.Empresa, q.Cliente, q.Placa, q.Estado,
			num(q.Subtotal.Float64()), num(q.IVA.Float64()), num(q.Total.Float64()),
		})
		for _, l := range q.Productos {
			if l.Eliminado {
				continue
			}
			lRows = append(lRows, []any{
				q.Folio, l.LineID, l.Nombre, l.Categoria, l.Unidad, l.Proveedor,
				num(l.Cantidad.Float64()), num(l.PrecioUnitario.Float64()), num(l.Total.Float64()), l.Estado,
			})
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := e.writeSheet(f, "Cotizaciones", "Cotizaciones", qHeaders, qRows); err != nil {
		return nil, err
	}
	if err := e.writeSheet(f, "Productos", "Productos cotizados", lHeaders, lRows); err != nil {
		return nil, err
	}
	return finish(f, "Cotizaciones")
}

// writeSheet título en A1, fecha de generación en A2 y tabla desde la fila 4.
func (e *Exporter) writeSheet(f *excelize.File, sheet, title string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: crear hoja %s: %w", sheet, err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2", "Generado: "+e.now().Format("2006-01-02 15:04")); err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, colName, colName, 18); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 4)
	last, _ := excelize.CoordinatesToCellName(len(headers), 4)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return err
	}

	for r, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+5)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila %d: %w", r+5, err)
		}
	}
	return nil
}

// finish quita la hoja por defecto, activa la primera y serializa.
func finish(f *excelize.File, active string) ([]byte, error) {
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(active)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func num(f float64, _ bool) float64 { return f }
