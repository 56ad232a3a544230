// Package pdf implementa la exportación de reportes de inventario como
// documentos descargables usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS (solo movimientos): rango de fechas / tipo          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una fila por ítem del reporte                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de filas                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// StockReportPDF genera el PDF del reporte de stock.
func (g *MarotoReportGenerator) StockReportPDF(report *dto.StockReportResponse) ([]byte, error) {
	m := newDocument("Reporte de Stock")

	m.AddRows(titleRow("REPORTE DE STOCK", report.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(headerRow(
		cell{"Código", 2, align.Left},
		cell{"Producto", 3, align.Left},
		cell{"Categoría", 2, align.Left},
		cell{"Saldo", 1, align.Right},
		cell{"Mínimo", 1, align.Right},
		cell{"Entradas", 1, align.Right},
		cell{"Salidas", 2, align.Right},
	))
	for _, item := range report.Items {
		valueColor := colorGray
		if item.Quantity <= item.MinimumStock {
			valueColor = colorAlert
		}
		m.AddRows(row.New(6).Add(
			bodyCol(item.Code, 2, align.Left, colorGray),
			bodyCol(item.Name, 3, align.Left, colorGray),
			bodyCol(item.Category, 2, align.Left, colorGray),
			bodyCol(fmt.Sprintf("%d", item.Quantity), 1, align.Right, valueColor),
			bodyCol(fmt.Sprintf("%d", item.MinimumStock), 1, align.Right, colorGray),
			bodyCol(fmt.Sprintf("%d", item.TotalIn), 1, align.Right, colorGray),
			bodyCol(fmt.Sprintf("%d", item.TotalOut), 2, align.Right, colorGray),
		))
	}

	m.AddRows(footerRow(len(report.Items)))
	return generate(m)
}

// MovementReportPDF genera el PDF del reporte de movimientos.
func (g *MarotoReportGenerator) MovementReportPDF(report *dto.MovementReportResponse) ([]byte, error) {
	m := newDocument("Reporte de Movimientos")

	m.AddRows(titleRow("REPORTE DE MOVIMIENTOS", report.GeneratedAt.Format("02/01/2006 15:04")))
	if filtros := filterLine(report); filtros != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(filtros, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(headerRow(
		cell{"Fecha", 2, align.Left},
		cell{"Código", 1, align.Left},
		cell{"Producto", 3, align.Left},
		cell{"Tipo", 1, align.Center},
		cell{"Cant.", 1, align.Right},
		cell{"Motivo", 2, align.Left},
		cell{"Usuario", 2, align.Left},
	))
	for _, item := range report.Items {
		tipoColor := colorPrimary
		tipo := "Entrada"
		if item.Type == entity.MovementTypeOut {
			tipoColor = colorAlert
			tipo = "Salida"
		}
		m.AddRows(row.New(6).Add(
			bodyCol(item.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left, colorGray),
			bodyCol(item.ProductCode, 1, align.Left, colorGray),
			bodyCol(item.ProductName, 3, align.Left, colorGray),
			bodyCol(tipo, 1, align.Center, tipoColor),
			bodyCol(fmt.Sprintf("%d", item.Quantity), 1, align.Right, colorGray),
			bodyCol(item.Description, 2, align.Left, colorGray),
			bodyCol(nonEmpty(item.UserName, "—"), 2, align.Left, colorGray),
		))
	}

	m.AddRows(footerRow(len(report.Items)))
	return generate(m)
}

// LowStockReportPDF genera el PDF del reporte de stock mínimo.
func (g *MarotoReportGenerator) LowStockReportPDF(report *dto.LowStockReportResponse) ([]byte, error) {
	m := newDocument("Reporte de Stock Mínimo")

	m.AddRows(titleRow("REPORTE DE STOCK MÍNIMO", report.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(headerRow(
		cell{"Código", 2, align.Left},
		cell{"Producto", 4, align.Left},
		cell{"Categoría", 3, align.Left},
		cell{"Saldo", 1, align.Right},
		cell{"Mínimo", 2, align.Right},
	))
	for _, item := range report.Items {
		m.AddRows(row.New(6).Add(
			bodyCol(item.Code, 2, align.Left, colorGray),
			bodyCol(item.Name, 4, align.Left, colorGray),
			bodyCol(item.Category, 3, align.Left, colorGray),
			bodyCol(fmt.Sprintf("%d", item.Quantity), 1, align.Right, colorAlert),
			bodyCol(fmt.Sprintf("%d", item.MinimumStock), 2, align.Right, colorGray),
		))
	}

	m.AddRows(footerRow(len(report.Items)))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// titleRow: título del reporte (izq) y fecha de generación (der).
func titleRow(title, generatedAt string) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

type cell struct {
	label string
	size  int
	align align.Type
}

// headerRow: cabecera de la tabla.
func headerRow(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func bodyCol(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Color: color, Top: 1, Left: 1, Right: 1,
	}))
}

// footerRow: total de filas del reporte.
func footerRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de registros: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 4,
		}),
	))
}

// filterLine arma la línea de filtros aplicados al reporte de movimientos.
func filterLine(report *dto.MovementReportResponse) string {
	var parts []string
	if report.StartDate != "" {
		parts = append(parts, "Desde: "+report.StartDate)
	}
	if report.EndDate != "" {
		parts = append(parts, "Hasta: "+report.EndDate)
	}
	if report.Type != "" {
		tipo := "Entradas"
		if report.Type == entity.MovementTypeOut {
			tipo = "Salidas"
		}
		parts = append(parts, "Tipo: "+tipo)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "   |   "
		}
		out += p
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
