package reports

import "github.com/jhoicas/almacen-api/internal/application/dto"

// PDFGenerator produce el documento descargable de cada reporte.
// Recibe exactamente el mismo shape de datos que la respuesta JSON: el path de
// exportación nunca consulta distinto que el de visualización.
type PDFGenerator interface {
	StockReportPDF(report *dto.StockReportResponse) ([]byte, error)
	MovementReportPDF(report *dto.MovementReportResponse) ([]byte, error)
	LowStockReportPDF(report *dto.LowStockReportResponse) ([]byte, error)
}
