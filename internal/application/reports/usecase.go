package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReportUseCase proyecciones de solo lectura sobre el ledger: stock actual con
// totales históricos, movimientos filtrados por fecha/tipo y stock mínimo.
// Nunca muta estado.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// StockReport reporte por producto: código, nombre, categoría, saldo actual y
// totales in/out como suma de cantidades de todo el historial.
func (uc *ReportUseCase) StockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	rows, err := uc.repo.StockReportRows(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StockReportResponse{
		GeneratedAt: time.Now(),
		Items:       make([]dto.StockReportItem, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, stockItemFromRow(r))
	}
	return out, nil
}

// StockReportPDF exporta el reporte de stock; misma consulta que StockReport.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.StockReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.StockReportPDF(report)
}

// MovementReport reporte de movimientos, más recientes primero. Fechas inclusivas
// en formato YYYY-MM-DD; type filtra in/out. Rango invertido o tipo desconocido
// devuelven ErrInvalidInput.
func (uc *ReportUseCase) MovementReport(ctx context.Context, q dto.MovementReportQuery) (*dto.MovementReportResponse, error) {
	filter, err := parseFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.MovementReportRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementReportResponse{
		GeneratedAt: time.Now(),
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		Type:        q.Type,
		Items:       make([]dto.MovementReportItem, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.MovementReportItem{
			ID:          r.ID,
			ProductCode: r.ProductCode,
			ProductName: r.ProductName,
			Category:    r.CategoryName,
			Type:        r.Type,
			Quantity:    r.Quantity,
			Description: r.Description,
			UserName:    r.UserName,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// MovementReportPDF exporta el reporte de movimientos; misma consulta que MovementReport.
func (uc *ReportUseCase) MovementReportPDF(ctx context.Context, q dto.MovementReportQuery) ([]byte, error) {
	report, err := uc.MovementReport(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.pdf.MovementReportPDF(report)
}

// LowStockReport productos con saldo en o bajo su umbral mínimo, ordenados por código.
func (uc *ReportUseCase) LowStockReport(ctx context.Context) (*dto.LowStockReportResponse, error) {
	rows, err := uc.repo.LowStockRows(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.LowStockReportResponse{
		GeneratedAt: time.Now(),
		Items:       make([]dto.LowStockItem, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.LowStockItem{
			ProductID:    r.ProductID,
			Code:         r.Code,
			Name:         r.Name,
			Category:     r.CategoryName,
			Quantity:     r.Quantity,
			MinimumStock: r.MinimumStock,
		})
	}
	return out, nil
}

// LowStockReportPDF exporta el reporte de stock mínimo; misma consulta que LowStockReport.
func (uc *ReportUseCase) LowStockReportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.LowStockReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.LowStockReportPDF(report)
}

// StockOverview listado paginado de productos con su saldo (pantalla de stock).
func (uc *ReportUseCase) StockOverview(ctx context.Context, page dto.PageRequest) (*dto.StockOverviewResponse, error) {
	offset := page.DefaultPage()
	rows, err := uc.repo.StockOverviewRows(ctx, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StockOverviewResponse{
		Items: make([]dto.StockReportItem, 0, len(rows)),
		Meta:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: int(total)},
	}
	for _, r := range rows {
		out.Items = append(out.Items, stockItemFromRow(r))
	}
	return out, nil
}

// Dashboard contadores globales: productos, categorías y productos en stock mínimo.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	products, err := uc.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:   products,
		TotalCategories: categories,
		LowStockCount:   lowStock,
	}, nil
}

func parseFilter(q dto.MovementReportQuery) (repository.MovementReportFilter, error) {
	var filter repository.MovementReportFilter
	if q.Type != "" {
		if !entity.ValidMovementType(q.Type) {
			return filter, domain.ErrInvalidInput
		}
		filter.Type = q.Type
	}
	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return filter, domain.ErrInvalidInput
		}
		filter.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return filter, domain.ErrInvalidInput
		}
		filter.EndDate = &t
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, domain.ErrInvalidInput
	}
	return filter, nil
}

func stockItemFromRow(r repository.StockReportRow) dto.StockReportItem {
	return dto.StockReportItem{
		ProductID:    r.ProductID,
		Code:         r.Code,
		Name:         r.Name,
		Category:     r.CategoryName,
		Quantity:     r.Quantity,
		MinimumStock: r.MinimumStock,
		TotalIn:      r.TotalIn,
		TotalOut:     r.TotalOut,
	}
}
