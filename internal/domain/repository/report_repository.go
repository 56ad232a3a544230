package repository

import (
	"context"
	"time"
)

// StockReportRow fila del reporte de stock: saldo actual más totales históricos
// por dirección. TotalIn/TotalOut son sumas de cantidades (no conteo de filas).
type StockReportRow struct {
	ProductID    string
	Code         string
	Name         string
	CategoryName string
	Quantity     int64
	MinimumStock int64
	TotalIn      int64
	TotalOut     int64
}

// MovementReportRow fila del reporte de movimientos (proyección con producto y usuario).
type MovementReportRow struct {
	ID           string
	ProductCode  string
	ProductName  string
	CategoryName string
	Type         string
	Quantity     int64
	Description  string
	UserName     string
	CreatedAt    time.Time
}

// LowStockRow fila del reporte de stock mínimo.
type LowStockRow struct {
	ProductID    string
	Code         string
	Name         string
	CategoryName string
	Quantity     int64
	MinimumStock int64
}

// MovementReportFilter filtros opcionales del reporte de movimientos.
// StartDate/EndDate son inclusivos; Type vacío = ambos tipos.
type MovementReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

// ReportRepository consultas de solo lectura sobre el ledger.
// Nunca muta estado; los reportes son deterministas dado el estado al momento de la consulta.
type ReportRepository interface {
	StockReportRows(ctx context.Context) ([]StockReportRow, error)
	// StockOverviewRows versión paginada para el listado de stock.
	StockOverviewRows(ctx context.Context, limit, offset int) ([]StockReportRow, error)
	MovementReportRows(ctx context.Context, filter MovementReportFilter) ([]MovementReportRow, error)
	// LowStockRows devuelve productos con quantity <= minimum_stock, ordenados por código.
	LowStockRows(ctx context.Context) ([]LowStockRow, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
