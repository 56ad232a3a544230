package dto

import "time"

// StockReportItem fila del reporte de stock.
type StockReportItem struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     int64  `json:"quantity"`
	MinimumStock int64  `json:"minimum_stock"`
	TotalIn      int64  `json:"total_in"`
	TotalOut     int64  `json:"total_out"`
}

// StockReportResponse reporte de stock completo.
type StockReportResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Items       []StockReportItem `json:"items"`
}

// MovementReportQuery filtros del reporte de movimientos (query params).
type MovementReportQuery struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusivo
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusivo
	Type      string `query:"type"`       // in | out | vacío
}

// MovementReportItem fila del reporte de movimientos.
type MovementReportItem struct {
	ID          string    `json:"id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	UserName    string    `json:"user_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementReportResponse reporte de movimientos (más recientes primero).
type MovementReportResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	StartDate   string               `json:"start_date,omitempty"`
	EndDate     string               `json:"end_date,omitempty"`
	Type        string               `json:"type,omitempty"`
	Items       []MovementReportItem `json:"items"`
}

// LowStockItem fila del reporte de stock mínimo.
type LowStockItem struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     int64  `json:"quantity"`
	MinimumStock int64  `json:"minimum_stock"`
}

// LowStockReportResponse reporte de productos en o bajo su umbral mínimo.
type LowStockReportResponse struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Items       []LowStockItem `json:"items"`
}

// DashboardResponse contadores para el dashboard.
type DashboardResponse struct {
	TotalProducts   int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
	LowStockCount   int64 `json:"low_stock_count"`
}

// StockOverviewResponse listado paginado de productos con su saldo.
type StockOverviewResponse struct {
	Items []StockReportItem `json:"items"`
	Meta  PageResponse      `json:"meta"`
}
