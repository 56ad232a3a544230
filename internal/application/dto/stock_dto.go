package dto

import "time"

// AdjustStockRequest body para POST /api/stock/{productId}/adjust.
type AdjustStockRequest struct {
	Type        string `json:"type"` // in | out
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
}

// MovementResultResponse resultado de un ajuste de stock.
type MovementResultResponse struct {
	MovementID  string `json:"movement_id"`
	NewQuantity int64  `json:"new_quantity"`
	AlertRaised bool   `json:"alert_raised"`
}

// MovementResponse representación HTTP de un movimiento del historial.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementHistoryResponse historial paginado de movimientos de un producto.
type MovementHistoryResponse struct {
	ProductID string             `json:"product_id"`
	Movements []MovementResponse `json:"movements"`
	Meta      PageResponse       `json:"meta"`
}
