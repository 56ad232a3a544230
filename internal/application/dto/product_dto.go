package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialStock y MinimumStock crean la fila de saldo junto con el producto.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	InitialStock int64           `json:"initial_stock"`
	MinimumStock int64           `json:"minimum_stock"`
}

// UpdateProductRequest body para PUT /api/products/{id}. Campos nil no se tocan.
// La cantidad en stock no es editable aquí: solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	CategoryID   *string          `json:"category_id"`
	MinimumStock *int64           `json:"minimum_stock"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Meta     PageResponse      `json:"meta"`
}
