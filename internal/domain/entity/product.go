package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// El stock actual vive en Stock (1:1); nunca se modifica desde el producto.
type Product struct {
	ID          string
	Code        string // código único
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
