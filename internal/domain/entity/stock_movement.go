package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// StockMovement representa un movimiento de stock (entrada o salida).
// Es el audit trail: append-only, nunca se actualiza ni se borra.
// El saldo en Stock debe ser siempre la suma con signo de los movimientos del producto.
type StockMovement struct {
	ID          string
	ProductID   string
	Type        string // in, out
	Quantity    int64  // siempre positivo; el signo lo da Type
	Description string
	UserID      string // usuario que registró el movimiento
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo según el tipo.
func (m *StockMovement) Signed() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
