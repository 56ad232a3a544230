package entity

import "time"

// Stock representa el saldo actual de un producto (fila única por producto).
// Invariante: Quantity >= 0 siempre; solo el motor de ajustes la muta.
type Stock struct {
	ProductID    string
	Quantity     int64
	MinimumStock int64 // umbral de stock mínimo configurable por producto
	UpdatedAt    time.Time
}

// IsLow indica si el saldo está en o por debajo del umbral mínimo.
func (s *Stock) IsLow() bool {
	return s.Quantity <= s.MinimumStock
}
