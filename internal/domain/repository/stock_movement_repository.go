package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de movimientos.
// Append-only: no expone Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct lista movimientos de un producto, más recientes primero.
	// from/to son límites inclusivos opcionales; movType filtra por in/out si no es vacío.
	ListByProduct(productID string, from, to *time.Time, movType string, limit, offset int) ([]*entity.StockMovement, error)
	// CountByProduct cuenta con los mismos filtros que ListByProduct.
	CountByProduct(productID string, from, to *time.Time, movType string) (int, error)
}
