package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el saldo por producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Es el único punto de serialización entre ajustes concurrentes al mismo producto.
	// Sin fila de saldo devuelve ErrNotFound: no hay nada que bloquear.
	GetForUpdate(productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// UpdateMinimum actualiza solo el umbral mínimo (usado al editar el producto).
	UpdateMinimum(productID string, minimum int64) error
}
