package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de ajustes: o se insertan movimiento y saldo, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LowStockNotifier registra una alerta de stock mínimo para el usuario que disparó el ajuste.
// El despacho es best-effort: ocurre fuera de la transacción del ledger y su fallo
// nunca revierte ni bloquea el ajuste.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, product *entity.Product, stock *entity.Stock, userID string) (string, error)
}
