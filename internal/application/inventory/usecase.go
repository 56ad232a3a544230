package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// AdjustStockUseCase registra ajustes de stock de forma transaccional (in/out)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	notifier    LowStockNotifier
	log         *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	notifier LowStockNotifier,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
	}
}

// AdjustStockInput entrada para registrar un ajuste de stock.
type AdjustStockInput struct {
	ProductID   string
	Type        string // in | out
	Quantity    int64  // siempre positivo
	Description string
	UserID      string // usuario de registro para el audit trail
}

// MovementResult resultado de un ajuste aplicado.
type MovementResult struct {
	MovementID  string
	NewQuantity int64
	AlertRaised bool
}

// AdjustStock valida la entrada, bloquea la fila de saldo del producto, verifica
// suficiencia para salidas, inserta el movimiento y persiste el nuevo saldo como
// una única unidad atómica. Si el ajuste cruza el umbral mínimo (saldo previo por
// encima, saldo nuevo en o por debajo) registra una alerta para el usuario.
//
// Política de alertas: una sola alerta por cruce de umbral. Ajustes sucesivos que
// mantienen el saldo bajo el mínimo no re-disparan (el sistema original re-enviaba
// en cada llamada y duplicaba alertas).
//
// El despacho de la alerta es posterior al commit y best-effort: un fallo se
// registra en el log pero no revierte el movimiento.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*MovementResult, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Description: input.Description,
		UserID:      input.UserID,
		CreatedAt:   now,
	}

	var (
		prevQuantity int64
		newStock     *entity.Stock
	)

	// Transacción: bloquea la fila de saldo, valida, inserta movimiento y actualiza saldo.
	// Dos salidas concurrentes sobre el mismo producto se serializan en el FOR UPDATE,
	// así la segunda valida contra el saldo ya actualizado.
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		prevQuantity = stock.Quantity

		if input.Type == entity.MovementTypeOut && stock.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}
		stock.Quantity += movement.Signed()
		stock.UpdatedAt = now

		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		newStock = stock
		return nil
	})
	if err != nil {
		if err != domain.ErrInsufficientStock && err != domain.ErrNotFound {
			// Falla de persistencia: dejar contexto suficiente para reponer a mano.
			uc.log.Error().Err(err).
				Str("product_id", input.ProductID).
				Str("type", input.Type).
				Int64("quantity", input.Quantity).
				Str("user_id", input.UserID).
				Msg("ajuste de stock fallido, transacción revertida")
		}
		return nil, err
	}

	result := &MovementResult{
		MovementID:  movement.ID,
		NewQuantity: newStock.Quantity,
	}

	// Cruce de umbral: antes por encima del mínimo, ahora en o por debajo.
	if prevQuantity > newStock.MinimumStock && newStock.IsLow() {
		if _, err := uc.notifier.NotifyLowStock(ctx, product, newStock, input.UserID); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", product.ID).
				Int64("quantity", newStock.Quantity).
				Msg("no se pudo registrar la alerta de stock mínimo")
		} else {
			result.AlertRaised = true
			uc.log.Info().
				Str("product_id", product.ID).
				Str("product", product.Name).
				Int64("quantity", newStock.Quantity).
				Int64("minimum", newStock.MinimumStock).
				Msg("alerta de stock mínimo registrada")
		}
	}
	return result, nil
}
