package inventory

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockHistoryUseCase consulta de solo lectura del historial de movimientos de un producto.
type StockHistoryUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewStockHistoryUseCase construye el caso de uso.
func NewStockHistoryUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *StockHistoryUseCase {
	return &StockHistoryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// GetHistory devuelve los movimientos de un producto paginados, más recientes primero.
// from/to acotan por fecha de creación (inclusivo); movType filtra in/out si no es vacío.
func (uc *StockHistoryUseCase) GetHistory(productID string, from, to *time.Time, movType string, page dto.PageRequest) (*dto.MovementHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	offset := page.DefaultPage()

	movements, err := uc.movRepo.ListByProduct(productID, from, to, movType, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	// El total respeta los mismos filtros que el listado para que la paginación cierre.
	total, err := uc.movRepo.CountByProduct(productID, from, to, movType)
	if err != nil {
		return nil, err
	}

	out := &dto.MovementHistoryResponse{
		ProductID: productID,
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Meta:      dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Description: m.Description,
			UserID:      m.UserID,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
