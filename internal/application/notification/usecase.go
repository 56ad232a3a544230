package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verifica que el caso de uso sirve como despachador del motor de ajustes.
var _ inventory.LowStockNotifier = (*NotificationUseCase)(nil)

// NotificationUseCase alertas de stock mínimo: registro, listado y estado de lectura.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// NotifyLowStock registra una alerta para el usuario con snapshot de saldo y umbral
// al momento del disparo. Devuelve el ID de la alerta creada.
func (uc *NotificationUseCase) NotifyLowStock(_ context.Context, product *entity.Product, stock *entity.Stock, userID string) (string, error) {
	n := &entity.Notification{
		ID:           uuid.New().String(),
		UserID:       userID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		CurrentStock: stock.Quantity,
		MinimumStock: stock.MinimumStock,
		Message:      fmt.Sprintf("El stock de %s alcanzó el mínimo (actual %d, mínimo %d)", product.Name, stock.Quantity, stock.MinimumStock),
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// List devuelve las alertas del usuario paginadas, más recientes primero.
func (uc *NotificationUseCase) List(userID string, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	offset := page.DefaultPage()

	notifications, err := uc.repo.ListByUser(userID, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnreadByUser(userID)
	if err != nil {
		return nil, err
	}

	out := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		Unread:        unread,
		Meta:          dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
	for _, n := range notifications {
		out.Notifications = append(out.Notifications, dto.NotificationResponse{
			ID:           n.ID,
			ProductID:    n.ProductID,
			ProductName:  n.ProductName,
			CurrentStock: n.CurrentStock,
			MinimumStock: n.MinimumStock,
			Message:      n.Message,
			Read:         n.IsRead(),
			ReadAt:       n.ReadAt,
			CreatedAt:    n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una alerta como leída. Solo el destinatario puede marcarla:
// si la alerta es de otro usuario devuelve ErrForbidden.
func (uc *NotificationUseCase) MarkRead(id, userID string) error {
	n, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	if n.IsRead() {
		return nil
	}
	return uc.repo.MarkRead(id)
}

// MarkAllRead marca como leídas todas las alertas no leídas del usuario.
func (uc *NotificationUseCase) MarkAllRead(userID string) (int64, error) {
	return uc.repo.MarkAllRead(userID)
}
