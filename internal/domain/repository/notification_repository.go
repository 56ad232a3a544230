package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia de alertas de stock mínimo.
// Las alertas solo mutan su estado de lectura después de creadas.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	CountByUser(userID string) (int, error)
	CountUnreadByUser(userID string) (int, error)
	MarkRead(id string) error
	// MarkAllRead marca como leídas las no leídas del usuario y devuelve cuántas.
	MarkAllRead(userID string) (int64, error)
}
