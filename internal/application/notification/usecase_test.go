package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// memNotificationRepo repositorio en memoria con orden de inserción preservado.
type memNotificationRepo struct {
	items []*entity.Notification
}

func (r *memNotificationRepo) Create(n *entity.Notification) error {
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *memNotificationRepo) GetByID(id string) (*entity.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memNotificationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotificationRepo) CountByUser(userID string) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) CountUnreadByUser(userID string) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkRead(id string) error {
	for _, n := range r.items {
		if n.ID == id && n.ReadAt == nil {
			now := time.Now()
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkAllRead(userID string) (int64, error) {
	var marked int64
	now := time.Now()
	for _, n := range r.items {
		if n.UserID == userID && n.ReadAt == nil {
			n.ReadAt = &now
			marked++
		}
	}
	return marked, nil
}

const (
	ownerID = "user-owner"
	otherID = "user-other"
)

func notifyFixture(t *testing.T) (*notification.NotificationUseCase, *memNotificationRepo, string) {
	t.Helper()
	repo := &memNotificationRepo{}
	uc := notification.NewNotificationUseCase(repo)

	product := &entity.Product{ID: "p1", Name: "Tornillo 3/8"}
	stock := &entity.Stock{ProductID: "p1", Quantity: 4, MinimumStock: 5}
	id, err := uc.NotifyLowStock(context.Background(), product, stock, ownerID)
	require.NoError(t, err)
	return uc, repo, id
}

func TestNotifyLowStock_GuardaSnapshot(t *testing.T) {
	_, repo, id := notifyFixture(t)

	n, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, n)

	assert.Equal(t, ownerID, n.UserID)
	assert.Equal(t, "Tornillo 3/8", n.ProductName, "la alerta guarda snapshot del nombre")
	assert.Equal(t, int64(4), n.CurrentStock)
	assert.Equal(t, int64(5), n.MinimumStock)
	assert.Contains(t, n.Message, "Tornillo 3/8")
	assert.False(t, n.IsRead())
}

func TestList_PaginaYContadorDeNoLeidas(t *testing.T) {
	uc, _, _ := notifyFixture(t)

	// Segunda alerta para el mismo usuario.
	_, err := uc.NotifyLowStock(context.Background(),
		&entity.Product{ID: "p2", Name: "Tuerca"},
		&entity.Stock{ProductID: "p2", Quantity: 1, MinimumStock: 3}, ownerID)
	require.NoError(t, err)

	out, err := uc.List(ownerID, dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, out.Notifications, 2)
	assert.Equal(t, "Tuerca", out.Notifications[0].ProductName, "más recientes primero")
	assert.Equal(t, 2, out.Unread)
	assert.Equal(t, 2, out.Meta.Total)
}

func TestMarkRead_SoloElDestinatario(t *testing.T) {
	uc, repo, id := notifyFixture(t)

	err := uc.MarkRead(id, otherID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "otro usuario no puede marcarla")

	n, _ := repo.GetByID(id)
	assert.False(t, n.IsRead(), "la alerta debe seguir sin leer")

	require.NoError(t, uc.MarkRead(id, ownerID))
	n, _ = repo.GetByID(id)
	assert.True(t, n.IsRead())
}

func TestMarkRead_Idempotente(t *testing.T) {
	uc, repo, id := notifyFixture(t)

	require.NoError(t, uc.MarkRead(id, ownerID))
	n, _ := repo.GetByID(id)
	firstReadAt := n.ReadAt

	require.NoError(t, uc.MarkRead(id, ownerID), "re-marcar una leída no es error")
	n, _ = repo.GetByID(id)
	assert.Equal(t, firstReadAt, n.ReadAt, "el timestamp de lectura no debe cambiar")
}

func TestMarkRead_NoExiste(t *testing.T) {
	uc, _, _ := notifyFixture(t)

	err := uc.MarkRead("no-existe", ownerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkAllRead_SoloLasDelUsuario(t *testing.T) {
	uc, _, _ := notifyFixture(t)
	ctx := context.Background()

	// Otra para el owner y una para un usuario distinto.
	_, err := uc.NotifyLowStock(ctx, &entity.Product{ID: "p2", Name: "Tuerca"},
		&entity.Stock{ProductID: "p2", Quantity: 1, MinimumStock: 3}, ownerID)
	require.NoError(t, err)
	_, err = uc.NotifyLowStock(ctx, &entity.Product{ID: "p3", Name: "Clavo"},
		&entity.Stock{ProductID: "p3", Quantity: 0, MinimumStock: 2}, otherID)
	require.NoError(t, err)

	marked, err := uc.MarkAllRead(ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	out, err := uc.List(otherID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Unread, "las alertas de otros usuarios no se tocan")

	// Repetir cuando ya no queda nada por marcar devuelve cero.
	marked, err = uc.MarkAllRead(ownerID)
	require.NoError(t, err)
	assert.Zero(t, marked)
}
