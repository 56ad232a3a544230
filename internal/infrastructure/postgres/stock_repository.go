package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldo. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto. Sin fila devuelve saldo cero.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, quantity, minimum_stock, updated_at
		FROM stocks WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.Quantity, &s.MinimumStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila devuelve ErrNotFound: un saldo sintético no dejaría nada bloqueado y
// dos ajustes concurrentes sobre el mismo producto podrían pisarse.
func (r *StockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, quantity, minimum_stock, updated_at
		FROM stocks WHERE product_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.Quantity, &s.MinimumStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo del producto.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (product_id, quantity, minimum_stock, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, minimum_stock = EXCLUDED.minimum_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.Quantity, stock.MinimumStock)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// UpdateMinimum actualiza solo el umbral mínimo del producto.
func (r *StockRepo) UpdateMinimum(productID string, minimum int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stocks SET minimum_stock = $2, updated_at = now() WHERE product_id = $1`,
		productID, minimum,
	)
	if err != nil {
		return fmt.Errorf("update minimum stock: %w", err)
	}
	return nil
}
