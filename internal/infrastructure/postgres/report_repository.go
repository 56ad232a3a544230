package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el ledger para reportes y dashboard.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const stockReportSelect = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    c.name                                        AS category_name,
	    COALESCE(s.quantity, 0)                       AS quantity,
	    COALESCE(s.minimum_stock, 0)                  AS minimum_stock,
	    COALESCE((SELECT SUM(m.quantity) FROM stock_movements m
	              WHERE m.product_id = p.id AND m.type = 'in'), 0)  AS total_in,
	    COALESCE((SELECT SUM(m.quantity) FROM stock_movements m
	              WHERE m.product_id = p.id AND m.type = 'out'), 0) AS total_out
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN stocks s ON s.product_id = p.id
	ORDER BY p.code ASC`

// StockReportRows devuelve el reporte de stock completo: saldo actual y totales
// históricos por dirección como suma de cantidades.
func (r *ReportRepo) StockReportRows(ctx context.Context) ([]repository.StockReportRow, error) {
	rows, err := r.pool.Query(ctx, stockReportSelect)
	if err != nil {
		return nil, fmt.Errorf("reports.StockReportRows: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

// StockOverviewRows versión paginada del mismo select, para el listado de stock.
func (r *ReportRepo) StockOverviewRows(ctx context.Context, limit, offset int) ([]repository.StockReportRow, error) {
	query := stockReportSelect + " LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("reports.StockOverviewRows: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

func scanStockRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]repository.StockReportRow, error) {
	var list []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(
			&row.ProductID, &row.Code, &row.Name, &row.CategoryName,
			&row.Quantity, &row.MinimumStock, &row.TotalIn, &row.TotalOut,
		); err != nil {
			return nil, fmt.Errorf("scan stock report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// MovementReportRows devuelve movimientos con producto, categoría y usuario,
// más recientes primero. Fechas inclusivas; type filtra in/out.
func (r *ReportRepo) MovementReportRows(ctx context.Context, filter repository.MovementReportFilter) ([]repository.MovementReportRow, error) {
	query := `
	SELECT
	    m.id,
	    p.code,
	    p.name,
	    c.name          AS category_name,
	    m.type,
	    m.quantity,
	    m.description,
	    COALESCE(u.name, '') AS user_name,
	    m.created_at
	FROM stock_movements m
	JOIN products   p ON p.id = m.product_id
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = m.user_id
	WHERE 1=1`
	var args []any
	pos := 1
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND m.created_at::date >= $%d::date", pos)
		args = append(args, *filter.StartDate)
		pos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND m.created_at::date <= $%d::date", pos)
		args = append(args, *filter.EndDate)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	query += " ORDER BY m.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.MovementReportRows: %w", err)
	}
	defer rows.Close()

	var list []repository.MovementReportRow
	for rows.Next() {
		var row repository.MovementReportRow
		if err := rows.Scan(
			&row.ID, &row.ProductCode, &row.ProductName, &row.CategoryName,
			&row.Type, &row.Quantity, &row.Description, &row.UserName, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockRows devuelve productos con quantity <= minimum_stock, ordenados por código.
func (r *ReportRepo) LowStockRows(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    c.name       AS category_name,
	    s.quantity,
	    s.minimum_stock
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN stocks s ON s.product_id = p.id
	WHERE s.quantity <= s.minimum_stock
	ORDER BY p.code ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStockRows: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.ProductID, &row.Code, &row.Name, &row.CategoryName,
			&row.Quantity, &row.MinimumStock,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountProducts cuenta los productos registrados.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM products`)
}

// CountCategories cuenta las categorías registradas.
func (r *ReportRepo) CountCategories(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM categories`)
}

// CountLowStock cuenta los productos en o bajo su umbral mínimo.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM stocks WHERE quantity <= minimum_stock`)
}

func (r *ReportRepo) countQuery(ctx context.Context, query string) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("reports count: %w", err)
	}
	return total, nil
}
