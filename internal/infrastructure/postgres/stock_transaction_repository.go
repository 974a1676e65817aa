package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const stockTxColumns = `id, item_id, type, quantity, quantity_before, quantity_after,
	unit_price, total_amount, reparation_id, supplier_id, reference, notes, created_by, created_at`

// StockTransactionRepo implementación del libro de stock sobre PostgreSQL.
// Append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta un asiento en el libro.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + stockTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.Type, tx.Quantity, tx.QuantityBefore, tx.QuantityAfter,
		tx.UnitPrice, tx.TotalAmount, tx.ReparationID, tx.SupplierID,
		tx.Reference, tx.Notes, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + stockTxColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ItemID, &t.Type, &t.Quantity, &t.QuantityBefore, &t.QuantityAfter,
		&t.UnitPrice, &t.TotalAmount, &t.ReparationID, &t.SupplierID,
		&t.Reference, &t.Notes, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return &t, nil
}

// List lista asientos filtrados y paginados.
func (r *StockTransactionRepo) List(filter repository.StockTransactionFilter, sortField string, sortDesc bool, limit, offset int) ([]*entity.StockTransaction, error) {
	where, args := stockTxFilterWhere(filter)
	order := stockTxOrder(sortField, sortDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+stockTxColumns+` FROM stock_transactions %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.ItemID, &t.Type, &t.Quantity, &t.QuantityBefore, &t.QuantityAfter,
			&t.UnitPrice, &t.TotalAmount, &t.ReparationID, &t.SupplierID,
			&t.Reference, &t.Notes, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Count cuenta asientos que cumplen el filtro.
func (r *StockTransactionRepo) Count(filter repository.StockTransactionFilter) (int, error) {
	where, args := stockTxFilterWhere(filter)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stock_transactions `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return n, nil
}

// StatsByType agrega el libro por tipo: número de asientos, unidades y monto.
func (r *StockTransactionRepo) StatsByType() ([]repository.TransactionTypeStats, error) {
	query := `
		SELECT type, count(*), COALESCE(sum(quantity), 0), COALESCE(sum(total_amount), 0)
		FROM stock_transactions
		GROUP BY type
		ORDER BY type`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("stock stats by type: %w", err)
	}
	defer rows.Close()
	var stats []repository.TransactionTypeStats
	for rows.Next() {
		var s repository.TransactionTypeStats
		if err := rows.Scan(&s.Type, &s.Count, &s.TotalQuantity, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan stock stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// stockTxFilterWhere arma la cláusula WHERE dinámica del filtro del libro.
func stockTxFilterWhere(f repository.StockTransactionFilter) (string, []any) {
	where := ""
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.ReparationID != "" {
		add("reparation_id = $%d", f.ReparationID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	return where, args
}

// stockTxOrder resuelve el ORDER BY contra una lista blanca de columnas.
func stockTxOrder(field string, desc bool) string {
	switch field {
	case "created_at", "type", "quantity", "total_amount":
	default:
		field = "created_at"
	}
	if desc {
		return field + " DESC"
	}
	return field + " ASC"
}
