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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, item_code, name, description, category_id, supplier_id,
	buy_price, sell_price, quantity, threshold, status, location, notes, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un item nuevo con su status ya derivado.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemCode, item.Name, item.Description, item.CategoryID, item.SupplierID,
		item.BuyPrice, item.SellPrice, item.Quantity, item.Threshold, item.Status,
		item.Location, item.Notes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getBy(`id = $1`, id)
}

// GetByCode obtiene un item por su código único.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	return r.getBy(`item_code = $1`, code)
}

// GetForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

func (r *ItemRepo) getBy(where string, arg any) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + where
	return r.scanOne(r.q.QueryRow(context.Background(), query, arg), "get item")
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.ItemCode, &it.Name, &it.Description, &it.CategoryID, &it.SupplierID,
		&it.BuyPrice, &it.SellPrice, &it.Quantity, &it.Threshold, &it.Status,
		&it.Location, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

// Update actualiza los campos de catálogo y el status (nunca quantity).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, category_id = $4, supplier_id = $5,
			buy_price = $6, sell_price = $7, threshold = $8, status = $9,
			location = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.CategoryID, item.SupplierID,
		item.BuyPrice, item.SellPrice, item.Threshold, item.Status,
		item.Location, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock persiste la cantidad resultante y el status derivado de ella.
// Único camino de escritura de quantity; se invoca con la fila ya bloqueada.
func (r *ItemRepo) UpdateStock(id string, quantity int, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, quantity, status,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista items con filtros y paginación, más recientes primero.
func (r *ItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	where, args := itemFilterWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+itemColumns+` FROM items %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.ItemCode, &it.Name, &it.Description, &it.CategoryID, &it.SupplierID,
			&it.BuyPrice, &it.SellPrice, &it.Quantity, &it.Threshold, &it.Status,
			&it.Location, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Count cuenta items que cumplen el filtro.
func (r *ItemRepo) Count(filter repository.ItemFilter) (int, error) {
	where, args := itemFilterWhere(filter)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM items `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Delete elimina un item por ID. Sus asientos del libro se conservan.
func (r *ItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// itemFilterWhere arma la cláusula WHERE dinámica del filtro de items.
func itemFilterWhere(f repository.ItemFilter) (string, []any) {
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
	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.SupplierID != "" {
		add("supplier_id = $%d", f.SupplierID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Search != "" {
		add("(name ILIKE $%d OR item_code ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	return where, args
}
