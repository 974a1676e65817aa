package postgres

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de agregación para el tablero (read-only).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar el pool (no requiere tx).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// InventorySummary totales y valor del inventario a precio de compra y de venta.
func (r *DashboardRepo) InventorySummary(ctx context.Context) (*repository.InventorySummary, error) {
	query := `
		SELECT count(*),
			COALESCE(sum(quantity), 0),
			COALESCE(sum(quantity * buy_price), 0),
			COALESCE(sum(quantity * sell_price), 0)
		FROM items`
	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, query).Scan(&s.TotalItems, &s.TotalQuantity, &s.InventoryValue, &s.RetailValue)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &s, nil
}

// StatusCounts cuántos items hay por status de stock.
func (r *DashboardRepo) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{
		entity.ItemStatusAvailable:  0,
		entity.ItemStatusLowStock:   0,
		entity.ItemStatusOutOfStock: 0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ReparationSummary activas, y completadas/ingresos/ganancia de los últimos 30 días.
func (r *DashboardRepo) ReparationSummary(ctx context.Context) (*repository.ReparationSummary, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE status IN ('pending', 'in_progress')),
			count(*) FILTER (WHERE status = 'completed' AND end_date >= now() - interval '30 days'),
			COALESCE(sum(total_cost) FILTER (WHERE status = 'completed' AND end_date >= now() - interval '30 days'), 0),
			COALESCE(sum(total_profit) FILTER (WHERE status = 'completed' AND end_date >= now() - interval '30 days'), 0)
		FROM reparations`
	var s repository.ReparationSummary
	err := r.q.QueryRow(ctx, query).Scan(&s.Active, &s.Completed, &s.TotalRevenue, &s.TotalProfit)
	if err != nil {
		return nil, fmt.Errorf("reparation summary: %w", err)
	}
	return &s, nil
}

// LowStockItems items con stock bajo o agotado, peor primero (agotados al frente).
func (r *DashboardRepo) LowStockItems(ctx context.Context, limit int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE status IN ('low_stock', 'out_of_stock')
		ORDER BY quantity ASC, name
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
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
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// CountVehicles total de vehículos registrados.
func (r *DashboardRepo) CountVehicles(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM vehicles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

// CountSuppliers total de proveedores registrados.
func (r *DashboardRepo) CountSuppliers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}
