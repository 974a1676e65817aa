package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// InventorySummary agregados globales del inventario.
type InventorySummary struct {
	TotalItems     int
	TotalQuantity  int
	InventoryValue decimal.Decimal // sum(quantity * buy_price)
	RetailValue    decimal.Decimal // sum(quantity * sell_price)
}

// ReparationSummary agregados de reparaciones. Las cifras de completadas
// cubren los últimos 30 días; Active no tiene ventana.
type ReparationSummary struct {
	Active       int // pending + in_progress
	Completed    int
	TotalRevenue decimal.Decimal // sum(total_cost) de completadas
	TotalProfit  decimal.Decimal // sum(total_profit) de completadas
}

// DashboardRepository consultas de agregación para el tablero.
type DashboardRepository interface {
	InventorySummary(ctx context.Context) (*InventorySummary, error)
	// StatusCounts devuelve cuántos items hay por status de stock.
	StatusCounts(ctx context.Context) (map[string]int, error)
	ReparationSummary(ctx context.Context) (*ReparationSummary, error)
	// LowStockItems devuelve los items con stock bajo o agotado, peor primero.
	LowStockItems(ctx context.Context, limit int) ([]*entity.Item, error)
	CountVehicles(ctx context.Context) (int, error)
	CountSuppliers(ctx context.Context) (int, error)
}
