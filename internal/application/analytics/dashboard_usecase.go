// Package analytics contiene el caso de uso del tablero de resumen del taller.
package analytics

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

const dashboardLowStockItems = 5 // número de items en el widget de stock bajo

// DashboardUseCase genera el resumen operativo del taller: inventario,
// reparaciones activas/completadas, vehículos, proveedores y stock bajo.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// GetSummary construye el DashboardResponse.
//
// Cinco consultas en paralelo:
//  1. InventorySummary + StatusCounts → totales y valor del inventario
//  2. ReparationSummary               → activas; completadas/ingresos/ganancia (30 días)
//  3. LowStockItems(5)                → widget de stock bajo, peor primero
//  4. CountVehicles
//  5. CountSuppliers
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type inventoryResult struct {
		summary *repository.InventorySummary
		counts  map[string]int
		err     error
	}
	type reparationResult struct {
		summary *repository.ReparationSummary
		err     error
	}
	type lowStockResult struct {
		items []*entity.Item
		err   error
	}
	type countResult struct {
		n   int
		err error
	}

	invCh := make(chan inventoryResult, 1)
	repCh := make(chan reparationResult, 1)
	lowCh := make(chan lowStockResult, 1)
	vehCh := make(chan countResult, 1)
	supCh := make(chan countResult, 1)

	go func() {
		summary, err := uc.dashboardRepo.InventorySummary(ctx)
		if err != nil {
			invCh <- inventoryResult{err: err}
			return
		}
		counts, err := uc.dashboardRepo.StatusCounts(ctx)
		invCh <- inventoryResult{summary, counts, err}
	}()
	go func() {
		summary, err := uc.dashboardRepo.ReparationSummary(ctx)
		repCh <- reparationResult{summary, err}
	}()
	go func() {
		items, err := uc.dashboardRepo.LowStockItems(ctx, dashboardLowStockItems)
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountVehicles(ctx)
		vehCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountSuppliers(ctx)
		supCh <- countResult{n, err}
	}()

	inv := <-invCh
	rep := <-repCh
	low := <-lowCh
	veh := <-vehCh
	sup := <-supCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	if rep.err != nil {
		return nil, fmt.Errorf("dashboard: reparaciones: %w", rep.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if veh.err != nil {
		return nil, fmt.Errorf("dashboard: vehículos: %w", veh.err)
	}
	if sup.err != nil {
		return nil, fmt.Errorf("dashboard: proveedores: %w", sup.err)
	}

	lowStock := make([]*dto.ItemResponse, 0, len(low.items))
	for _, it := range low.items {
		lowStock = append(lowStock, dto.ToItemResponse(it))
	}

	return &dto.DashboardResponse{
		Inventory: dto.DashboardInventory{
			TotalItems:     inv.summary.TotalItems,
			TotalQuantity:  inv.summary.TotalQuantity,
			InventoryValue: inv.summary.InventoryValue.Round(2),
			RetailValue:    inv.summary.RetailValue.Round(2),
			StatusCounts:   inv.counts,
		},
		Reparations: dto.DashboardReparation{
			Active:       rep.summary.Active,
			Completed:    rep.summary.Completed,
			TotalRevenue: rep.summary.TotalRevenue.Round(2),
			TotalProfit:  rep.summary.TotalProfit.Round(2),
		},
		Vehicles:  veh.n,
		Suppliers: sup.n,
		LowStock:  lowStock,
	}, nil
}
