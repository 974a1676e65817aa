package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen para GET /api/dashboard.
type DashboardResponse struct {
	Inventory   DashboardInventory  `json:"inventory"`
	Reparations DashboardReparation `json:"reparations"`
	Vehicles    int                 `json:"vehicles"`
	Suppliers   int                 `json:"suppliers"`
	LowStock    []*ItemResponse     `json:"low_stock"`
}

// DashboardInventory agregados de inventario.
type DashboardInventory struct {
	TotalItems     int             `json:"total_items"`
	TotalQuantity  int             `json:"total_quantity"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	RetailValue    decimal.Decimal `json:"retail_value"`
	StatusCounts   map[string]int  `json:"status_counts"`
}

// DashboardReparation agregados de reparaciones.
type DashboardReparation struct {
	Active       int             `json:"active"`
	Completed    int             `json:"completed"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}
