package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reparación.
const (
	ReparationStatusPending    = "pending"
	ReparationStatusInProgress = "in_progress"
	ReparationStatusCompleted  = "completed"
	ReparationStatusCancelled  = "cancelled"
)

// IsValidReparationStatus verifica que el estado pertenezca a la enumeración.
func IsValidReparationStatus(s string) bool {
	switch s {
	case ReparationStatusPending, ReparationStatusInProgress,
		ReparationStatusCompleted, ReparationStatusCancelled:
		return true
	}
	return false
}

// ReparationItem línea de repuesto usada en una reparación.
// BuyPrice y SellPrice son fotos del precio del catálogo al momento de uso:
// las facturas históricas no cambian si el catálogo cambia después.
type ReparationItem struct {
	ItemID     string
	ItemName   string // denormalizado al momento de uso, para listados y factura
	Quantity   int
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	TotalPrice decimal.Decimal // SellPrice × Quantity, recalculado en cada guardado
}

// ReparationService línea de mano de obra/servicio con precio al momento de uso.
type ReparationService struct {
	ServiceID   string
	ServiceName string // denormalizado al momento de uso
	Price       decimal.Decimal
	Notes       string
}

// Reparation representa un trabajo de reparación sobre un vehículo.
// Los totales derivados se recalculan con RecalculateTotals en cada guardado.
type Reparation struct {
	ID           string
	VehicleID    string
	Description  string
	Technician   string
	Status       string
	StartDate    time.Time
	EndDate      *time.Time
	Items        []ReparationItem
	Services     []ReparationService
	LaborCost    decimal.Decimal
	PartsCost    decimal.Decimal // Σ sellPrice × quantity
	ServicesCost decimal.Decimal // Σ price
	TotalProfit  decimal.Decimal // Σ (sellPrice - buyPrice) × quantity
	TotalCost    decimal.Decimal // PartsCost + ServicesCost + LaborCost
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecalculateTotals recalcula TotalPrice de cada línea y los totales derivados
// a partir de las fotos de precio almacenadas, nunca del catálogo actual.
func (r *Reparation) RecalculateTotals() {
	partsCost := decimal.Zero
	totalProfit := decimal.Zero
	servicesCost := decimal.Zero

	for i := range r.Items {
		line := &r.Items[i]
		qty := decimal.NewFromInt(int64(line.Quantity))
		line.TotalPrice = line.SellPrice.Mul(qty)
		partsCost = partsCost.Add(line.TotalPrice)
		totalProfit = totalProfit.Add(line.SellPrice.Sub(line.BuyPrice).Mul(qty))
	}
	for _, svc := range r.Services {
		servicesCost = servicesCost.Add(svc.Price)
	}

	r.PartsCost = partsCost
	r.ServicesCost = servicesCost
	r.TotalProfit = totalProfit
	r.TotalCost = partsCost.Add(servicesCost).Add(r.LaborCost)
}

// IsTerminal indica si el estado no admite más transiciones de trabajo.
func (r *Reparation) IsTerminal() bool {
	return r.Status == ReparationStatusCompleted || r.Status == ReparationStatusCancelled
}
