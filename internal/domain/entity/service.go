package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de servicio.
const (
	ServiceCategoryMaintenance = "maintenance"
	ServiceCategoryRepair      = "repair"
	ServiceCategoryDiagnostic  = "diagnostic"
	ServiceCategoryBodywork    = "bodywork"
	ServiceCategoryOther       = "other"
)

// IsValidServiceCategory verifica que la categoría pertenezca a la enumeración.
func IsValidServiceCategory(c string) bool {
	switch c {
	case ServiceCategoryMaintenance, ServiceCategoryRepair,
		ServiceCategoryDiagnostic, ServiceCategoryBodywork, ServiceCategoryOther:
		return true
	}
	return false
}

// Service servicio de mano de obra ofrecido por el taller.
// Price es el precio de catálogo; las reparaciones guardan su propia foto de precio.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    decimal.Decimal // duración estimada en horas
	Category    string
	Status      string // active | inactive
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
