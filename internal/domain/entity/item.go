package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un Item según cantidad y umbral.
const (
	ItemStatusAvailable  = "available"
	ItemStatusLowStock   = "low_stock"
	ItemStatusOutOfStock = "out_of_stock"
)

// DefaultThreshold umbral de stock bajo por defecto al crear un item.
const DefaultThreshold = 5

// Item representa un repuesto o producto almacenado en el taller.
// Quantity solo se modifica a través del motor de stock (movimientos);
// Status es función pura de (Quantity, Threshold) y se recalcula en cada mutación.
type Item struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	BuyPrice    decimal.Decimal // precio de compra al proveedor
	SellPrice   decimal.Decimal // precio cobrado al cliente en reparaciones
	CategoryID  string
	SupplierID  string
	Threshold   int
	Status      string
	ItemCode    string // único; se genera si viene vacío
	Location    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveStatus calcula el estado de stock a partir de la cantidad resultante y el umbral.
// Función pura y total: quantity <= 0 -> out_of_stock; quantity <= threshold -> low_stock
// (la frontera quantity == threshold es low_stock); si no -> available.
func DeriveStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return ItemStatusOutOfStock
	case quantity <= threshold:
		return ItemStatusLowStock
	default:
		return ItemStatusAvailable
	}
}

// RefreshStatus recalcula Status leyendo la cantidad y el umbral actuales del item.
// Debe invocarse en todo camino de código que cambie Quantity o Threshold.
func (i *Item) RefreshStatus() {
	i.Status = DeriveStatus(i.Quantity, i.Threshold)
}

// ProfitMargin margen por unidad (sellPrice - buyPrice).
func (i *Item) ProfitMargin() decimal.Decimal {
	return i.SellPrice.Sub(i.BuyPrice)
}

// ProfitMarginPercent margen porcentual sobre el precio de compra; 0 si buyPrice es 0.
func (i *Item) ProfitMarginPercent() decimal.Decimal {
	if i.BuyPrice.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return i.SellPrice.Sub(i.BuyPrice).Div(i.BuyPrice).Mul(hundred).Round(2)
}

// GenerateItemCode genera un código único basado en el nombre y el timestamp actual
// (formato ITEM-XXX-NNNNNN). Se usa cuando el item se crea sin código.
func GenerateItemCode(name string, now time.Time) string {
	prefix := strings.ToUpper(name)
	prefix = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, prefix)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix == "" {
		prefix = "GEN"
	}
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return fmt.Sprintf("ITEM-%s-%s", prefix, ms[len(ms)-6:])
}
