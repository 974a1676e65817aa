package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionTypePurchase         = "purchase"
	TransactionTypeSale             = "sale"
	TransactionTypeAdjustment       = "adjustment"
	TransactionTypeReparationUse    = "reparation_use"
	TransactionTypeReparationReturn = "reparation_return"
	TransactionTypeDamage           = "damage"
	TransactionTypeReturnToSupplier = "return_to_supplier"
)

// IsValidTransactionType verifica que el tipo pertenezca a la enumeración.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeAdjustment,
		TransactionTypeReparationUse, TransactionTypeReparationReturn,
		TransactionTypeDamage, TransactionTypeReturnToSupplier:
		return true
	}
	return false
}

// IsAdditiveType tipos que suman cantidad: purchase y reparation_return.
// adjustment resuelve su dirección por el signo de la cantidad pedida, no aquí.
func IsAdditiveType(t string) bool {
	return t == TransactionTypePurchase || t == TransactionTypeReparationReturn
}

// IsSubtractiveType tipos que restan cantidad: sale, reparation_use, damage, return_to_supplier.
func IsSubtractiveType(t string) bool {
	switch t {
	case TransactionTypeSale, TransactionTypeReparationUse,
		TransactionTypeDamage, TransactionTypeReturnToSupplier:
		return true
	}
	return false
}

// IsManualEntryType tipos permitidos para asientos manuales de un operador
// (el resto solo se crea como efecto de otra operación).
func IsManualEntryType(t string) bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeAdjustment,
		TransactionTypeDamage, TransactionTypeReturnToSupplier:
		return true
	}
	return false
}

// StockTransaction es el asiento inmutable de un movimiento de stock (libro mayor append-only).
// Invariante: QuantityAfter = QuantityBefore ± Quantity según la dirección del tipo,
// y TotalAmount = UnitPrice × Quantity. Nunca se modifica ni se borra.
type StockTransaction struct {
	ID             string
	ItemID         string
	Type           string
	Quantity       int // magnitud, siempre > 0
	QuantityBefore int
	QuantityAfter  int
	UnitPrice      decimal.Decimal
	TotalAmount    decimal.Decimal
	ReparationID   string // opcional: reparación asociada (reparation_use / reparation_return)
	SupplierID     string // opcional: proveedor en compras / devoluciones
	Reference      string // número de factura, orden de compra u otra referencia
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
}

// SignedQuantity cantidad con signo según la dirección real del asiento.
func (t *StockTransaction) SignedQuantity() int {
	return t.QuantityAfter - t.QuantityBefore
}

// IsConsistent verifica los invariantes del asiento: magnitud positiva,
// delta before/after igual a ±Quantity y TotalAmount = UnitPrice × Quantity.
func (t *StockTransaction) IsConsistent() bool {
	if t.Quantity <= 0 {
		return false
	}
	delta := t.QuantityAfter - t.QuantityBefore
	if delta != t.Quantity && delta != -t.Quantity {
		return false
	}
	expected := t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
	return t.TotalAmount.Equal(expected)
}
