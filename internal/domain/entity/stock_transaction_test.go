package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

func TestTransactionTypePredicates(t *testing.T) {
	assert.True(t, entity.IsValidTransactionType(entity.TransactionTypePurchase))
	assert.True(t, entity.IsValidTransactionType(entity.TransactionTypeReparationReturn))
	assert.False(t, entity.IsValidTransactionType("transfer"))

	// Dirección por tipo: purchase y reparation_return suman, el resto resta
	assert.True(t, entity.IsAdditiveType(entity.TransactionTypePurchase))
	assert.True(t, entity.IsAdditiveType(entity.TransactionTypeReparationReturn))
	assert.False(t, entity.IsAdditiveType(entity.TransactionTypeAdjustment),
		"adjustment resuelve su dirección por el signo, no por el tipo")

	assert.True(t, entity.IsSubtractiveType(entity.TransactionTypeSale))
	assert.True(t, entity.IsSubtractiveType(entity.TransactionTypeDamage))
	assert.True(t, entity.IsSubtractiveType(entity.TransactionTypeReturnToSupplier))
	assert.False(t, entity.IsSubtractiveType(entity.TransactionTypePurchase))

	// Solo algunos tipos pueden entrar como asiento manual
	assert.True(t, entity.IsManualEntryType(entity.TransactionTypePurchase))
	assert.True(t, entity.IsManualEntryType(entity.TransactionTypeAdjustment))
	assert.False(t, entity.IsManualEntryType(entity.TransactionTypeReparationUse))
	assert.False(t, entity.IsManualEntryType(entity.TransactionTypeSale))
}

func TestStockTransaction_SignedQuantity(t *testing.T) {
	in := &entity.StockTransaction{Quantity: 4, QuantityBefore: 10, QuantityAfter: 14}
	assert.Equal(t, 4, in.SignedQuantity())

	out := &entity.StockTransaction{Quantity: 4, QuantityBefore: 10, QuantityAfter: 6}
	assert.Equal(t, -4, out.SignedQuantity())
}

func TestStockTransaction_IsConsistent(t *testing.T) {
	base := entity.StockTransaction{
		Quantity:       3,
		QuantityBefore: 10,
		QuantityAfter:  7,
		UnitPrice:      decimal.NewFromInt(20),
		TotalAmount:    decimal.NewFromInt(60),
	}
	assert.True(t, base.IsConsistent())

	additive := base
	additive.QuantityAfter = 13
	assert.True(t, additive.IsConsistent(), "delta +Quantity también es consistente")

	badDelta := base
	badDelta.QuantityAfter = 8
	assert.False(t, badDelta.IsConsistent(), "delta distinto de ±Quantity es inconsistente")

	badAmount := base
	badAmount.TotalAmount = decimal.NewFromInt(61)
	assert.False(t, badAmount.IsConsistent(), "TotalAmount debe ser UnitPrice × Quantity")

	zeroQty := base
	zeroQty.Quantity = 0
	assert.False(t, zeroQty.IsConsistent(), "la magnitud debe ser positiva")
}
