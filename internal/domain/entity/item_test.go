package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		threshold int
		want      string
	}{
		{"cantidad negativa es agotado", -3, 5, entity.ItemStatusOutOfStock},
		{"cantidad cero es agotado", 0, 5, entity.ItemStatusOutOfStock},
		{"por debajo del umbral es stock bajo", 3, 5, entity.ItemStatusLowStock},
		{"en el umbral exacto es stock bajo", 5, 5, entity.ItemStatusLowStock},
		{"por encima del umbral es disponible", 6, 5, entity.ItemStatusAvailable},
		{"umbral cero con stock es disponible", 1, 0, entity.ItemStatusAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.DeriveStatus(tc.quantity, tc.threshold))
		})
	}
}

func TestRefreshStatus(t *testing.T) {
	it := &entity.Item{Quantity: 10, Threshold: 5, Status: entity.ItemStatusOutOfStock}
	it.RefreshStatus()
	assert.Equal(t, entity.ItemStatusAvailable, it.Status)

	it.Quantity = 0
	it.RefreshStatus()
	assert.Equal(t, entity.ItemStatusOutOfStock, it.Status)
}

func TestProfitMarginPercent(t *testing.T) {
	it := &entity.Item{
		BuyPrice:  decimal.NewFromInt(100),
		SellPrice: decimal.NewFromInt(150),
	}
	assert.True(t, decimal.NewFromInt(50).Equal(it.ProfitMargin()))
	assert.True(t, decimal.NewFromInt(50).Equal(it.ProfitMarginPercent()),
		"150 sobre 100 debe dar 50%%")

	// buyPrice cero no debe dividir por cero
	it.BuyPrice = decimal.Zero
	assert.True(t, it.ProfitMarginPercent().IsZero())
}

func TestGenerateItemCode(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	code := entity.GenerateItemCode("Filtro de aceite", now)
	assert.True(t, strings.HasPrefix(code, "ITEM-FIL-"), "prefijo de 3 letras del nombre: %s", code)
	assert.Len(t, code, len("ITEM-FIL-")+6, "sufijo de 6 dígitos del timestamp")

	// Nombre sin caracteres alfanuméricos cae al prefijo genérico
	code = entity.GenerateItemCode("ñ---", now)
	assert.True(t, strings.HasPrefix(code, "ITEM-GEN-"), "nombre no mapeable usa GEN: %s", code)
}
