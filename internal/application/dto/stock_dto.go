package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// CreateStockEntryRequest body para POST /api/stock/transactions.
// Solo admite los tipos manuales; los tipos de reparación los emite el
// ciclo de vida de la reparación y sale nunca se crea a mano.
type CreateStockEntryRequest struct {
	ItemID     string           `json:"item_id" validate:"required,uuid4"`
	Type       string           `json:"type" validate:"required,oneof=purchase adjustment damage return_to_supplier"`
	Quantity   int              `json:"quantity" validate:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price" validate:"omitempty"`
	SupplierID string           `json:"supplier_id" validate:"omitempty,uuid4"`
	Reference  string           `json:"reference" validate:"max=200"`
	Notes      string           `json:"notes" validate:"max=1000"`
}

// StockTransactionResponse asiento del libro de stock en respuestas.
type StockTransactionResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"`
	Quantity       int             `json:"quantity"`
	QuantityBefore int             `json:"quantity_before"`
	QuantityAfter  int             `json:"quantity_after"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ReparationID   string          `json:"reparation_id,omitempty"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToStockTransactionResponse mapea la entidad al DTO de respuesta.
func ToStockTransactionResponse(tx *entity.StockTransaction) *StockTransactionResponse {
	return &StockTransactionResponse{
		ID:             tx.ID,
		ItemID:         tx.ItemID,
		Type:           tx.Type,
		Quantity:       tx.Quantity,
		QuantityBefore: tx.QuantityBefore,
		QuantityAfter:  tx.QuantityAfter,
		UnitPrice:      tx.UnitPrice,
		TotalAmount:    tx.TotalAmount,
		ReparationID:   tx.ReparationID,
		SupplierID:     tx.SupplierID,
		Reference:      tx.Reference,
		Notes:          tx.Notes,
		CreatedBy:      tx.CreatedBy,
		CreatedAt:      tx.CreatedAt,
	}
}

// StockEntryResponse resultado de registrar un movimiento manual:
// el asiento creado y el item con su stock/status ya actualizados.
type StockEntryResponse struct {
	Transaction *StockTransactionResponse `json:"transaction"`
	Item        *ItemResponse             `json:"item"`
}

// StockTransactionListResponse listado paginado de asientos.
type StockTransactionListResponse struct {
	Transactions []*StockTransactionResponse `json:"transactions"`
	Page         PageResponse                `json:"page"`
}

// TransactionTypeStatsResponse agregado por tipo para GET /api/stock/stats.
type TransactionTypeStatsResponse struct {
	Type          string          `json:"type"`
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
