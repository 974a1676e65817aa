package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
// ItemCode es opcional: si no viene, se genera uno a partir del nombre.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	ItemCode    string          `json:"item_code" validate:"omitempty,min=3,max=50"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  string          `json:"category_id" validate:"required,uuid4"`
	SupplierID  string          `json:"supplier_id" validate:"omitempty,uuid4"`
	BuyPrice    decimal.Decimal `json:"buy_price" validate:"required"`
	SellPrice   decimal.Decimal `json:"sell_price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Threshold   *int            `json:"threshold" validate:"omitempty,min=0"`
	Location    string          `json:"location" validate:"max=100"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// UpdateItemRequest body para PUT /api/items/:id.
// No incluye quantity: el stock solo se mueve por el libro de transacciones.
type UpdateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  string          `json:"category_id" validate:"required,uuid4"`
	SupplierID  string          `json:"supplier_id" validate:"omitempty,uuid4"`
	BuyPrice    decimal.Decimal `json:"buy_price" validate:"required"`
	SellPrice   decimal.Decimal `json:"sell_price" validate:"required"`
	Threshold   *int            `json:"threshold" validate:"omitempty,min=0"`
	Location    string          `json:"location" validate:"max=100"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// ItemResponse representación de un item en respuestas.
type ItemResponse struct {
	ID            string          `json:"id"`
	ItemCode      string          `json:"item_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Quantity      int             `json:"quantity"`
	Threshold     int             `json:"threshold"`
	Status        string          `json:"status"`
	Location      string          `json:"location,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToItemResponse mapea la entidad al DTO de respuesta.
func ToItemResponse(it *entity.Item) *ItemResponse {
	return &ItemResponse{
		ID:            it.ID,
		ItemCode:      it.ItemCode,
		Name:          it.Name,
		Description:   it.Description,
		CategoryID:    it.CategoryID,
		SupplierID:    it.SupplierID,
		BuyPrice:      it.BuyPrice,
		SellPrice:     it.SellPrice,
		Quantity:      it.Quantity,
		Threshold:     it.Threshold,
		Status:        it.Status,
		Location:      it.Location,
		Notes:         it.Notes,
		ProfitMargin:  it.ProfitMargin(),
		MarginPercent: it.ProfitMarginPercent(),
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []*ItemResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
