package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ReparationItemInput línea de repuesto en requests de reparación.
type ReparationItemInput struct {
	ItemID   string `json:"item_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// ReparationServiceInput línea de servicio en requests de reparación.
type ReparationServiceInput struct {
	ServiceID string           `json:"service_id" validate:"required,uuid4"`
	Price     *decimal.Decimal `json:"price" validate:"omitempty"`
	Notes     string           `json:"notes" validate:"max=500"`
}

// CreateReparationRequest body para POST /api/reparations.
type CreateReparationRequest struct {
	VehicleID   string                   `json:"vehicle_id" validate:"required,uuid4"`
	Description string                   `json:"description" validate:"required,min=3,max=2000"`
	Technician  string                   `json:"technician" validate:"max=200"`
	LaborCost   decimal.Decimal          `json:"labor_cost"`
	StartDate   *time.Time               `json:"start_date"`
	Notes       string                   `json:"notes" validate:"max=2000"`
	Items       []ReparationItemInput    `json:"items" validate:"dive"`
	Services    []ReparationServiceInput `json:"services" validate:"dive"`
}

// UpdateReparationRequest body para PUT /api/reparations/:id.
// Las listas reemplazan por completo a las existentes: el stock de las
// líneas anteriores se devuelve y el de las nuevas se consume.
type UpdateReparationRequest struct {
	VehicleID   string                   `json:"vehicle_id" validate:"required,uuid4"`
	Description string                   `json:"description" validate:"required,min=3,max=2000"`
	Technician  string                   `json:"technician" validate:"max=200"`
	LaborCost   decimal.Decimal          `json:"labor_cost"`
	Status      string                   `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	StartDate   *time.Time               `json:"start_date"`
	EndDate     *time.Time               `json:"end_date"`
	Notes       string                   `json:"notes" validate:"max=2000"`
	Items       []ReparationItemInput    `json:"items" validate:"dive"`
	Services    []ReparationServiceInput `json:"services" validate:"dive"`
}

// UpdateReparationStatusRequest body para PATCH /api/reparations/:id/status.
type UpdateReparationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// ReparationItemResponse línea de repuesto con su foto de precios.
type ReparationItemResponse struct {
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name,omitempty"`
	Quantity   int             `json:"quantity"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ReparationServiceResponse línea de servicio con su foto de precio.
type ReparationServiceResponse struct {
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Notes       string          `json:"notes,omitempty"`
}

// ReparationResponse representación completa de una reparación.
type ReparationResponse struct {
	ID           string                       `json:"id"`
	VehicleID    string                       `json:"vehicle_id"`
	Description  string                       `json:"description"`
	Technician   string                       `json:"technician,omitempty"`
	Status       string                       `json:"status"`
	LaborCost    decimal.Decimal              `json:"labor_cost"`
	PartsCost    decimal.Decimal              `json:"parts_cost"`
	ServicesCost decimal.Decimal              `json:"services_cost"`
	TotalProfit  decimal.Decimal              `json:"total_profit"`
	TotalCost    decimal.Decimal              `json:"total_cost"`
	StartDate    time.Time                    `json:"start_date"`
	EndDate      *time.Time                   `json:"end_date,omitempty"`
	Notes        string                       `json:"notes,omitempty"`
	Items        []*ReparationItemResponse    `json:"items"`
	Services     []*ReparationServiceResponse `json:"services"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// ToReparationResponse mapea la entidad al DTO de respuesta.
func ToReparationResponse(r *entity.Reparation) *ReparationResponse {
	items := make([]*ReparationItemResponse, 0, len(r.Items))
	for _, li := range r.Items {
		items = append(items, &ReparationItemResponse{
			ItemID:     li.ItemID,
			ItemName:   li.ItemName,
			Quantity:   li.Quantity,
			BuyPrice:   li.BuyPrice,
			SellPrice:  li.SellPrice,
			TotalPrice: li.TotalPrice,
		})
	}
	services := make([]*ReparationServiceResponse, 0, len(r.Services))
	for _, ls := range r.Services {
		services = append(services, &ReparationServiceResponse{
			ServiceID:   ls.ServiceID,
			ServiceName: ls.ServiceName,
			Price:       ls.Price,
			Notes:       ls.Notes,
		})
	}
	return &ReparationResponse{
		ID:           r.ID,
		VehicleID:    r.VehicleID,
		Description:  r.Description,
		Technician:   r.Technician,
		Status:       r.Status,
		LaborCost:    r.LaborCost,
		PartsCost:    r.PartsCost,
		ServicesCost: r.ServicesCost,
		TotalProfit:  r.TotalProfit,
		TotalCost:    r.TotalCost,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Notes:        r.Notes,
		Items:        items,
		Services:     services,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ReparationListResponse listado paginado de reparaciones.
type ReparationListResponse struct {
	Reparations []*ReparationResponse `json:"reparations"`
	Page        PageResponse          `json:"page"`
}
