package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// CreateServiceRequest body para POST /api/services.
type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Duration    decimal.Decimal `json:"duration"`
	Category    string          `json:"category" validate:"required,oneof=maintenance repair diagnostic bodywork other"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// UpdateServiceRequest body para PUT /api/services/:id.
type UpdateServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Duration    decimal.Decimal `json:"duration"`
	Category    string          `json:"category" validate:"required,oneof=maintenance repair diagnostic bodywork other"`
	Status      string          `json:"status" validate:"required,oneof=active inactive"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// ServiceResponse representación de un servicio en respuestas.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    decimal.Decimal `json:"duration"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToServiceResponse mapea la entidad al DTO de respuesta.
func ToServiceResponse(s *entity.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Category:    s.Category,
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ServiceListResponse listado paginado de servicios.
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Page     PageResponse       `json:"page"`
}
