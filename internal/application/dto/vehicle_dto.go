package dto

import (
	"time"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// VehicleOwnerInput datos del dueño en requests.
type VehicleOwnerInput struct {
	Name  string `json:"name" validate:"required,min=2,max=200"`
	Phone string `json:"phone" validate:"max=50"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Make         string            `json:"make" validate:"required,min=1,max=100"`
	Model        string            `json:"model" validate:"required,min=1,max=100"`
	Year         int               `json:"year" validate:"required,min=1900,max=2100"`
	LicensePlate string            `json:"license_plate" validate:"required,min=3,max=20"`
	VIN          string            `json:"vin" validate:"max=30"`
	Owner        VehicleOwnerInput `json:"owner" validate:"required"`
	Notes        string            `json:"notes" validate:"max=1000"`
}

// UpdateVehicleRequest body para PUT /api/vehicles/:id.
type UpdateVehicleRequest = CreateVehicleRequest

// VehicleResponse representación de un vehículo en respuestas.
type VehicleResponse struct {
	ID           string            `json:"id"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         int               `json:"year"`
	LicensePlate string            `json:"license_plate"`
	VIN          string            `json:"vin,omitempty"`
	Owner        VehicleOwnerInput `json:"owner"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ToVehicleResponse mapea la entidad al DTO de respuesta.
func ToVehicleResponse(v *entity.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		VIN:          v.VIN,
		Owner: VehicleOwnerInput{
			Name:  v.Owner.Name,
			Phone: v.Owner.Phone,
			Email: v.Owner.Email,
		},
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VehicleListResponse listado paginado de vehículos.
type VehicleListResponse struct {
	Vehicles []*VehicleResponse `json:"vehicles"`
	Page     PageResponse       `json:"page"`
}
