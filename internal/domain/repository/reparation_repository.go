package repository

import (
	"time"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ReparationFilter filtros para listar reparaciones.
type ReparationFilter struct {
	VehicleID  string
	Status     string
	Technician string // match parcial, case-insensitive
	Search     string // match parcial sobre la descripción
	StartFrom  *time.Time
	EndTo      *time.Time
}

// ReparationRepository puerto de persistencia para reparaciones y sus líneas.
type ReparationRepository interface {
	// Create persiste la reparación con sus líneas de items y servicios.
	Create(rep *entity.Reparation) error
	GetByID(id string) (*entity.Reparation, error)
	// Update reemplaza cabecera y líneas completas de la reparación.
	Update(rep *entity.Reparation) error
	Delete(id string) error
	List(filter ReparationFilter, sortField string, sortDesc bool, limit, offset int) ([]*entity.Reparation, error)
	Count(filter ReparationFilter) (int, error)
}
