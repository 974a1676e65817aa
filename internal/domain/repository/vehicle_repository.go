package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// VehicleFilter filtros para listar vehículos.
type VehicleFilter struct {
	Search string // match parcial sobre placa, marca, modelo u owner
}

// VehicleRepository puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(v *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetByPlate(plate string) (*entity.Vehicle, error)
	Update(v *entity.Vehicle) error
	Delete(id string) error
	List(filter VehicleFilter, limit, offset int) ([]*entity.Vehicle, error)
	Count(filter VehicleFilter) (int, error)
}
