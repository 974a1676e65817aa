package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para vehículos de clientes.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registra un vehículo. La placa es única.
func (uc *VehicleUseCase) Create(in *dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	existing, _ := uc.repo.GetByPlate(in.LicensePlate)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	v := &entity.Vehicle{
		ID:           uuid.New().String(),
		Make:         in.Make,
		Model:        in.Model,
		Year:         in.Year,
		LicensePlate: in.LicensePlate,
		VIN:          in.VIN,
		Owner: entity.VehicleOwner{
			Name:  in.Owner.Name,
			Phone: in.Owner.Phone,
			Email: in.Owner.Email,
		},
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(v); err != nil {
		return nil, err
	}
	return dto.ToVehicleResponse(v), nil
}

// Get obtiene un vehículo por ID.
func (uc *VehicleUseCase) Get(id string) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToVehicleResponse(v), nil
}

// Update actualiza un vehículo. La placa sigue siendo única.
func (uc *VehicleUseCase) Update(id string, in *dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.LicensePlate != v.LicensePlate {
		existing, _ := uc.repo.GetByPlate(in.LicensePlate)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	v.Make = in.Make
	v.Model = in.Model
	v.Year = in.Year
	v.LicensePlate = in.LicensePlate
	v.VIN = in.VIN
	v.Owner = entity.VehicleOwner{Name: in.Owner.Name, Phone: in.Owner.Phone, Email: in.Owner.Email}
	v.Notes = in.Notes
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(v); err != nil {
		return nil, err
	}
	return dto.ToVehicleResponse(v), nil
}

// List lista vehículos con búsqueda y paginación.
func (uc *VehicleUseCase) List(filter repository.VehicleFilter, limit, offset int) (*dto.VehicleListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	vehicles := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		vehicles = append(vehicles, dto.ToVehicleResponse(v))
	}
	return &dto.VehicleListResponse{
		Vehicles: vehicles,
		Page:     dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un vehículo por ID.
func (uc *VehicleUseCase) Delete(id string) error {
	if _, err := uc.repo.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
