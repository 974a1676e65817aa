package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// ServiceUseCase casos de uso CRUD para servicios del taller.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create registra un servicio, activo por defecto.
func (uc *ServiceUseCase) Create(in *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Price.IsNegative() || in.Duration.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Service{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Category:    in.Category,
		Status:      "active",
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return dto.ToServiceResponse(s), nil
}

// Get obtiene un servicio por ID.
func (uc *ServiceUseCase) Get(id string) (*dto.ServiceResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToServiceResponse(s), nil
}

// Update actualiza un servicio. El cambio de precio no afecta reparaciones
// ya guardadas: ellas conservan su foto de precio.
func (uc *ServiceUseCase) Update(id string, in *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Price.IsNegative() || in.Duration.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.Name = in.Name
	s.Description = in.Description
	s.Price = in.Price
	s.Duration = in.Duration
	s.Category = in.Category
	s.Status = in.Status
	s.Notes = in.Notes
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return dto.ToServiceResponse(s), nil
}

// List lista servicios con filtros y paginación.
func (uc *ServiceUseCase) List(filter repository.ServiceFilter, limit, offset int) (*dto.ServiceListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	services := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		services = append(services, dto.ToServiceResponse(s))
	}
	return &dto.ServiceListResponse{
		Services: services,
		Page:     dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un servicio por ID.
func (uc *ServiceUseCase) Delete(id string) error {
	if _, err := uc.repo.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
