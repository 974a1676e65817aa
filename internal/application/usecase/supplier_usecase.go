package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(in *dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(s), nil
}

// Get obtiene un proveedor por ID.
func (uc *SupplierUseCase) Get(id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(s), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(id string, in *dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.Name = in.Name
	s.ContactPerson = in.ContactPerson
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.Notes = in.Notes
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(s), nil
}

// List lista proveedores con búsqueda y paginación.
func (uc *SupplierUseCase) List(filter repository.SupplierFilter, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	suppliers := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		suppliers = append(suppliers, dto.ToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Suppliers: suppliers,
		Page:      dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un proveedor si ningún item lo referencia.
func (uc *SupplierUseCase) Delete(id string) error {
	if _, err := uc.repo.GetByID(id); err != nil {
		return err
	}
	n, err := uc.repo.CountItems(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
