package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items del catálogo.
// Quantity no se toca por aquí: el stock solo se mueve por el libro.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un item. Si viene sin código se genera uno (ITEM-XXX-NNNNNN);
// la cantidad inicial se acepta tal cual y el status se deriva de ella.
func (uc *ItemUseCase) Create(in *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.BuyPrice.IsNegative() || in.SellPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		if _, err := uc.supplierRepo.GetByID(in.SupplierID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	threshold := entity.DefaultThreshold
	if in.Threshold != nil {
		threshold = *in.Threshold
	}
	itemCode := in.ItemCode
	if itemCode == "" {
		itemCode = entity.GenerateItemCode(in.Name, now)
	} else if existing, _ := uc.repo.GetByCode(itemCode); existing != nil {
		return nil, domain.ErrDuplicate
	}
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		BuyPrice:    in.BuyPrice,
		SellPrice:   in.SellPrice,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		Threshold:   threshold,
		ItemCode:    itemCode,
		Location:    in.Location,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.RefreshStatus()
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// Get obtiene un item por ID.
func (uc *ItemUseCase) Get(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// Update actualiza los campos de catálogo. Un cambio de threshold
// re-deriva el status con la cantidad actual; quantity no se modifica.
func (uc *ItemUseCase) Update(id string, in *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.BuyPrice.IsNegative() || in.SellPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		if _, err := uc.supplierRepo.GetByID(in.SupplierID); err != nil {
			return nil, err
		}
	}

	item.Name = in.Name
	item.Description = in.Description
	item.CategoryID = in.CategoryID
	item.SupplierID = in.SupplierID
	item.BuyPrice = in.BuyPrice
	item.SellPrice = in.SellPrice
	if in.Threshold != nil {
		item.Threshold = *in.Threshold
	}
	item.Location = in.Location
	item.Notes = in.Notes
	item.RefreshStatus()
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// List lista items con filtros y paginación.
func (uc *ItemUseCase) List(filter repository.ItemFilter, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un item por ID. El historial del libro lo conserva la BD.
func (uc *ItemUseCase) Delete(id string) error {
	if _, err := uc.repo.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
