package reparation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// UseCase ciclo de vida de reparaciones. Todo movimiento de stock derivado
// de una reparación (consumo al crear, devolución+consumo al actualizar,
// devolución al borrar) ocurre dentro de UNA transacción con las filas de
// los items bloqueadas: si una línea falla, ninguna queda aplicada.
type UseCase struct {
	txRunner       stock.TxRunner
	reparationRepo repository.ReparationRepository
	vehicleRepo    repository.VehicleRepository
	itemRepo       repository.ItemRepository
	serviceRepo    repository.ServiceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	reparationRepo repository.ReparationRepository,
	vehicleRepo repository.VehicleRepository,
	itemRepo repository.ItemRepository,
	serviceRepo repository.ServiceRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		reparationRepo: reparationRepo,
		vehicleRepo:    vehicleRepo,
		itemRepo:       itemRepo,
		serviceRepo:    serviceRepo,
	}
}

// Create registra una reparación nueva. Consume el stock de cada línea de
// item (un asiento reparation_use por línea) y congela las fotos de precio
// del catálogo al momento del uso, todo en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, req *dto.CreateReparationRequest) (*entity.Reparation, error) {
	if _, err := uc.vehicleRepo.GetByID(req.VehicleID); err != nil {
		return nil, err
	}
	services, err := uc.snapshotServices(req.Services)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rep := &entity.Reparation{
		ID:          uuid.New().String(),
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Technician:  req.Technician,
		Status:      entity.ReparationStatusPending,
		StartDate:   now,
		LaborCost:   req.LaborCost,
		Notes:       req.Notes,
		Services:    services,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.StartDate != nil {
		rep.StartDate = *req.StartDate
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		stockTxRepo repository.StockTransactionRepository,
		reparationRepo repository.ReparationRepository,
	) error {
		lines, err := consumeLines(itemRepo, stockTxRepo, rep.ID, userID, req.Items, now)
		if err != nil {
			return err
		}
		rep.Items = lines
		rep.RecalculateTotals()
		return reparationRepo.Create(rep)
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Update reemplaza la reparación completa. Las listas de líneas no son un
// diff: se devuelve el stock de TODAS las líneas anteriores (a sus fotos de
// precio originales) y se consume el de TODAS las nuevas (con fotos frescas
// del catálogo), en una sola transacción.
func (uc *UseCase) Update(ctx context.Context, id, userID string, req *dto.UpdateReparationRequest) (*entity.Reparation, error) {
	if !entity.IsValidReparationStatus(req.Status) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.vehicleRepo.GetByID(req.VehicleID); err != nil {
		return nil, err
	}
	services, err := uc.snapshotServices(req.Services)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var updated *entity.Reparation
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		stockTxRepo repository.StockTransactionRepository,
		reparationRepo repository.ReparationRepository,
	) error {
		rep, err := reparationRepo.GetByID(id)
		if err != nil {
			return err
		}
		// Devuelve las líneas anteriores antes de consumir las nuevas:
		// así un cambio de 5 a 3 unidades del mismo item nunca falla por
		// stock que la propia reparación tiene retenido.
		if err := returnLines(itemRepo, stockTxRepo, rep, userID, now); err != nil {
			return err
		}
		lines, err := consumeLines(itemRepo, stockTxRepo, rep.ID, userID, req.Items, now)
		if err != nil {
			return err
		}

		rep.VehicleID = req.VehicleID
		rep.Description = req.Description
		rep.Technician = req.Technician
		rep.Status = req.Status
		rep.LaborCost = req.LaborCost
		rep.Notes = req.Notes
		rep.Items = lines
		rep.Services = services
		if req.StartDate != nil {
			rep.StartDate = *req.StartDate
		}
		rep.EndDate = req.EndDate
		if rep.Status == entity.ReparationStatusCompleted && rep.EndDate == nil {
			rep.EndDate = &now
		}
		rep.UpdatedAt = now
		rep.RecalculateTotals()
		if err := reparationRepo.Update(rep); err != nil {
			return err
		}
		updated = rep
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus cambia solo el estado. No toca stock: las devoluciones
// ocurren únicamente al actualizar líneas o al borrar la reparación.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Reparation, error) {
	if !entity.IsValidReparationStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	rep, err := uc.reparationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	rep.Status = status
	if rep.IsTerminal() && rep.EndDate == nil {
		rep.EndDate = &now
	}
	rep.UpdatedAt = now
	if err := uc.reparationRepo.Update(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Delete borra la reparación devolviendo primero el stock de todas sus
// líneas (un asiento reparation_return por línea), en una sola transacción.
func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		stockTxRepo repository.StockTransactionRepository,
		reparationRepo repository.ReparationRepository,
	) error {
		rep, err := reparationRepo.GetByID(id)
		if err != nil {
			return err
		}
		if err := returnLines(itemRepo, stockTxRepo, rep, userID, now); err != nil {
			return err
		}
		return reparationRepo.Delete(id)
	})
}

// Get devuelve una reparación por ID.
func (uc *UseCase) Get(id string) (*entity.Reparation, error) {
	return uc.reparationRepo.GetByID(id)
}

// List devuelve reparaciones filtradas, más recientes primero, con el total.
func (uc *UseCase) List(filter repository.ReparationFilter, limit, offset int) ([]*entity.Reparation, int, error) {
	reps, err := uc.reparationRepo.List(filter, "created_at", true, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.reparationRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return reps, total, nil
}

// snapshotServices resuelve las líneas de servicio contra el catálogo y
// congela nombre y precio (el precio del request, si viene, tiene prioridad).
func (uc *UseCase) snapshotServices(inputs []dto.ReparationServiceInput) ([]entity.ReparationService, error) {
	services := make([]entity.ReparationService, 0, len(inputs))
	for _, in := range inputs {
		svc, err := uc.serviceRepo.GetByID(in.ServiceID)
		if err != nil {
			return nil, err
		}
		price := svc.Price
		if in.Price != nil {
			if in.Price.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			price = *in.Price
		}
		services = append(services, entity.ReparationService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       price,
			Notes:       in.Notes,
		})
	}
	return services, nil
}

// consumeLines aplica un reparation_use por línea con la fila del item
// bloqueada, y construye las líneas con las fotos de precio del item
// leídas bajo el mismo lock. Si una línea no tiene stock suficiente el
// error aborta la transacción completa del caller.
func consumeLines(
	itemRepo repository.ItemRepository,
	stockTxRepo repository.StockTransactionRepository,
	reparationID, userID string,
	inputs []dto.ReparationItemInput,
	now time.Time,
) ([]entity.ReparationItem, error) {
	lines := make([]entity.ReparationItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		res, err := stock.ApplyInTx(itemRepo, stockTxRepo, stock.MovementInput{
			UserID:       userID,
			ItemID:       in.ItemID,
			Type:         entity.TransactionTypeReparationUse,
			Quantity:     in.Quantity,
			ReparationID: reparationID,
		}, now)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.ReparationItem{
			ItemID:    res.Item.ID,
			ItemName:  res.Item.Name,
			Quantity:  in.Quantity,
			BuyPrice:  res.Item.BuyPrice,
			SellPrice: res.Item.SellPrice,
		})
	}
	return lines, nil
}

// returnLines emite un reparation_return por cada línea existente, al
// precio de la foto original de la línea (no al precio de catálogo actual).
func returnLines(
	itemRepo repository.ItemRepository,
	stockTxRepo repository.StockTransactionRepository,
	rep *entity.Reparation,
	userID string,
	now time.Time,
) error {
	for _, line := range rep.Items {
		price := line.SellPrice
		_, err := stock.ApplyInTx(itemRepo, stockTxRepo, stock.MovementInput{
			UserID:       userID,
			ItemID:       line.ItemID,
			Type:         entity.TransactionTypeReparationReturn,
			Quantity:     line.Quantity,
			UnitPrice:    &price,
			ReparationID: rep.ID,
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}
