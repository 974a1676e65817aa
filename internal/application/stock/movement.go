package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de stock de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), verificación de suficiencia bajo el lock,
// actualización de cantidad+status derivado y un asiento en el libro por mutación.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Quantity es la magnitud (> 0) salvo para adjustment, donde el signo
// decide la dirección. UnitPrice nil toma el precio del catálogo:
// buyPrice en purchase, sellPrice en el resto.
type MovementInput struct {
	UserID       string
	ItemID       string
	Type         string
	Quantity     int
	UnitPrice    *decimal.Decimal
	ReparationID string
	SupplierID   string
	Reference    string
	Notes        string
}

// MovementResult asiento creado más el item con stock y status ya actualizados.
type MovementResult struct {
	Item        *entity.Item
	Transaction *entity.StockTransaction
}

// ApplyMovement registra un asiento manual de stock. Solo admite los tipos
// manuales (purchase, adjustment, damage, return_to_supplier); los tipos de
// reparación los emite el ciclo de vida de la reparación.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if !entity.IsManualEntryType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.TransactionTypeAdjustment && input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar referencias fuera de la tx (fallo barato y temprano)
	if _, err := uc.itemRepo.GetByID(input.ItemID); err != nil {
		return nil, err
	}
	if input.SupplierID != "" {
		if _, err := uc.supplierRepo.GetByID(input.SupplierID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		stockTxRepo repository.StockTransactionRepository,
		_ repository.ReparationRepository,
	) error {
		var txErr error
		result, txErr = ApplyInTx(itemRepo, stockTxRepo, input, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados
// (misma transacción del caller). Es el único camino que muta Quantity:
// bloquea la fila del item, resuelve dirección y magnitud, verifica
// suficiencia bajo el lock, deriva el status de la cantidad resultante
// y crea exactamente un asiento consistente en el libro.
func ApplyInTx(
	itemRepo repository.ItemRepository,
	stockTxRepo repository.StockTransactionRepository,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	if !entity.IsValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del item (SELECT FOR UPDATE) para evitar condiciones de carrera
	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}

	// Dirección y magnitud: adjustment por el signo, el resto por el tipo
	magnitude := input.Quantity
	additive := entity.IsAdditiveType(input.Type)
	switch {
	case input.Type == entity.TransactionTypeAdjustment:
		if magnitude < 0 {
			magnitude = -magnitude
		} else {
			additive = true
		}
	case magnitude <= 0:
		return nil, domain.ErrInvalidInput
	}
	if magnitude == 0 {
		return nil, domain.ErrInvalidInput
	}

	before := item.Quantity
	var after int
	if additive {
		after = before + magnitude
	} else {
		if before < magnitude {
			return nil, domain.NewInsufficientStock(item.ID, item.Name, magnitude, before)
		}
		after = before - magnitude
	}

	unitPrice := item.SellPrice
	if input.Type == entity.TransactionTypePurchase {
		unitPrice = item.BuyPrice
	}
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	item.Quantity = after
	item.RefreshStatus()
	item.UpdatedAt = now
	if err := itemRepo.UpdateStock(item.ID, item.Quantity, item.Status); err != nil {
		return nil, err
	}

	entry := &entity.StockTransaction{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		Type:           input.Type,
		Quantity:       magnitude,
		QuantityBefore: before,
		QuantityAfter:  after,
		UnitPrice:      unitPrice,
		TotalAmount:    unitPrice.Mul(decimal.NewFromInt(int64(magnitude))),
		ReparationID:   input.ReparationID,
		SupplierID:     input.SupplierID,
		Reference:      input.Reference,
		Notes:          input.Notes,
		CreatedBy:      input.UserID,
		CreatedAt:      now,
	}
	if err := stockTxRepo.Create(entry); err != nil {
		return nil, err
	}
	return &MovementResult{Item: item, Transaction: entry}, nil
}
