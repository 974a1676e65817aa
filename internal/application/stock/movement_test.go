package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	m := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		copia := *it
		m[it.ID] = &copia
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(item *entity.Item) error {
	copia := *item
	f.items[item.ID] = &copia
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := *it
	return &copia, nil
}

func (f *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, it := range f.items {
		if it.ItemCode == code {
			copia := *it
			return &copia, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return f.GetByID(id)
}

func (f *fakeItemRepo) Update(item *entity.Item) error {
	stored, ok := f.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	copia := *item
	copia.Quantity = stored.Quantity // quantity solo se mueve por UpdateStock
	f.items[item.ID] = &copia
	return nil
}

func (f *fakeItemRepo) UpdateStock(id string, quantity int, status string) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.Status = status
	return nil
}

func (f *fakeItemRepo) List(repository.ItemFilter, int, int) ([]*entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) Count(repository.ItemFilter) (int, error)                    { return 0, nil }
func (f *fakeItemRepo) Delete(id string) error                                      { delete(f.items, id); return nil }

type fakeStockTxRepo struct {
	entries []*entity.StockTransaction
}

func (f *fakeStockTxRepo) Create(tx *entity.StockTransaction) error {
	copia := *tx
	f.entries = append(f.entries, &copia)
	return nil
}

func (f *fakeStockTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStockTxRepo) List(repository.StockTransactionFilter, string, bool, int, int) ([]*entity.StockTransaction, error) {
	return f.entries, nil
}
func (f *fakeStockTxRepo) Count(repository.StockTransactionFilter) (int, error) {
	return len(f.entries), nil
}
func (f *fakeStockTxRepo) StatsByType() ([]repository.TransactionTypeStats, error) { return nil, nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}
func (f *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) Delete(string) error           { return nil }
func (f *fakeSupplierRepo) List(repository.SupplierFilter, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) Count(repository.SupplierFilter) (int, error) { return 0, nil }
func (f *fakeSupplierRepo) CountItems(string) (int, error)               { return 0, nil }

// fakeTxRunner emula la transacción: toma un snapshot del estado y lo
// restaura si fn devuelve error, como haría el ROLLBACK de Postgres.
type fakeTxRunner struct {
	itemRepo    *fakeItemRepo
	stockTxRepo *fakeStockTxRepo
	repRepo     repository.ReparationRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ItemRepository,
	repository.StockTransactionRepository,
	repository.ReparationRepository,
) error) error {
	snapshot := make(map[string]*entity.Item, len(f.itemRepo.items))
	for id, it := range f.itemRepo.items {
		copia := *it
		snapshot[id] = &copia
	}
	entriesLen := len(f.stockTxRepo.entries)

	if err := fn(f.itemRepo, f.stockTxRepo, f.repRepo); err != nil {
		f.itemRepo.items = snapshot
		f.stockTxRepo.entries = f.stockTxRepo.entries[:entriesLen]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newTestItem(id string, quantity, threshold int) *entity.Item {
	it := &entity.Item{
		ID:        id,
		Name:      "Filtro de aceite",
		ItemCode:  "ITEM-FIL-000001",
		Quantity:  quantity,
		Threshold: threshold,
		BuyPrice:  decimal.NewFromInt(10),
		SellPrice: decimal.NewFromInt(15),
	}
	it.RefreshStatus()
	return it
}

func buildUseCase(items ...*entity.Item) (*stock.ApplyMovementUseCase, *fakeItemRepo, *fakeStockTxRepo) {
	itemRepo := newFakeItemRepo(items...)
	stockTxRepo := &fakeStockTxRepo{}
	runner := &fakeTxRunner{itemRepo: itemRepo, stockTxRepo: stockTxRepo}
	uc := stock.NewApplyMovementUseCase(runner, itemRepo, &fakeSupplierRepo{})
	return uc, itemRepo, stockTxRepo
}

const itemID = "11111111-1111-1111-1111-111111111111"

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_CompraAumentaStock(t *testing.T) {
	uc, itemRepo, ledger := buildUseCase(newTestItem(itemID, 3, 5))

	res, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		UserID:   "u1",
		ItemID:   itemID,
		Type:     entity.TransactionTypePurchase,
		Quantity: 10,
	})
	require.NoError(t, err)

	// Cantidad y status derivado persistidos
	stored, _ := itemRepo.GetByID(itemID)
	assert.Equal(t, 13, stored.Quantity)
	assert.Equal(t, entity.ItemStatusAvailable, stored.Status)

	// Un único asiento consistente, a precio de compra por defecto
	require.Len(t, ledger.entries, 1)
	entry := ledger.entries[0]
	assert.Equal(t, entity.TransactionTypePurchase, entry.Type)
	assert.Equal(t, 3, entry.QuantityBefore)
	assert.Equal(t, 13, entry.QuantityAfter)
	assert.True(t, decimal.NewFromInt(10).Equal(entry.UnitPrice), "purchase usa buyPrice por defecto")
	assert.True(t, entry.IsConsistent())
	assert.Equal(t, "u1", entry.CreatedBy)
	assert.NotEmpty(t, res.Transaction.ID)
	assert.Equal(t, 13, res.Item.Quantity)
}

func TestApplyMovement_DanoDisminuyeYDerivaStatus(t *testing.T) {
	uc, itemRepo, ledger := buildUseCase(newTestItem(itemID, 6, 5))

	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID:   itemID,
		Type:     entity.TransactionTypeDamage,
		Quantity: 2,
	})
	require.NoError(t, err)

	stored, _ := itemRepo.GetByID(itemID)
	assert.Equal(t, 4, stored.Quantity)
	assert.Equal(t, entity.ItemStatusLowStock, stored.Status, "4 <= umbral 5 es stock bajo")

	require.Len(t, ledger.entries, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(ledger.entries[0].UnitPrice),
		"los tipos no-purchase usan sellPrice por defecto")
}

func TestApplyMovement_AjusteResuelveDireccionPorSigno(t *testing.T) {
	uc, itemRepo, ledger := buildUseCase(newTestItem(itemID, 10, 5))

	// Negativo: resta
	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID:   itemID,
		Type:     entity.TransactionTypeAdjustment,
		Quantity: -4,
	})
	require.NoError(t, err)
	stored, _ := itemRepo.GetByID(itemID)
	assert.Equal(t, 6, stored.Quantity)

	// El asiento guarda la magnitud, el delta lleva el signo
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, 4, ledger.entries[0].Quantity)
	assert.Equal(t, -4, ledger.entries[0].SignedQuantity())

	// Positivo: suma
	_, err = uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID:   itemID,
		Type:     entity.TransactionTypeAdjustment,
		Quantity: 3,
	})
	require.NoError(t, err)
	stored, _ = itemRepo.GetByID(itemID)
	assert.Equal(t, 9, stored.Quantity)
}

func TestApplyMovement_StockInsuficiente_NoTocaNada(t *testing.T) {
	uc, itemRepo, ledger := buildUseCase(newTestItem(itemID, 2, 5))

	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID:   itemID,
		Type:     entity.TransactionTypeDamage,
		Quantity: 5,
	})
	require.Error(t, err)

	var insufficientErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficientErr), "el error debe llevar el detalle del faltante")
	assert.Equal(t, 5, insufficientErr.Requested)
	assert.Equal(t, 2, insufficientErr.Available)

	// Estado intacto y libro sin asientos
	stored, _ := itemRepo.GetByID(itemID)
	assert.Equal(t, 2, stored.Quantity)
	assert.Empty(t, ledger.entries)
}

func TestApplyMovement_RechazaTiposNoManuales(t *testing.T) {
	uc, _, ledger := buildUseCase(newTestItem(itemID, 10, 5))

	for _, tipo := range []string{
		entity.TransactionTypeSale,
		entity.TransactionTypeReparationUse,
		entity.TransactionTypeReparationReturn,
		"transfer",
	} {
		_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
			ItemID:   itemID,
			Type:     tipo,
			Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %q no debe aceptarse a mano", tipo)
	}
	assert.Empty(t, ledger.entries)
}

func TestApplyMovement_RechazaCantidadesInvalidas(t *testing.T) {
	uc, _, _ := buildUseCase(newTestItem(itemID, 10, 5))

	// Cantidad cero
	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID: itemID, Type: entity.TransactionTypePurchase, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Negativa en tipo que no es adjustment
	_, err = uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID: itemID, Type: entity.TransactionTypePurchase, Quantity: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Precio unitario negativo
	neg := decimal.NewFromInt(-1)
	_, err = uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID: itemID, Type: entity.TransactionTypePurchase, Quantity: 1, UnitPrice: &neg,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_ItemInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID: itemID, Type: entity.TransactionTypePurchase, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_PrecioUnitarioExplicito(t *testing.T) {
	uc, _, ledger := buildUseCase(newTestItem(itemID, 5, 5))

	override := decimal.NewFromFloat(12.50)
	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		ItemID:    itemID,
		Type:      entity.TransactionTypePurchase,
		Quantity:  4,
		UnitPrice: &override,
	})
	require.NoError(t, err)

	require.Len(t, ledger.entries, 1)
	entry := ledger.entries[0]
	assert.True(t, override.Equal(entry.UnitPrice))
	assert.True(t, decimal.NewFromInt(50).Equal(entry.TotalAmount), "12.50 × 4 = 50")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyInTx (camino compartido con reparaciones)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyInTx_AgotaStockDerivaOutOfStock(t *testing.T) {
	itemRepo := newFakeItemRepo(newTestItem(itemID, 3, 5))
	ledger := &fakeStockTxRepo{}

	res, err := stock.ApplyInTx(itemRepo, ledger, stock.MovementInput{
		ItemID:   itemID,
		Type:     entity.TransactionTypeReparationUse,
		Quantity: 3,
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Item.Quantity)
	assert.Equal(t, entity.ItemStatusOutOfStock, res.Item.Status)
	stored, _ := itemRepo.GetByID(itemID)
	assert.Equal(t, entity.ItemStatusOutOfStock, stored.Status)
}

func TestApplyInTx_DevolucionDeReparacionSuma(t *testing.T) {
	itemRepo := newFakeItemRepo(newTestItem(itemID, 0, 5))
	ledger := &fakeStockTxRepo{}

	price := decimal.NewFromInt(99) // foto de precio de la línea, no catálogo
	res, err := stock.ApplyInTx(itemRepo, ledger, stock.MovementInput{
		ItemID:       itemID,
		Type:         entity.TransactionTypeReparationReturn,
		Quantity:     2,
		UnitPrice:    &price,
		ReparationID: "rep-1",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Item.Quantity)
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, "rep-1", ledger.entries[0].ReparationID)
	assert.True(t, price.Equal(ledger.entries[0].UnitPrice))
}
