package reparation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/reparation"
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

func (f *fakeItemRepo) GetByCode(string) (*entity.Item, error) { return nil, domain.ErrNotFound }
func (f *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return f.GetByID(id)
}
func (f *fakeItemRepo) Update(*entity.Item) error { return nil }
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
func (f *fakeItemRepo) Delete(string) error                                         { return nil }

type fakeStockTxRepo struct {
	entries []*entity.StockTransaction
}

func (f *fakeStockTxRepo) Create(tx *entity.StockTransaction) error {
	copia := *tx
	f.entries = append(f.entries, &copia)
	return nil
}
func (f *fakeStockTxRepo) GetByID(string) (*entity.StockTransaction, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeStockTxRepo) List(repository.StockTransactionFilter, string, bool, int, int) ([]*entity.StockTransaction, error) {
	return f.entries, nil
}
func (f *fakeStockTxRepo) Count(repository.StockTransactionFilter) (int, error) {
	return len(f.entries), nil
}
func (f *fakeStockTxRepo) StatsByType() ([]repository.TransactionTypeStats, error) { return nil, nil }

// byType filtra los asientos del libro por tipo.
func (f *fakeStockTxRepo) byType(t string) []*entity.StockTransaction {
	var out []*entity.StockTransaction
	for _, e := range f.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeReparationRepo struct {
	reps map[string]*entity.Reparation
}

func newFakeReparationRepo() *fakeReparationRepo {
	return &fakeReparationRepo{reps: make(map[string]*entity.Reparation)}
}

func cloneReparation(r *entity.Reparation) *entity.Reparation {
	copia := *r
	copia.Items = append([]entity.ReparationItem(nil), r.Items...)
	copia.Services = append([]entity.ReparationService(nil), r.Services...)
	return &copia
}

func (f *fakeReparationRepo) Create(rep *entity.Reparation) error {
	f.reps[rep.ID] = cloneReparation(rep)
	return nil
}

func (f *fakeReparationRepo) GetByID(id string) (*entity.Reparation, error) {
	rep, ok := f.reps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneReparation(rep), nil
}

func (f *fakeReparationRepo) Update(rep *entity.Reparation) error {
	if _, ok := f.reps[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	f.reps[rep.ID] = cloneReparation(rep)
	return nil
}

func (f *fakeReparationRepo) Delete(id string) error {
	delete(f.reps, id)
	return nil
}

func (f *fakeReparationRepo) List(repository.ReparationFilter, string, bool, int, int) ([]*entity.Reparation, error) {
	return nil, nil
}
func (f *fakeReparationRepo) Count(repository.ReparationFilter) (int, error) { return 0, nil }

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

func (f *fakeVehicleRepo) Create(*entity.Vehicle) error { return nil }
func (f *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
func (f *fakeVehicleRepo) GetByPlate(string) (*entity.Vehicle, error) { return nil, domain.ErrNotFound }
func (f *fakeVehicleRepo) Update(*entity.Vehicle) error               { return nil }
func (f *fakeVehicleRepo) Delete(string) error                        { return nil }
func (f *fakeVehicleRepo) List(repository.VehicleFilter, int, int) ([]*entity.Vehicle, error) {
	return nil, nil
}
func (f *fakeVehicleRepo) Count(repository.VehicleFilter) (int, error) { return 0, nil }

type fakeServiceRepo struct {
	services map[string]*entity.Service
}

func (f *fakeServiceRepo) Create(*entity.Service) error { return nil }
func (f *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}
func (f *fakeServiceRepo) Update(*entity.Service) error { return nil }
func (f *fakeServiceRepo) Delete(string) error          { return nil }
func (f *fakeServiceRepo) List(repository.ServiceFilter, int, int) ([]*entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) Count(repository.ServiceFilter) (int, error) { return 0, nil }

// fakeTxRunner emula la transacción: snapshot del estado y restauración si
// fn devuelve error, como haría el ROLLBACK de Postgres.
type fakeTxRunner struct {
	itemRepo    *fakeItemRepo
	stockTxRepo *fakeStockTxRepo
	repRepo     *fakeReparationRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ItemRepository,
	repository.StockTransactionRepository,
	repository.ReparationRepository,
) error) error {
	itemsSnap := make(map[string]*entity.Item, len(f.itemRepo.items))
	for id, it := range f.itemRepo.items {
		copia := *it
		itemsSnap[id] = &copia
	}
	repsSnap := make(map[string]*entity.Reparation, len(f.repRepo.reps))
	for id, rep := range f.repRepo.reps {
		repsSnap[id] = cloneReparation(rep)
	}
	entriesLen := len(f.stockTxRepo.entries)

	if err := fn(f.itemRepo, f.stockTxRepo, f.repRepo); err != nil {
		f.itemRepo.items = itemsSnap
		f.repRepo.reps = repsSnap
		f.stockTxRepo.entries = f.stockTxRepo.entries[:entriesLen]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	vehicleID = "22222222-2222-2222-2222-222222222222"
	itemAID   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	itemBID   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	serviceID = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	uc       *reparation.UseCase
	itemRepo *fakeItemRepo
	ledger   *fakeStockTxRepo
	repRepo  *fakeReparationRepo
	svcRepo  *fakeServiceRepo
}

func newFixture(items ...*entity.Item) *fixture {
	itemRepo := newFakeItemRepo(items...)
	ledger := &fakeStockTxRepo{}
	repRepo := newFakeReparationRepo()
	vehRepo := &fakeVehicleRepo{vehicles: map[string]*entity.Vehicle{
		vehicleID: {ID: vehicleID, Make: "Toyota", Model: "Hilux", Year: 2019, LicensePlate: "ABC123"},
	}}
	svcRepo := &fakeServiceRepo{services: map[string]*entity.Service{
		serviceID: {ID: serviceID, Name: "Alineación", Price: decimal.NewFromInt(40)},
	}}
	runner := &fakeTxRunner{itemRepo: itemRepo, stockTxRepo: ledger, repRepo: repRepo}
	uc := reparation.NewUseCase(runner, repRepo, vehRepo, itemRepo, svcRepo)
	return &fixture{uc: uc, itemRepo: itemRepo, ledger: ledger, repRepo: repRepo, svcRepo: svcRepo}
}

func stockedItem(id string, quantity int) *entity.Item {
	it := &entity.Item{
		ID:        id,
		Name:      "Repuesto " + id[:4],
		Quantity:  quantity,
		Threshold: 2,
		BuyPrice:  decimal.NewFromInt(10),
		SellPrice: decimal.NewFromInt(15),
	}
	it.RefreshStatus()
	return it
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConsumeStockYCongelaPrecios(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 10))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Cambio de aceite y filtro",
		LaborCost:   decimal.NewFromInt(50),
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 2}},
		Services:    []dto.ReparationServiceInput{{ServiceID: serviceID}},
	})
	require.NoError(t, err)

	// Stock consumido y asiento reparation_use ligado a la reparación
	stored, _ := f.itemRepo.GetByID(itemAID)
	assert.Equal(t, 8, stored.Quantity)
	uses := f.ledger.byType(entity.TransactionTypeReparationUse)
	require.Len(t, uses, 1)
	assert.Equal(t, rep.ID, uses[0].ReparationID)
	assert.Equal(t, "u1", uses[0].CreatedBy)

	// Fotos de precio tomadas del item bajo lock
	require.Len(t, rep.Items, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(rep.Items[0].BuyPrice))
	assert.True(t, decimal.NewFromInt(15).Equal(rep.Items[0].SellPrice))

	// Totales: parts 30, services 40, labor 50; profit (15-10)×2
	assert.True(t, decimal.NewFromInt(30).Equal(rep.PartsCost))
	assert.True(t, decimal.NewFromInt(40).Equal(rep.ServicesCost))
	assert.True(t, decimal.NewFromInt(120).Equal(rep.TotalCost))
	assert.True(t, decimal.NewFromInt(10).Equal(rep.TotalProfit))

	// Persistida con estado inicial pending
	saved, err := f.repRepo.GetByID(rep.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReparationStatusPending, saved.Status)
}

func TestCreate_LineaSinStock_NoAplicaNada(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 10), stockedItem(itemBID, 1))

	_, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Trabajo con dos repuestos",
		Items: []dto.ReparationItemInput{
			{ItemID: itemAID, Quantity: 3},
			{ItemID: itemBID, Quantity: 5}, // solo hay 1
		},
	})
	require.Error(t, err)

	var insufficientErr *domain.InsufficientStockError
	assert.True(t, errors.As(err, &insufficientErr))

	// La línea A no queda aplicada: atomicidad del lote completo
	storedA, _ := f.itemRepo.GetByID(itemAID)
	storedB, _ := f.itemRepo.GetByID(itemBID)
	assert.Equal(t, 10, storedA.Quantity)
	assert.Equal(t, 1, storedB.Quantity)
	assert.Empty(t, f.ledger.entries)
	assert.Empty(t, f.repRepo.reps)
}

func TestCreate_VehiculoInexistente(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 10))
	_, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   "44444444-4444-4444-4444-444444444444",
		Description: "Vehículo no registrado",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_DevuelveTodoYConsumeDeNuevo(t *testing.T) {
	// Item con 5 unidades; la reparación consume las 5. Al bajar a 3 el update
	// debe devolver las 5 retenidas antes de consumir 3: nunca falta stock.
	f := newFixture(stockedItem(itemAID, 5))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Consume todo el stock",
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 5}},
	})
	require.NoError(t, err)
	stored, _ := f.itemRepo.GetByID(itemAID)
	require.Equal(t, 0, stored.Quantity)

	updated, err := f.uc.Update(context.Background(), rep.ID, "u1", &dto.UpdateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Consume todo el stock",
		Status:      entity.ReparationStatusInProgress,
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 3}},
	})
	require.NoError(t, err)

	// Efecto neto: 5 devueltas, 3 consumidas → quedan 2
	stored, _ = f.itemRepo.GetByID(itemAID)
	assert.Equal(t, 2, stored.Quantity)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)

	// Libro: 1 use del create + 1 return + 1 use del update
	assert.Len(t, f.ledger.byType(entity.TransactionTypeReparationUse), 2)
	assert.Len(t, f.ledger.byType(entity.TransactionTypeReparationReturn), 1)
}

func TestUpdate_EfectoNetoConItemNuevo(t *testing.T) {
	// Update que baja A de 3 a 1 e introduce B: el efecto neto sobre A es −1
	// (devuelve 3, consume 1) y sobre B es −2.
	f := newFixture(stockedItem(itemAID, 10), stockedItem(itemBID, 10))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Cambio de líneas",
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 3}},
	})
	require.NoError(t, err)
	stored, _ := f.itemRepo.GetByID(itemAID)
	require.Equal(t, 7, stored.Quantity)

	updated, err := f.uc.Update(context.Background(), rep.ID, "u1", &dto.UpdateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Cambio de líneas",
		Status:      entity.ReparationStatusInProgress,
		Items: []dto.ReparationItemInput{
			{ItemID: itemAID, Quantity: 1},
			{ItemID: itemBID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	storedA, _ := f.itemRepo.GetByID(itemAID)
	storedB, _ := f.itemRepo.GetByID(itemBID)
	assert.Equal(t, 9, storedA.Quantity, "A: 10 −3 +3 −1")
	assert.Equal(t, 8, storedB.Quantity, "B: 10 −2")

	// Libro: 1 use del create + 1 return de A + 2 uses del update
	assert.Len(t, f.ledger.byType(entity.TransactionTypeReparationUse), 3)
	assert.Len(t, f.ledger.byType(entity.TransactionTypeReparationReturn), 1)
}

func TestUpdate_DevolucionUsaFotoDePrecio(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 5))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Foto de precio congelada",
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 2}},
	})
	require.NoError(t, err)

	// El catálogo sube de precio después del consumo
	f.itemRepo.items[itemAID].SellPrice = decimal.NewFromInt(99)

	_, err = f.uc.Update(context.Background(), rep.ID, "u1", &dto.UpdateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Foto de precio congelada",
		Status:      entity.ReparationStatusInProgress,
		Items:       nil, // quita todas las líneas
	})
	require.NoError(t, err)

	returns := f.ledger.byType(entity.TransactionTypeReparationReturn)
	require.Len(t, returns, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(returns[0].UnitPrice),
		"la devolución usa la foto de precio original, no el catálogo actual")
}

func TestUpdate_CompletadaFijaEndDate(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 5))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Por completar",
	})
	require.NoError(t, err)
	require.Nil(t, rep.EndDate)

	updated, err := f.uc.Update(context.Background(), rep.ID, "u1", &dto.UpdateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Por completar",
		Status:      entity.ReparationStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
}

func TestUpdate_EstadoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Update(context.Background(), "x", "u1", &dto.UpdateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Estado desconocido",
		Status:      "archived",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus y Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_NoTocaStock(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 5))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "Solo cambio de estado",
		Items:       []dto.ReparationItemInput{{ItemID: itemAID, Quantity: 2}},
	})
	require.NoError(t, err)
	entriesBefore := len(f.ledger.entries)

	updated, err := f.uc.UpdateStatus(context.Background(), rep.ID, entity.ReparationStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, entity.ReparationStatusCompleted, updated.Status)
	assert.NotNil(t, updated.EndDate, "estado terminal fija end_date")
	assert.Len(t, f.ledger.entries, entriesBefore, "cambiar estado no genera asientos")

	stored, _ := f.itemRepo.GetByID(itemAID)
	assert.Equal(t, 3, stored.Quantity, "el stock consumido se mantiene")
}

func TestDelete_DevuelveTodasLasLineas(t *testing.T) {
	f := newFixture(stockedItem(itemAID, 5), stockedItem(itemBID, 4))

	rep, err := f.uc.Create(context.Background(), "u1", &dto.CreateReparationRequest{
		VehicleID:   vehicleID,
		Description: "A borrar",
		Items: []dto.ReparationItemInput{
			{ItemID: itemAID, Quantity: 2},
			{ItemID: itemBID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), rep.ID, "u1"))

	// Stock restaurado en ambos items y reparación eliminada
	storedA, _ := f.itemRepo.GetByID(itemAID)
	storedB, _ := f.itemRepo.GetByID(itemBID)
	assert.Equal(t, 5, storedA.Quantity)
	assert.Equal(t, 4, storedB.Quantity)
	assert.Len(t, f.ledger.byType(entity.TransactionTypeReparationReturn), 2)

	_, err = f.repRepo.GetByID(rep.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ReparacionInexistente(t *testing.T) {
	f := newFixture()
	err := f.uc.Delete(context.Background(), "no-existe", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
