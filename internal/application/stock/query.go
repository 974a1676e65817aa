package stock

import (
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro de stock.
type QueryUseCase struct {
	stockTxRepo repository.StockTransactionRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(stockTxRepo repository.StockTransactionRepository) *QueryUseCase {
	return &QueryUseCase{stockTxRepo: stockTxRepo}
}

// Get devuelve un asiento por ID.
func (uc *QueryUseCase) Get(id string) (*entity.StockTransaction, error) {
	return uc.stockTxRepo.GetByID(id)
}

// List devuelve asientos filtrados, más recientes primero, con el total para paginar.
func (uc *QueryUseCase) List(filter repository.StockTransactionFilter, limit, offset int) ([]*entity.StockTransaction, int, error) {
	txs, err := uc.stockTxRepo.List(filter, "created_at", true, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.stockTxRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// StatsByType agrega el libro por tipo de transacción.
func (uc *QueryUseCase) StatsByType() ([]repository.TransactionTypeStats, error) {
	return uc.stockTxRepo.StatsByType()
}

// History devuelve el historial de movimientos de un item, más recientes primero.
func (uc *QueryUseCase) History(itemID string, limit, offset int) ([]*entity.StockTransaction, int, error) {
	return uc.List(repository.StockTransactionFilter{ItemID: itemID}, limit, offset)
}
