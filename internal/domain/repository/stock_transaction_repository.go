package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// StockTransactionFilter filtros para listar asientos del libro de stock.
type StockTransactionFilter struct {
	ItemID       string
	Type         string
	ReparationID string
	From         *time.Time
	To           *time.Time
}

// TransactionTypeStats agregado por tipo de transacción.
type TransactionTypeStats struct {
	Type          string
	Count         int
	TotalQuantity int
	TotalAmount   decimal.Decimal
}

// StockTransactionRepository puerto de persistencia del libro mayor de stock.
// Solo inserta y consulta: los asientos nunca se modifican ni se borran.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	List(filter StockTransactionFilter, sortField string, sortDesc bool, limit, offset int) ([]*entity.StockTransaction, error)
	Count(filter StockTransactionFilter) (int, error)
	StatsByType() ([]TransactionTypeStats, error)
}
