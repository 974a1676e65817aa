package stock

import (
	"context"

	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock y el ciclo de vida de reparaciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		stockTxRepo repository.StockTransactionRepository,
		reparationRepo repository.ReparationRepository,
	) error) error
}
