package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// ItemFilter filtros para listar items.
type ItemFilter struct {
	CategoryID string
	SupplierID string
	Status     string
	Search     string // match parcial sobre name / itemCode
}

// ItemRepository define el puerto de persistencia para items.
// UpdateStock es el único camino que escribe quantity/status y se invoca
// siempre con el status ya derivado de la cantidad resultante.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del item (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.Item, error)
	// Update actualiza los campos de catálogo y el status (nunca quantity:
	// el stock solo se mueve por el libro de transacciones).
	Update(item *entity.Item) error
	// UpdateStock persiste la cantidad resultante y el status derivado de ella.
	UpdateStock(id string, quantity int, status string) error
	List(filter ItemFilter, limit, offset int) ([]*entity.Item, error)
	Count(filter ItemFilter) (int, error)
	Delete(id string) error
}
