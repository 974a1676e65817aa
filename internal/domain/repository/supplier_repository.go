package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// SupplierFilter filtros para listar proveedores.
type SupplierFilter struct {
	Search string // match parcial sobre nombre, email o contacto
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id string) error
	List(filter SupplierFilter, limit, offset int) ([]*entity.Supplier, error)
	Count(filter SupplierFilter) (int, error)
	// CountItems cuenta los items que referencian al proveedor (guard de borrado).
	CountItems(supplierID string) (int, error)
}
