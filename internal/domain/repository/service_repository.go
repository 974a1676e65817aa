package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// ServiceFilter filtros para listar servicios.
type ServiceFilter struct {
	Category string
	Status   string
	Search   string
}

// ServiceRepository puerto de persistencia para servicios del taller.
type ServiceRepository interface {
	Create(s *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	Update(s *entity.Service) error
	Delete(id string) error
	List(filter ServiceFilter, limit, offset int) ([]*entity.Service, error)
	Count(filter ServiceFilter) (int, error)
}
