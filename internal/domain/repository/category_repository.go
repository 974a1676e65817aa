package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías de items.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(c *entity.Category) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Category, error)
	Count() (int, error)
	// CountItems cuenta los items que referencian la categoría (guard de borrado).
	CountItems(categoryID string) (int, error)
}
