package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Count() (int, error)
}
