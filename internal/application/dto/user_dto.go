package dto

import (
	"time"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// RegisterUserRequest body para POST /api/auth/register (solo admin).
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin mecanico recepcion"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse representación de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse mapea la entidad al DTO de respuesta.
func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Page  PageResponse    `json:"page"`
}

// UpdateUserRequest body para PUT /api/users/:id (solo admin).
// El email y el password no se cambian por aquí.
type UpdateUserRequest struct {
	Name string `json:"name" validate:"required,min=2,max=200"`
	Role string `json:"role" validate:"required,oneof=admin mecanico recepcion"`
}

// UpdateUserStatusRequest body para PATCH /api/users/:id/status (solo admin).
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// LoginResponse resultado de un login exitoso.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
