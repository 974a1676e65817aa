package dto

import (
	"time"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest = CreateCategoryRequest

// CategoryResponse representación de una categoría en respuestas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Categories []*CategoryResponse `json:"categories"`
	Page       PageResponse        `json:"page"`
}

// ToCategoryResponse mapea la entidad al DTO de respuesta.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
