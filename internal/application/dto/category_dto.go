package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. La posición se asigna al final.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// UpdateCategoryRequest entrada parcial; la posición solo cambia vía /move.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse categorías del comerciante, por orden.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
