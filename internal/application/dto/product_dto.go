package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SizeInput tamaño enviado al crear o actualizar un producto; el orden sigue la posición en la lista.
type SizeInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CreateProductRequest entrada para crear un producto con sus tamaños.
type CreateProductRequest struct {
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Active      *bool           `json:"active"`
	Sizes       []SizeInput     `json:"sizes"`
}

// UpdateProductRequest entrada parcial. CategoryID distinto mueve el producto al final de la nueva categoría.
// Sizes no nulo reemplaza todos los tamaños.
type UpdateProductRequest struct {
	CategoryID  *int64           `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Active      *bool            `json:"active"`
	Sizes       *[]SizeInput     `json:"sizes"`
}

// SizeResponse salida de un tamaño.
type SizeResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Order int64           `json:"order"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Active       bool            `json:"active"`
	DisplayOrder int64           `json:"display_order"`
	Sizes        []SizeResponse  `json:"sizes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse productos de una categoría, por display_order.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
