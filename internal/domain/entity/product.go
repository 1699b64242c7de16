package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un ítem vendible dentro de una categoría.
// DisplayOrder es la posición entre los productos de la misma categoría.
type Product struct {
	ID           int64
	UserID       string
	CategoryID   int64
	Name         string
	Description  string
	Price        decimal.Decimal // precio base; si hay tamaños, se usa el del tamaño elegido
	ImageURL     string          // URL pública del archivo en el storage de la plataforma
	Active       bool
	DisplayOrder int64
	Sizes        []ProductSize
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSizes informa si el producto se vende por tamaño.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// ProductSize variante de precio de un producto (ej. "Pequeña", "Grande").
type ProductSize struct {
	ID        int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Order     int64
}
