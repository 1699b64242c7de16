package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComplementGroup grupo de adicionales reutilizable (ej. "Bordes", "Salsas").
// MinSelect/MaxSelect limitan la cantidad total elegida; MaxSelect 0 = sin límite.
type ComplementGroup struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Required    bool
	MinSelect   int
	MaxSelect   int
	Items       []ComplementItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComplementItem opción dentro de un grupo; Order es la posición dentro del grupo.
type ComplementItem struct {
	ID      int64
	GroupID int64
	Name    string
	Price   decimal.Decimal
	Active  bool
	Order   int64
}

// ProductComplementGroup vincula un grupo a un producto; Order es la posición del grupo en ese producto.
type ProductComplementGroup struct {
	ID        int64
	ProductID int64
	GroupID   int64
	Order     int64
}

// ProductSpecificComplement sustituye, para un producto, los ítems genéricos de un grupo.
// Se reordena por su propio ID de fila, no por el del ítem.
type ProductSpecificComplement struct {
	ID               int64
	ProductID        int64
	GroupID          int64
	ComplementItemID int64
	PriceOverride    *decimal.Decimal
	Order            int64
}
