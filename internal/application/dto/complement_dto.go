package dto

import "github.com/shopspring/decimal"

// CreateComplementGroupRequest entrada para crear un grupo de complementos.
type CreateComplementGroupRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	MinSelect   int    `json:"min_select"`
	MaxSelect   int    `json:"max_select"`
}

// UpdateComplementGroupRequest entrada parcial de un grupo.
type UpdateComplementGroupRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Required    *bool   `json:"required"`
	MinSelect   *int    `json:"min_select"`
	MaxSelect   *int    `json:"max_select"`
}

// ComplementGroupResponse salida de un grupo con sus ítems por orden.
type ComplementGroupResponse struct {
	ID          int64                    `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Required    bool                     `json:"required"`
	MinSelect   int                      `json:"min_select"`
	MaxSelect   int                      `json:"max_select"`
	Items       []ComplementItemResponse `json:"items"`
}

// ComplementGroupListResponse grupos del comerciante.
type ComplementGroupListResponse struct {
	Items []ComplementGroupResponse `json:"items"`
}

// CreateComplementItemRequest entrada para crear un ítem; se agrega al final del grupo.
type CreateComplementItemRequest struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active *bool           `json:"active"`
}

// UpdateComplementItemRequest entrada parcial de un ítem.
type UpdateComplementItemRequest struct {
	Name   *string          `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Active *bool            `json:"active"`
}

// ComplementItemResponse salida de un ítem.
type ComplementItemResponse struct {
	ID      int64           `json:"id"`
	GroupID int64           `json:"group_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Active  bool            `json:"active"`
	Order   int64           `json:"order"`
}

// AttachGroupRequest vincula un grupo a un producto.
type AttachGroupRequest struct {
	GroupID int64 `json:"group_id"`
}

// ProductGroupResponse vínculo producto↔grupo.
type ProductGroupResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	GroupID   int64  `json:"group_id"`
	Title     string `json:"title"`
	Order     int64  `json:"order"`
}

// AddSpecificComplementRequest agrega un ítem específico para un producto; el grupo se toma del ítem.
type AddSpecificComplementRequest struct {
	ComplementItemID int64            `json:"complement_item_id"`
	PriceOverride    *decimal.Decimal `json:"price_override"`
}

// SpecificComplementResponse fila de complemento específico.
type SpecificComplementResponse struct {
	ID               int64            `json:"id"`
	ProductID        int64            `json:"product_id"`
	GroupID          int64            `json:"group_id"`
	ComplementItemID int64            `json:"complement_item_id"`
	PriceOverride    *decimal.Decimal `json:"price_override,omitempty"`
	Order            int64            `json:"order"`
}
