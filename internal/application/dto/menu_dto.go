package dto

import "github.com/shopspring/decimal"

// PublicMenu menú público ya ordenado, tal como lo ve el cliente.
type PublicMenu struct {
	Store      StoreResponse  `json:"store"`
	Categories []MenuCategory `json:"categories"`
}

// MenuCategory categoría activa con productos activos.
type MenuCategory struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Products    []MenuProduct `json:"products"`
}

// MenuProduct producto con tamaños y grupos de complementos.
type MenuProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Sizes       []SizeResponse  `json:"sizes,omitempty"`
	Groups      []MenuGroup     `json:"groups,omitempty"`
}

// MenuGroup grupo de complementos aplicado al producto.
type MenuGroup struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Required  bool         `json:"required"`
	MinSelect int          `json:"min_select"`
	MaxSelect int          `json:"max_select"`
	Options   []MenuOption `json:"options"`
}

// MenuOption opción elegible; ID es el del ítem de complemento.
type MenuOption struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
