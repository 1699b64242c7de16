package dto

import "github.com/shopspring/decimal"

// CheckoutRequest carrito enviado desde el menú público.
type CheckoutRequest struct {
	CustomerName  string     `json:"customer_name"`
	DeliveryType  string     `json:"delivery_type"` // pickup | delivery
	Address       string     `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	Note          string     `json:"note"`
	Items         []CartLine `json:"items"`
}

// CartLine línea del carrito.
type CartLine struct {
	ProductID   int64            `json:"product_id"`
	SizeID      *int64           `json:"size_id"`
	Quantity    int              `json:"quantity"`
	Note        string           `json:"note"`
	Complements []CartComplement `json:"complements"`
}

// CartComplement complemento elegido en una línea.
type CartComplement struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// CheckoutResponse pedido listo para enviar por WhatsApp.
type CheckoutResponse struct {
	Reference   string          `json:"reference"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
}
