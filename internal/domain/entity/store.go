package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store perfil público del comerciante: nombre, slug de la URL del cardápio y WhatsApp de pedidos.
type Store struct {
	UserID      string
	Name        string
	Slug        string
	WhatsApp    string
	DeliveryFee decimal.Decimal
	Open        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tipos de entrega aceptados en el pedido.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// WhatsAppDigits deja solo los dígitos del número (sin +, espacios, guiones ni paréntesis).
func WhatsAppDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
