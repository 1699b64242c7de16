package dto

import "github.com/shopspring/decimal"

// UpsertStoreRequest datos públicos de la tienda.
type UpsertStoreRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	WhatsApp    string          `json:"whatsapp"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Open        bool            `json:"open"`
}

// StoreResponse salida de la tienda.
type StoreResponse struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	WhatsApp    string          `json:"whatsapp"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Open        bool            `json:"open"`
}
