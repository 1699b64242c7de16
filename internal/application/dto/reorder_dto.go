package dto

import "github.com/jhoicas/cardapio-api/internal/domain/ordering"

// MoveRequest sentido del movimiento: "up" o "down".
type MoveRequest struct {
	Direction string `json:"direction"`
}

// MoveResponse resultado de un movimiento con la lista recargada.
type MoveResponse struct {
	Moved   bool            `json:"moved"`
	Message string          `json:"message"`
	Items   []ordering.Item `json:"items"`
}
