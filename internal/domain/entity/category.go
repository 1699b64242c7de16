package entity

import "time"

// Category agrupa productos del cardápio. Order es la posición entre las categorías del comerciante.
type Category struct {
	ID          int64
	UserID      string
	Name        string
	Description string
	Active      bool
	Order       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
