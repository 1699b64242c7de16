package repository

import "context"

// MenuCache guarda la representación serializada del menú público de un comerciante.
// Get devuelve ok=false cuando no hay entrada. Invalidate se llama tras cada escritura del catálogo.
type MenuCache interface {
	Get(ctx context.Context, userID string) (data []byte, ok bool, err error)
	Set(ctx context.Context, userID string, data []byte) error
	Invalidate(ctx context.Context, userID string) error
}
