package repository

import (
	"context"

	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Create asigna ID y Order (máximo del comerciante + 1). GetByID devuelve nil, nil si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}
