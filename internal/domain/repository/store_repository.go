package repository

import (
	"context"

	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

// StoreRepository perfil público del comerciante (uno por usuario).
type StoreRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Store, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Store, error)
	Upsert(ctx context.Context, store *entity.Store) error
}
