package repository

import (
	"context"

	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus tamaños.
// Create asigna ID y DisplayOrder (máximo de la categoría + 1); los tamaños se cargan con el producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	MoveToCategory(ctx context.Context, productID, categoryID int64) (int64, error)
	ReplaceSizes(ctx context.Context, productID int64, sizes []entity.ProductSize) error
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
