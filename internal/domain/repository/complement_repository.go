package repository

import (
	"context"

	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

// ComplementGroupRepository grupos de complementos del comerciante y sus ítems.
// CreateItem asigna Order (máximo del grupo + 1).
type ComplementGroupRepository interface {
	CreateGroup(ctx context.Context, group *entity.ComplementGroup) error
	GetGroup(ctx context.Context, id int64) (*entity.ComplementGroup, error)
	UpdateGroup(ctx context.Context, group *entity.ComplementGroup) error
	ListGroupsByUser(ctx context.Context, userID string) ([]*entity.ComplementGroup, error)
	DeleteGroup(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *entity.ComplementItem) error
	GetItem(ctx context.Context, id int64) (*entity.ComplementItem, error)
	UpdateItem(ctx context.Context, item *entity.ComplementItem) error
	ListItemsByGroup(ctx context.Context, groupID int64) ([]*entity.ComplementItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// ProductComplementRepository vínculos producto↔grupo y complementos específicos por producto.
// Attach asigna Order (máximo del producto + 1); AddSpecific, máximo de producto+grupo + 1.
type ProductComplementRepository interface {
	Attach(ctx context.Context, link *entity.ProductComplementGroup) error
	GetLink(ctx context.Context, id int64) (*entity.ProductComplementGroup, error)
	ListLinksByProduct(ctx context.Context, productID int64) ([]*entity.ProductComplementGroup, error)
	Detach(ctx context.Context, id int64) error

	AddSpecific(ctx context.Context, sc *entity.ProductSpecificComplement) error
	GetSpecific(ctx context.Context, id int64) (*entity.ProductSpecificComplement, error)
	ListSpecificByProduct(ctx context.Context, productID int64) ([]*entity.ProductSpecificComplement, error)
	RemoveSpecific(ctx context.Context, id int64) error
}
