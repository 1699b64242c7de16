package reorder

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// Mover resuelve, para cada tipo de entidad, el scope de hermanos y la propiedad del
// comerciante antes de delegar en Service. Invalida la caché del menú tras cada cambio.
type Mover struct {
	svc        *Service
	categories repository.CategoryRepository
	products   repository.ProductRepository
	groups     repository.ComplementGroupRepository
	links      repository.ProductComplementRepository
	cache      repository.MenuCache
	log        zerolog.Logger
}

// NewMover construye el caso de uso de reordenamiento.
func NewMover(
	svc *Service,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	groups repository.ComplementGroupRepository,
	links repository.ProductComplementRepository,
	cache repository.MenuCache,
	log zerolog.Logger,
) *Mover {
	return &Mover{
		svc:        svc,
		categories: categories,
		products:   products,
		groups:     groups,
		links:      links,
		cache:      cache,
		log:        log,
	}
}

// MoveCategory mueve una categoría entre las del comerciante.
func (m *Mover) MoveCategory(ctx context.Context, sess domain.Session, id int64, dir ordering.Direction) (*Result, error) {
	c, err := m.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	scope := repository.Scope{{Column: "user_id", Value: sess.UserID}}
	return m.move(ctx, sess, Categories, scope, id, dir)
}

// MoveProduct mueve un producto dentro de su categoría.
func (m *Mover) MoveProduct(ctx context.Context, sess domain.Session, id int64, dir ordering.Direction) (*Result, error) {
	p, err := m.ownedProduct(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	scope := repository.Scope{{Column: "category_id", Value: p.CategoryID}}
	return m.move(ctx, sess, Products, scope, id, dir)
}

// MoveProductGroup mueve un grupo de complementos dentro de un producto (por ID del vínculo).
func (m *Mover) MoveProductGroup(ctx context.Context, sess domain.Session, productID, linkID int64, dir ordering.Direction) (*Result, error) {
	if _, err := m.ownedProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	link, err := m.links.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil || link.ProductID != productID {
		return nil, domain.ErrNotFound
	}
	scope := repository.Scope{{Column: "product_id", Value: productID}}
	return m.move(ctx, sess, ProductGroups, scope, linkID, dir)
}

// MoveComplementItem mueve un ítem dentro de su grupo.
func (m *Mover) MoveComplementItem(ctx context.Context, sess domain.Session, groupID, itemID int64, dir ordering.Direction) (*Result, error) {
	g, err := m.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	if g.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	item, err := m.groups.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.GroupID != groupID {
		return nil, domain.ErrNotFound
	}
	scope := repository.Scope{{Column: "group_id", Value: groupID}}
	return m.move(ctx, sess, ComplementItems, scope, itemID, dir)
}

// MoveSpecificComplement mueve un complemento específico dentro de producto+grupo,
// identificado por el ID de la fila de vínculo.
func (m *Mover) MoveSpecificComplement(ctx context.Context, sess domain.Session, productID, linkID int64, dir ordering.Direction) (*Result, error) {
	if _, err := m.ownedProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	sc, err := m.links.GetSpecific(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if sc == nil || sc.ProductID != productID {
		return nil, domain.ErrNotFound
	}
	scope := repository.Scope{
		{Column: "product_id", Value: productID},
		{Column: "group_id", Value: sc.GroupID},
	}
	return m.move(ctx, sess, SpecificComplements, scope, linkID, dir)
}

func (m *Mover) ownedProduct(ctx context.Context, sess domain.Session, id int64) (*entity.Product, error) {
	p, err := m.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (m *Mover) move(ctx context.Context, sess domain.Session, t Target, scope repository.Scope, id int64, dir ordering.Direction) (*Result, error) {
	res, err := m.svc.Move(ctx, t, scope, id, dir)
	if err != nil {
		return nil, err
	}
	if res.Moved {
		if err := m.cache.Invalidate(ctx, sess.UserID); err != nil {
			m.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("invalidar caché del menú")
		}
	}
	return res, nil
}
