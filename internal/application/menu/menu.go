package menu

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/application/usecase"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// Repos puertos de lectura que necesita el menú público.
type Repos struct {
	Stores     repository.StoreRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Groups     repository.ComplementGroupRepository
	Links      repository.ProductComplementRepository
}

// MenuUseCase arma el menú público de una tienda, ya ordenado y filtrado a lo visible.
type MenuUseCase struct {
	repos Repos
	cache repository.MenuCache
	log   zerolog.Logger
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repos Repos, cache repository.MenuCache, log zerolog.Logger) *MenuUseCase {
	return &MenuUseCase{repos: repos, cache: cache, log: log}
}

// PublicMenu devuelve el menú de la tienda identificada por slug (ErrNotFound si no existe).
func (uc *MenuUseCase) PublicMenu(ctx context.Context, slug string) (*dto.PublicMenu, error) {
	store, err := uc.repos.Stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return uc.forStore(ctx, store)
}

// forStore sirve desde caché cuando hay entrada; si no, arma el menú y lo guarda.
// Los errores de caché solo se registran.
func (uc *MenuUseCase) forStore(ctx context.Context, store *entity.Store) (*dto.PublicMenu, error) {
	data, ok, err := uc.cache.Get(ctx, store.UserID)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", store.UserID).Msg("leer caché del menú")
	}
	if ok {
		var m dto.PublicMenu
		if err := json.Unmarshal(data, &m); err == nil {
			return &m, nil
		}
		uc.log.Warn().Str("user_id", store.UserID).Msg("entrada de caché corrupta, se reconstruye")
	}

	m, err := uc.build(ctx, store)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(m); err == nil {
		if err := uc.cache.Set(ctx, store.UserID, data); err != nil {
			uc.log.Warn().Err(err).Str("user_id", store.UserID).Msg("guardar caché del menú")
		}
	}
	return m, nil
}

func (uc *MenuUseCase) build(ctx context.Context, store *entity.Store) (*dto.PublicMenu, error) {
	categories, err := uc.repos.Categories.ListByUser(ctx, store.UserID)
	if err != nil {
		return nil, err
	}
	products, err := uc.repos.Products.ListByUser(ctx, store.UserID)
	if err != nil {
		return nil, err
	}
	groups, items, err := uc.loadGroups(ctx, store.UserID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]dto.MenuProduct)
	for _, p := range products {
		if !p.Active {
			continue
		}
		mp, err := uc.menuProduct(ctx, p, groups, items)
		if err != nil {
			return nil, err
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], *mp)
	}

	m := &dto.PublicMenu{Store: *usecase.ToStoreResponse(store), Categories: []dto.MenuCategory{}}
	for _, c := range categories {
		if !c.Active || len(byCategory[c.ID]) == 0 {
			continue
		}
		m.Categories = append(m.Categories, dto.MenuCategory{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Products:    byCategory[c.ID],
		})
	}
	return m, nil
}

// loadGroups carga los grupos del comerciante y un índice de ítems activos por ID.
func (uc *MenuUseCase) loadGroups(ctx context.Context, userID string) (map[int64]*entity.ComplementGroup, map[int64]*entity.ComplementItem, error) {
	list, err := uc.repos.Groups.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	groups := make(map[int64]*entity.ComplementGroup, len(list))
	items := make(map[int64]*entity.ComplementItem)
	for _, g := range list {
		groupItems, err := uc.repos.Groups.ListItemsByGroup(ctx, g.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, it := range groupItems {
			if !it.Active {
				continue
			}
			g.Items = append(g.Items, *it)
			items[it.ID] = it
		}
		groups[g.ID] = g
	}
	return groups, items, nil
}

// menuProduct aplica, por grupo, los complementos específicos del producto cuando existen;
// si no, las opciones genéricas del grupo. Grupos sin opciones visibles se omiten.
func (uc *MenuUseCase) menuProduct(
	ctx context.Context,
	p *entity.Product,
	groups map[int64]*entity.ComplementGroup,
	items map[int64]*entity.ComplementItem,
) (*dto.MenuProduct, error) {
	links, err := uc.repos.Links.ListLinksByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	specifics, err := uc.repos.Links.ListSpecificByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	specificByGroup := make(map[int64][]*entity.ProductSpecificComplement)
	for _, sc := range specifics {
		specificByGroup[sc.GroupID] = append(specificByGroup[sc.GroupID], sc)
	}

	mp := &dto.MenuProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	for _, s := range p.Sizes {
		mp.Sizes = append(mp.Sizes, dto.SizeResponse{ID: s.ID, Name: s.Name, Price: s.Price, Order: s.Order})
	}
	for _, l := range links {
		g, ok := groups[l.GroupID]
		if !ok {
			continue
		}
		mg := dto.MenuGroup{
			ID:        g.ID,
			Title:     g.Title,
			Required:  g.Required,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
		}
		if scs, ok := specificByGroup[g.ID]; ok {
			for _, sc := range scs {
				it, ok := items[sc.ComplementItemID]
				if !ok {
					continue
				}
				price := it.Price
				if sc.PriceOverride != nil {
					price = *sc.PriceOverride
				}
				mg.Options = append(mg.Options, dto.MenuOption{ID: it.ID, Name: it.Name, Price: price})
			}
		} else {
			for _, it := range g.Items {
				mg.Options = append(mg.Options, dto.MenuOption{ID: it.ID, Name: it.Name, Price: it.Price})
			}
		}
		if len(mg.Options) > 0 {
			mp.Groups = append(mp.Groups, mg)
		}
	}
	return mp, nil
}
