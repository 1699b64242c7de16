package menu

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cardapio-api/internal/domain/entity"
)

// catalog implementa en memoria todos los repositorios que lee el menú.
type catalog struct {
	stores     []*entity.Store
	categories []*entity.Category
	products   []*entity.Product
	groups     []*entity.ComplementGroup
	items      []*entity.ComplementItem
	links      []*entity.ProductComplementGroup
	specifics  []*entity.ProductSpecificComplement
	reads      int
}

func (c *catalog) GetByUser(_ context.Context, userID string) (*entity.Store, error) {
	for _, s := range c.stores {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (c *catalog) GetBySlug(_ context.Context, slug string) (*entity.Store, error) {
	for _, s := range c.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, nil
}

func (c *catalog) Upsert(_ context.Context, s *entity.Store) error {
	c.stores = append(c.stores, s)
	return nil
}

type categoryRepo struct{ *catalog }

func (r categoryRepo) Create(_ context.Context, cat *entity.Category) error {
	r.categories = append(r.categories, cat)
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	for _, cat := range r.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (r categoryRepo) Delete(context.Context, int64) error            { return nil }

func (r categoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.Category, error) {
	r.reads++
	var out []*entity.Category
	for _, cat := range r.categories {
		if cat.UserID == userID {
			out = append(out, cat)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

type productRepo struct{ *catalog }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(context.Context, *entity.Product) error { return nil }
func (r productRepo) Delete(context.Context, int64) error           { return nil }

func (r productRepo) MoveToCategory(context.Context, int64, int64) (int64, error) { return 0, nil }

func (r productRepo) ReplaceSizes(context.Context, int64, []entity.ProductSize) error { return nil }

func (r productRepo) ListByCategory(_ context.Context, categoryID int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) ListByUser(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

type groupRepo struct{ *catalog }

func (r groupRepo) CreateGroup(context.Context, *entity.ComplementGroup) error { return nil }
func (r groupRepo) UpdateGroup(context.Context, *entity.ComplementGroup) error { return nil }
func (r groupRepo) DeleteGroup(context.Context, int64) error                   { return nil }
func (r groupRepo) CreateItem(context.Context, *entity.ComplementItem) error   { return nil }
func (r groupRepo) UpdateItem(context.Context, *entity.ComplementItem) error   { return nil }
func (r groupRepo) DeleteItem(context.Context, int64) error                    { return nil }

func (r groupRepo) GetGroup(_ context.Context, id int64) (*entity.ComplementGroup, error) {
	for _, g := range r.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (r groupRepo) GetItem(_ context.Context, id int64) (*entity.ComplementItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

// ListGroupsByUser devuelve copias, como haría una consulta real.
func (r groupRepo) ListGroupsByUser(_ context.Context, userID string) ([]*entity.ComplementGroup, error) {
	var out []*entity.ComplementGroup
	for _, g := range r.groups {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r groupRepo) ListItemsByGroup(_ context.Context, groupID int64) ([]*entity.ComplementItem, error) {
	var out []*entity.ComplementItem
	for _, it := range r.items {
		if it.GroupID == groupID {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

type linkRepo struct{ *catalog }

func (r linkRepo) Attach(context.Context, *entity.ProductComplementGroup) error         { return nil }
func (r linkRepo) Detach(context.Context, int64) error                                  { return nil }
func (r linkRepo) AddSpecific(context.Context, *entity.ProductSpecificComplement) error { return nil }
func (r linkRepo) RemoveSpecific(context.Context, int64) error                          { return nil }

func (r linkRepo) GetLink(_ context.Context, id int64) (*entity.ProductComplementGroup, error) {
	for _, l := range r.links {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r linkRepo) GetSpecific(_ context.Context, id int64) (*entity.ProductSpecificComplement, error) {
	for _, sc := range r.specifics {
		if sc.ID == id {
			return sc, nil
		}
	}
	return nil, nil
}

func (r linkRepo) ListLinksByProduct(_ context.Context, productID int64) ([]*entity.ProductComplementGroup, error) {
	var out []*entity.ProductComplementGroup
	for _, l := range r.links {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r linkRepo) ListSpecificByProduct(_ context.Context, productID int64) ([]*entity.ProductSpecificComplement, error) {
	var out []*entity.ProductSpecificComplement
	for _, sc := range r.specifics {
		if sc.ProductID == productID {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// memCache caché en memoria que cuenta aciertos.
type memCache struct {
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, userID string) ([]byte, bool, error) {
	d, ok := m.data[userID]
	if ok {
		m.hits++
	}
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, userID string, data []byte) error {
	m.data[userID] = data
	return nil
}

func (m *memCache) Invalidate(_ context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptrDec(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// pizzeria arma una tienda con dos categorías, tamaños, complementos genéricos y uno específico.
func pizzeria() *catalog {
	const user = "user-1"
	return &catalog{
		stores: []*entity.Store{{
			UserID: user, Name: "Pizzaria Bella", Slug: "bella",
			WhatsApp: "(11) 98765-4321", DeliveryFee: dec("5.00"), Open: true,
		}},
		categories: []*entity.Category{
			{ID: 2, UserID: user, Name: "Bebidas", Active: true, Order: 1},
			{ID: 1, UserID: user, Name: "Pizzas", Active: true, Order: 0},
			{ID: 3, UserID: user, Name: "Sobremesas", Active: false, Order: 2},
			{ID: 4, UserID: user, Name: "Vazia", Active: true, Order: 3},
		},
		products: []*entity.Product{
			{ID: 10, UserID: user, CategoryID: 1, Name: "Margherita", Price: dec("40.00"), Active: true, DisplayOrder: 0,
				Sizes: []entity.ProductSize{
					{ID: 100, ProductID: 10, Name: "Média", Price: dec("40.00"), Order: 0},
					{ID: 101, ProductID: 10, Name: "Grande", Price: dec("55.00"), Order: 1},
				}},
			{ID: 11, UserID: user, CategoryID: 1, Name: "Calabresa", Price: dec("45.00"), Active: true, DisplayOrder: 1},
			{ID: 12, UserID: user, CategoryID: 1, Name: "Fora do cardápio", Price: dec("1.00"), Active: false, DisplayOrder: 2},
			{ID: 20, UserID: user, CategoryID: 2, Name: "Refrigerante", Price: dec("8.00"), Active: true},
			{ID: 30, UserID: user, CategoryID: 3, Name: "Pudim", Price: dec("12.00"), Active: true},
		},
		groups: []*entity.ComplementGroup{
			{ID: 50, UserID: user, Title: "Bordas", MinSelect: 0, MaxSelect: 1},
			{ID: 51, UserID: user, Title: "Adicionais", MinSelect: 1, MaxSelect: 3, Required: true},
		},
		items: []*entity.ComplementItem{
			{ID: 500, GroupID: 50, Name: "Catupiry", Price: dec("8.00"), Active: true, Order: 0},
			{ID: 501, GroupID: 50, Name: "Cheddar", Price: dec("7.00"), Active: true, Order: 1},
			{ID: 502, GroupID: 50, Name: "Esgotada", Price: dec("7.00"), Active: false, Order: 2},
			{ID: 510, GroupID: 51, Name: "Bacon", Price: dec("6.00"), Active: true, Order: 0},
			{ID: 511, GroupID: 51, Name: "Azeitona", Price: dec("3.00"), Active: true, Order: 1},
		},
		links: []*entity.ProductComplementGroup{
			{ID: 900, ProductID: 10, GroupID: 51, Order: 1},
			{ID: 901, ProductID: 10, GroupID: 50, Order: 0},
			{ID: 902, ProductID: 11, GroupID: 51, Order: 0},
		},
		specifics: []*entity.ProductSpecificComplement{
			{ID: 950, ProductID: 11, GroupID: 51, ComplementItemID: 511, PriceOverride: ptrDec("2.00"), Order: 0},
		},
	}
}

func newMenu(c *catalog, cache *memCache) *MenuUseCase {
	return NewMenuUseCase(Repos{
		Stores:     c,
		Categories: categoryRepo{c},
		Products:   productRepo{c},
		Groups:     groupRepo{c},
		Links:      linkRepo{c},
	}, cache, zerolog.Nop())
}
