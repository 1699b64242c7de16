package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// Repositorios en memoria que reproducen la asignación de orden (máximo + 1) de Postgres.

type memCategories struct {
	rows   map[int64]*entity.Category
	nextID int64
}

func newMemCategories() *memCategories {
	return &memCategories{rows: make(map[int64]*entity.Category)}
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.nextID++
	c.ID = m.nextID
	c.Order = 0
	for _, o := range m.rows {
		if o.UserID == c.UserID && o.Order >= c.Order {
			c.Order = o.Order + 1
		}
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	if _, ok := m.rows[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCategories) ListByUser(_ context.Context, userID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.rows {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memCategories) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memProducts struct {
	rows       map[int64]*entity.Product
	nextID     int64
	failSizes  bool
	sizeWrites int
}

func newMemProducts() *memProducts {
	return &memProducts{rows: make(map[int64]*entity.Product)}
}

func (m *memProducts) nextOrder(categoryID int64) int64 {
	next := int64(0)
	for _, p := range m.rows {
		if p.CategoryID == categoryID && p.DisplayOrder >= next {
			next = p.DisplayOrder + 1
		}
	}
	return next
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.nextID++
	p.ID = m.nextID
	p.DisplayOrder = m.nextOrder(p.CategoryID)
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cur, ok := m.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.CategoryID, cp.DisplayOrder = cur.CategoryID, cur.DisplayOrder
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) MoveToCategory(_ context.Context, productID, categoryID int64) (int64, error) {
	p, ok := m.rows[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	order := m.nextOrder(categoryID)
	p.CategoryID, p.DisplayOrder = categoryID, order
	return order, nil
}

func (m *memProducts) ReplaceSizes(_ context.Context, productID int64, sizes []entity.ProductSize) error {
	m.sizeWrites++
	if m.failSizes {
		return errors.New("insert sizes")
	}
	for i := range sizes {
		sizes[i].ID = int64(100*productID) + int64(i)
		sizes[i].ProductID = productID
		sizes[i].Order = int64(i)
	}
	m.rows[productID].Sizes = append([]entity.ProductSize(nil), sizes...)
	return nil
}

func (m *memProducts) ListByCategory(_ context.Context, categoryID int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.rows {
		if p.CategoryID == categoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *memProducts) ListByUser(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.rows {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// snapshotTx simula una transacción: si fn falla, restaura el estado previo.
type snapshotTx struct {
	products *memProducts
	runs     int
}

func (tx *snapshotTx) RunCatalog(_ context.Context, fn func(repository.ProductRepository) error) error {
	tx.runs++
	saved := make(map[int64]*entity.Product, len(tx.products.rows))
	for id, p := range tx.products.rows {
		cp := *p
		saved[id] = &cp
	}
	savedNext := tx.products.nextID
	if err := fn(tx.products); err != nil {
		tx.products.rows, tx.products.nextID = saved, savedNext
		return err
	}
	return nil
}

type memStores struct {
	byUser map[string]*entity.Store
}

func (m *memStores) GetByUser(_ context.Context, userID string) (*entity.Store, error) {
	return m.byUser[userID], nil
}

func (m *memStores) GetBySlug(_ context.Context, slug string) (*entity.Store, error) {
	for _, s := range m.byUser {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStores) Upsert(_ context.Context, s *entity.Store) error {
	for uid, o := range m.byUser {
		if o.Slug == s.Slug && uid != s.UserID {
			return domain.ErrDuplicate
		}
	}
	m.byUser[s.UserID] = s
	return nil
}

// spyCache registra invalidaciones; failInvalidate simula un Redis caído.
type spyCache struct {
	invalidated    []string
	failInvalidate bool
}

func (c *spyCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (c *spyCache) Set(context.Context, string, []byte) error         { return nil }

func (c *spyCache) Invalidate(_ context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	if c.failInvalidate {
		return errors.New("redis caído")
	}
	return nil
}

type memGroups struct {
	groups map[int64]*entity.ComplementGroup
	items  map[int64]*entity.ComplementItem
	nextID int64
}

func newMemGroups() *memGroups {
	return &memGroups{groups: make(map[int64]*entity.ComplementGroup), items: make(map[int64]*entity.ComplementItem)}
}

func (m *memGroups) CreateGroup(_ context.Context, g *entity.ComplementGroup) error {
	m.nextID++
	g.ID = m.nextID
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memGroups) GetGroup(_ context.Context, id int64) (*entity.ComplementGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *memGroups) UpdateGroup(_ context.Context, g *entity.ComplementGroup) error {
	if _, ok := m.groups[g.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memGroups) ListGroupsByUser(_ context.Context, userID string) ([]*entity.ComplementGroup, error) {
	var out []*entity.ComplementGroup
	for _, g := range m.groups {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memGroups) DeleteGroup(_ context.Context, id int64) error {
	delete(m.groups, id)
	return nil
}

func (m *memGroups) CreateItem(_ context.Context, it *entity.ComplementItem) error {
	m.nextID++
	it.ID = m.nextID
	it.Order = 0
	for _, o := range m.items {
		if o.GroupID == it.GroupID && o.Order >= it.Order {
			it.Order = o.Order + 1
		}
	}
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memGroups) GetItem(_ context.Context, id int64) (*entity.ComplementItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memGroups) UpdateItem(_ context.Context, it *entity.ComplementItem) error {
	if _, ok := m.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memGroups) ListItemsByGroup(_ context.Context, groupID int64) ([]*entity.ComplementItem, error) {
	var out []*entity.ComplementItem
	for _, it := range m.items {
		if it.GroupID == groupID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memGroups) DeleteItem(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memLinks struct {
	links     map[int64]*entity.ProductComplementGroup
	specifics map[int64]*entity.ProductSpecificComplement
	nextID    int64
}

func newMemLinks() *memLinks {
	return &memLinks{
		links:     make(map[int64]*entity.ProductComplementGroup),
		specifics: make(map[int64]*entity.ProductSpecificComplement),
	}
}

func (m *memLinks) Attach(_ context.Context, l *entity.ProductComplementGroup) error {
	m.nextID++
	l.ID = m.nextID
	l.Order = 0
	for _, o := range m.links {
		if o.ProductID == l.ProductID && o.Order >= l.Order {
			l.Order = o.Order + 1
		}
	}
	cp := *l
	m.links[l.ID] = &cp
	return nil
}

func (m *memLinks) GetLink(_ context.Context, id int64) (*entity.ProductComplementGroup, error) {
	l, ok := m.links[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *memLinks) ListLinksByProduct(_ context.Context, productID int64) ([]*entity.ProductComplementGroup, error) {
	var out []*entity.ProductComplementGroup
	for _, l := range m.links {
		if l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memLinks) Detach(_ context.Context, id int64) error {
	if _, ok := m.links[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.links, id)
	return nil
}

func (m *memLinks) AddSpecific(_ context.Context, sc *entity.ProductSpecificComplement) error {
	m.nextID++
	sc.ID = m.nextID
	sc.Order = 0
	for _, o := range m.specifics {
		if o.ProductID == sc.ProductID && o.GroupID == sc.GroupID && o.Order >= sc.Order {
			sc.Order = o.Order + 1
		}
	}
	cp := *sc
	m.specifics[sc.ID] = &cp
	return nil
}

func (m *memLinks) GetSpecific(_ context.Context, id int64) (*entity.ProductSpecificComplement, error) {
	sc, ok := m.specifics[id]
	if !ok {
		return nil, nil
	}
	cp := *sc
	return &cp, nil
}

func (m *memLinks) ListSpecificByProduct(_ context.Context, productID int64) ([]*entity.ProductSpecificComplement, error) {
	var out []*entity.ProductSpecificComplement
	for _, sc := range m.specifics {
		if sc.ProductID == productID {
			cp := *sc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (m *memLinks) RemoveSpecific(_ context.Context, id int64) error {
	if _, ok := m.specifics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.specifics, id)
	return nil
}
