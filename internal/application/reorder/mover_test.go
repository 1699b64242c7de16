package reorder_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cardapio-api/internal/application/reorder"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// Los fakes embeben la interfaz: solo implementan las lecturas que usa Mover.

type fakeCategories struct {
	repository.CategoryRepository
	byID map[int64]*entity.Category
}

func (f fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return f.byID[id], nil
}

type fakeProducts struct {
	repository.ProductRepository
	byID map[int64]*entity.Product
}

func (f fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.byID[id], nil
}

type fakeGroups struct {
	repository.ComplementGroupRepository
	groups map[int64]*entity.ComplementGroup
	items  map[int64]*entity.ComplementItem
}

func (f fakeGroups) GetGroup(_ context.Context, id int64) (*entity.ComplementGroup, error) {
	return f.groups[id], nil
}

func (f fakeGroups) GetItem(_ context.Context, id int64) (*entity.ComplementItem, error) {
	return f.items[id], nil
}

type fakeLinks struct {
	repository.ProductComplementRepository
	links     map[int64]*entity.ProductComplementGroup
	specifics map[int64]*entity.ProductSpecificComplement
}

func (f fakeLinks) GetLink(_ context.Context, id int64) (*entity.ProductComplementGroup, error) {
	return f.links[id], nil
}

func (f fakeLinks) GetSpecific(_ context.Context, id int64) (*entity.ProductSpecificComplement, error) {
	return f.specifics[id], nil
}

type countingCache struct {
	repository.MenuCache
	invalidated []string
}

func (c *countingCache) Invalidate(_ context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type moverFixture struct {
	store *memStore
	cache *countingCache
	mover *reorder.Mover
}

func newMoverFixture() *moverFixture {
	s := newMemStore()
	seedCategories(s, 0, 1, 2)
	s.put("categories", 9, 0, map[string]any{"user_id": "otro"})

	s.put("products", 10, 0, map[string]any{"category_id": int64(1)})
	s.put("products", 11, 1, map[string]any{"category_id": int64(1)})
	s.put("products", 20, 0, map[string]any{"category_id": int64(2)})

	s.put("product_complement_groups", 900, 0, map[string]any{"product_id": int64(10)})
	s.put("product_complement_groups", 901, 1, map[string]any{"product_id": int64(10)})

	s.put("complement_items", 500, 0, map[string]any{"group_id": int64(50)})
	s.put("complement_items", 501, 1, map[string]any{"group_id": int64(50)})

	spec := func(id, group, order int64) {
		s.put("product_specific_complements", id, order, map[string]any{"product_id": int64(10), "group_id": group})
	}
	spec(950, 50, 0)
	spec(951, 50, 1)
	spec(960, 51, 0)

	cache := &countingCache{}
	m := reorder.NewMover(
		reorder.NewService(s, zerolog.Nop()),
		fakeCategories{byID: map[int64]*entity.Category{
			1: {ID: 1, UserID: testUser},
			2: {ID: 2, UserID: testUser},
			3: {ID: 3, UserID: testUser},
			9: {ID: 9, UserID: "otro"},
		}},
		fakeProducts{byID: map[int64]*entity.Product{
			10: {ID: 10, UserID: testUser, CategoryID: 1},
			11: {ID: 11, UserID: testUser, CategoryID: 1},
			20: {ID: 20, UserID: testUser, CategoryID: 2},
			30: {ID: 30, UserID: "otro", CategoryID: 9},
		}},
		fakeGroups{
			groups: map[int64]*entity.ComplementGroup{
				50: {ID: 50, UserID: testUser},
				70: {ID: 70, UserID: "otro"},
			},
			items: map[int64]*entity.ComplementItem{
				500: {ID: 500, GroupID: 50},
				501: {ID: 501, GroupID: 50},
				700: {ID: 700, GroupID: 70},
			},
		},
		fakeLinks{
			links: map[int64]*entity.ProductComplementGroup{
				900: {ID: 900, ProductID: 10, GroupID: 50},
				901: {ID: 901, ProductID: 10, GroupID: 51},
			},
			specifics: map[int64]*entity.ProductSpecificComplement{
				950: {ID: 950, ProductID: 10, GroupID: 50, ComplementItemID: 500},
				951: {ID: 951, ProductID: 10, GroupID: 50, ComplementItemID: 501},
				960: {ID: 960, ProductID: 10, GroupID: 51, ComplementItemID: 510},
			},
		},
		cache,
		zerolog.Nop(),
	)
	return &moverFixture{store: s, cache: cache, mover: m}
}

var owner = domain.Session{UserID: testUser}

func TestMover_CategoriaSoloTocaLaListaDelDueno(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveCategory(context.Background(), owner, 1, ordering.Down)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Len(t, res.Items, 3, "la categoría de otro comerciante no entra en el scope")
	assert.Equal(t, int64(1), f.store.order("categories", 1))
	assert.Equal(t, int64(0), f.store.order("categories", 2))
	assert.Equal(t, int64(0), f.store.order("categories", 9))
	assert.Equal(t, []string{testUser}, f.cache.invalidated)
}

func TestMover_ProductoDentroDeSuCategoria(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveProduct(context.Background(), owner, 11, ordering.Up)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(0), f.store.order("products", 11))
	assert.Equal(t, int64(1), f.store.order("products", 10))
	assert.Equal(t, int64(0), f.store.order("products", 20))
	assert.Equal(t, "display_order", f.store.calls[0].field)
}

func TestMover_BordeNoInvalidaCache(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveProduct(context.Background(), owner, 10, ordering.Up)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Empty(t, f.store.calls)
	assert.Empty(t, f.cache.invalidated)
}

func TestMover_GrupoDeProductoPorIDDeVinculo(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveProductGroup(context.Background(), owner, 10, 901, ordering.Up)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, int64(0), f.store.order("product_complement_groups", 901))
	assert.Equal(t, int64(1), f.store.order("product_complement_groups", 900))
}

func TestMover_ItemDentroDeSuGrupo(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveComplementItem(context.Background(), owner, 50, 500, ordering.Down)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, int64(1), f.store.order("complement_items", 500))
	assert.Equal(t, int64(0), f.store.order("complement_items", 501))
}

func TestMover_EspecificoConScopeProductoYGrupo(t *testing.T) {
	f := newMoverFixture()

	res, err := f.mover.MoveSpecificComplement(context.Background(), owner, 10, 950, ordering.Down)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	require.Len(t, res.Items, 2, "solo los específicos del mismo grupo")
	assert.Equal(t, int64(1), f.store.order("product_specific_complements", 950))
	assert.Equal(t, int64(0), f.store.order("product_specific_complements", 951))
	assert.Equal(t, int64(0), f.store.order("product_specific_complements", 960))

	res, err = f.mover.MoveSpecificComplement(context.Background(), owner, 10, 960, ordering.Down)
	require.NoError(t, err)
	assert.False(t, res.Moved, "único de su grupo: ya está en el borde")
}

func TestMover_PropiedadYScope(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		call func(m *reorder.Mover) error
		want error
	}{
		{"categoría inexistente", func(m *reorder.Mover) error {
			_, err := m.MoveCategory(ctx, owner, 404, ordering.Up)
			return err
		}, domain.ErrNotFound},
		{"categoría ajena", func(m *reorder.Mover) error {
			_, err := m.MoveCategory(ctx, owner, 9, ordering.Up)
			return err
		}, domain.ErrForbidden},
		{"producto ajeno", func(m *reorder.Mover) error {
			_, err := m.MoveProduct(ctx, owner, 30, ordering.Up)
			return err
		}, domain.ErrForbidden},
		{"vínculo de otro producto", func(m *reorder.Mover) error {
			_, err := m.MoveProductGroup(ctx, owner, 11, 900, ordering.Up)
			return err
		}, domain.ErrNotFound},
		{"grupo ajeno", func(m *reorder.Mover) error {
			_, err := m.MoveComplementItem(ctx, owner, 70, 700, ordering.Up)
			return err
		}, domain.ErrForbidden},
		{"ítem de otro grupo", func(m *reorder.Mover) error {
			_, err := m.MoveComplementItem(ctx, owner, 50, 700, ordering.Up)
			return err
		}, domain.ErrNotFound},
		{"específico inexistente", func(m *reorder.Mover) error {
			_, err := m.MoveSpecificComplement(ctx, owner, 10, 999, ordering.Up)
			return err
		}, domain.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newMoverFixture()
			assert.ErrorIs(t, tc.call(f.mover), tc.want)
			assert.Empty(t, f.store.calls)
			assert.Empty(t, f.cache.invalidated)
		})
	}
}
