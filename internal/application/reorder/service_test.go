package reorder_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cardapio-api/internal/application/reorder"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memRow struct {
	order int64
	scope map[string]any
}

type updateCall struct {
	table string
	field string
	id    int64
	value int64
}

type memStore struct {
	mu       sync.Mutex
	rows     map[string]map[int64]*memRow
	calls    []updateCall
	failAt   int // número de llamada a UpdateOrder que falla (1-based); 0 = nunca
	listHook func()
	lists    int
	failList int  // número de llamada a ListOrdered que falla (1-based); 0 = nunca
	unique   bool // rechaza órdenes repetidos dentro de tabla+scope, como los UNIQUE de la migración
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]map[int64]*memRow)}
}

func (s *memStore) put(table string, id, order int64, scope map[string]any) {
	if s.rows[table] == nil {
		s.rows[table] = make(map[int64]*memRow)
	}
	s.rows[table][id] = &memRow{order: order, scope: scope}
}

func (s *memStore) order(table string, id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[table][id].order
}

func (s *memStore) ListOrdered(_ context.Context, table, _ string, scope repository.Scope) ([]ordering.Item, error) {
	if s.listHook != nil {
		s.listHook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.failList > 0 && s.lists == s.failList {
		return nil, errors.New("conexión cerrada")
	}
	var out []ordering.Item
	for id, r := range s.rows[table] {
		match := true
		for _, f := range scope {
			if r.scope[f.Column] != f.Value {
				match = false
				break
			}
		}
		if match {
			out = append(out, ordering.Item{ID: id, Order: r.order})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *memStore) UpdateOrder(_ context.Context, table, field string, id, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, updateCall{table, field, id, value})
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return errors.New("timeout de red")
	}
	r, ok := s.rows[table][id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.unique {
		for otherID, o := range s.rows[table] {
			if otherID != id && o.order == value && fmt.Sprint(o.scope) == fmt.Sprint(r.scope) {
				return fmt.Errorf("%w: orden %d", domain.ErrConflict, value)
			}
		}
	}
	r.order = value
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "user-1"

var userScope = repository.Scope{{Column: "user_id", Value: testUser}}

func seedCategories(s *memStore, orders ...int64) {
	for i, o := range orders {
		s.put("categories", int64(i+1), o, map[string]any{"user_id": testUser})
	}
}

func newService(s *memStore) *reorder.Service {
	return reorder.NewService(s, zerolog.Nop())
}

func assertUnique(t *testing.T, items []ordering.Item) {
	t.Helper()
	seen := make(map[int64]int64, len(items))
	for _, it := range items {
		if other, dup := seen[it.Order]; dup {
			t.Fatalf("ids %d y %d comparten el orden %d", other, it.ID, it.Order)
		}
		seen[it.Order] = it.ID
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del intercambio
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_IntercambioCorrecto(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	svc := newService(store)

	res, err := svc.Move(context.Background(), reorder.Categories, userScope, 2, ordering.Up)
	require.NoError(t, err)
	require.True(t, res.Moved)

	assert.Equal(t, int64(1), store.order("categories", 1))
	assert.Equal(t, int64(0), store.order("categories", 2))
	assert.Equal(t, int64(2), store.order("categories", 3), "el tercer elemento no se toca")
	assert.Equal(t, []ordering.Item{{ID: 2, Order: 0}, {ID: 1, Order: 1}, {ID: 3, Order: 2}}, res.Items)
}

func TestMove_TresPasosEnOrdenConCentinela(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	svc := newService(store)

	_, err := svc.Move(context.Background(), reorder.Categories, userScope, 2, ordering.Up)
	require.NoError(t, err)

	require.Len(t, store.calls, 3)
	assert.Equal(t, int64(2), store.calls[0].id)
	assert.True(t, ordering.IsSentinel(store.calls[0].value), "paso 1 asigna un centinela")
	assert.Equal(t, updateCall{"categories", "order", 1, 1}, store.calls[1], "paso 2: el vecino recibe el orden original del actual")
	assert.Equal(t, updateCall{"categories", "order", 2, 0}, store.calls[2], "paso 3: el actual recibe el orden original del vecino")
}

func TestMove_CampoDisplayOrderEnProductos(t *testing.T) {
	store := newMemStore()
	scope := repository.Scope{{Column: "category_id", Value: int64(10)}}
	store.put("products", 1, 5, map[string]any{"category_id": int64(10)})
	store.put("products", 2, 9, map[string]any{"category_id": int64(10)})
	store.put("products", 3, 7, map[string]any{"category_id": int64(11)})
	svc := newService(store)

	res, err := svc.Move(context.Background(), reorder.Products, scope, 1, ordering.Down)
	require.NoError(t, err)
	require.True(t, res.Moved)

	for _, c := range store.calls {
		assert.Equal(t, "display_order", c.field)
		assert.NotEqual(t, int64(3), c.id, "un producto de otra categoría no participa")
	}
	assert.Equal(t, int64(9), store.order("products", 1))
	assert.Equal(t, int64(5), store.order("products", 2))
}

func TestMove_BordesSonNoOp(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	svc := newService(store)

	res, err := svc.Move(context.Background(), reorder.Categories, userScope, 1, ordering.Up)
	require.NoError(t, err)
	assert.False(t, res.Moved)

	res, err = svc.Move(context.Background(), reorder.Categories, userScope, 3, ordering.Down)
	require.NoError(t, err)
	assert.False(t, res.Moved)

	assert.Empty(t, store.calls)
	assert.Equal(t, int64(0), store.order("categories", 1))
	assert.Equal(t, int64(2), store.order("categories", 3))
}

func TestMove_SubirYBajarVuelveAlOriginal(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 4, 9)
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Move(ctx, reorder.Categories, userScope, 2, ordering.Up)
	require.NoError(t, err)
	_, err = svc.Move(ctx, reorder.Categories, userScope, 2, ordering.Down)
	require.NoError(t, err)

	assert.Equal(t, int64(0), store.order("categories", 1))
	assert.Equal(t, int64(4), store.order("categories", 2))
	assert.Equal(t, int64(9), store.order("categories", 3))
}

func TestMove_UnicidadTrasVariosMovimientos(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 3, 8, 12, 20, 21)
	svc := newService(store)
	ctx := context.Background()

	moves := []struct {
		id  int64
		dir ordering.Direction
	}{
		{5, ordering.Up}, {5, ordering.Up}, {1, ordering.Down}, {3, ordering.Up},
		{2, ordering.Down}, {4, ordering.Up}, {5, ordering.Down}, {1, ordering.Up},
	}
	for _, mv := range moves {
		res, err := svc.Move(ctx, reorder.Categories, userScope, mv.id, mv.dir)
		require.NoError(t, err)
		assertUnique(t, res.Items)
		for _, it := range res.Items {
			assert.False(t, ordering.IsSentinel(it.Order), "tras un movimiento exitoso no quedan centinelas")
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones: ninguna toca el almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestResequence_IDInexistenteSinActualizaciones(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	items := []ordering.Item{{ID: 1, Order: 0}, {ID: 2, Order: 1}}

	ok, err := svc.Resequence(context.Background(), reorder.Categories, items, 99, ordering.Up)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrItemNotInScope)
	assert.Empty(t, store.calls)
}

func TestResequence_ListaVacia(t *testing.T) {
	store := newMemStore()
	svc := newService(store)

	ok, err := svc.Resequence(context.Background(), reorder.Categories, nil, 1, ordering.Down)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Empty(t, store.calls)
}

func TestResequence_OrdenIgualAborta(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	items := []ordering.Item{{ID: 1, Order: 2}, {ID: 2, Order: 2}, {ID: 3, Order: 5}}

	ok, err := svc.Resequence(context.Background(), reorder.ComplementItems, items, 2, ordering.Up)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
	assert.Empty(t, store.calls)
}

func TestResequence_DesbordeAborta(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	items := []ordering.Item{{ID: 1, Order: 0}, {ID: 2, Order: 1_000_000_000}}

	ok, err := svc.Resequence(context.Background(), reorder.Categories, items, 1, ordering.Down)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrUnsafeOrder)
	assert.Empty(t, store.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de E/S
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_FalloEnPaso1NoCambiaNada(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1)
	store.failAt = 1
	svc := newService(store)

	_, err := svc.Move(context.Background(), reorder.Categories, userScope, 2, ordering.Up)

	var uerr *reorder.UpdateError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 1, uerr.Step)
	assert.Equal(t, int64(0), store.order("categories", 1))
	assert.Equal(t, int64(1), store.order("categories", 2))
}

func TestMove_FalloEnPaso2DejaCentinelaSinDuplicados(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	store.failAt = 2
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Move(ctx, reorder.Categories, userScope, 2, ordering.Up)

	var uerr *reorder.UpdateError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 2, uerr.Step)
	assert.Equal(t, int64(1), uerr.ID)
	assert.True(t, ordering.IsSentinel(store.order("categories", 2)), "sin rollback: el elemento movido queda en su centinela")
	assert.Equal(t, int64(0), store.order("categories", 1))

	items, err := store.ListOrdered(ctx, "categories", "order", userScope)
	require.NoError(t, err)
	assertUnique(t, items)
	assert.Equal(t, int64(2), items[0].ID, "el centinela ordena al extremo de la lista")

	// Reintento tras recargar: el elemento sale del centinela y la lista sigue sin duplicados.
	store.failAt = 0
	res, err := svc.Move(ctx, reorder.Categories, userScope, 2, ordering.Down)
	require.NoError(t, err)
	require.True(t, res.Moved)
	assertUnique(t, res.Items)
	assert.Equal(t, int64(0), store.order("categories", 2))
}

func TestMove_CentinelaDeOtroProcesoNoColisiona(t *testing.T) {
	store := newMemStore()
	store.unique = true
	seedCategories(store, 0, 1, 2)
	ctx := context.Background()

	// primer proceso: falla en el paso 2 y deja el id 2 en su centinela
	store.failAt = 2
	_, err := newService(store).Move(ctx, reorder.Categories, userScope, 2, ordering.Up)
	require.Error(t, err)
	left := store.order("categories", 2)
	require.True(t, ordering.IsSentinel(left))

	// proceso reiniciado: su contador vuelve a empezar
	store.failAt = 0
	restarted := newService(store)
	res, err := restarted.Move(ctx, reorder.Categories, userScope, 3, ordering.Up)
	require.NoError(t, err)
	require.True(t, res.Moved)
	assert.Less(t, store.calls[len(store.calls)-3].value, left, "el nuevo centinela queda por debajo del existente")
	assert.Equal(t, int64(0), store.order("categories", 3))
	assert.Equal(t, int64(2), store.order("categories", 1))
	assert.Equal(t, left, store.order("categories", 2))
	assertUnique(t, res.Items)
}

func TestMove_FalloEnPaso3(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1)
	store.failAt = 3
	svc := newService(store)

	_, err := svc.Move(context.Background(), reorder.Categories, userScope, 2, ordering.Up)

	var uerr *reorder.UpdateError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 3, uerr.Step)
	assert.Equal(t, int64(1), store.order("categories", 1), "el vecino ya tomó el orden original")
	assert.True(t, ordering.IsSentinel(store.order("categories", 2)))
}

func TestMove_RecargaFallidaDevuelveListaLocal(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	store.failList = 2
	svc := newService(store)

	res, err := svc.Move(context.Background(), reorder.Categories, userScope, 3, ordering.Up)
	require.NoError(t, err, "el intercambio ya se aplicó")
	require.True(t, res.Moved)
	assert.Equal(t, []ordering.Item{{ID: 1, Order: 0}, {ID: 3, Order: 1}, {ID: 2, Order: 2}}, res.Items)
	assert.Equal(t, int64(1), store.order("categories", 3))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia por scope
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_MismoScopeEnCursoRechaza(t *testing.T) {
	store := newMemStore()
	seedCategories(store, 0, 1, 2)
	store.put("categories", 10, 0, map[string]any{"user_id": "otro"})
	store.put("categories", 11, 1, map[string]any{"user_id": "otro"})
	svc := newService(store)

	entered := make(chan struct{})
	release := make(chan struct{})
	var first atomic.Bool
	store.listHook = func() {
		if first.CompareAndSwap(false, true) {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Move(context.Background(), reorder.Categories, userScope, 2, ordering.Up)
		done <- err
	}()
	<-entered

	_, err := svc.Move(context.Background(), reorder.Categories, userScope, 3, ordering.Up)
	assert.ErrorIs(t, err, domain.ErrReorderInProgress)

	otherScope := repository.Scope{{Column: "user_id", Value: "otro"}}
	res, err := svc.Move(context.Background(), reorder.Categories, otherScope, 11, ordering.Up)
	require.NoError(t, err, "otro scope no queda bloqueado")
	assert.True(t, res.Moved)

	close(release)
	require.NoError(t, <-done)

	_, err = svc.Move(context.Background(), reorder.Categories, userScope, 3, ordering.Up)
	assert.NoError(t, err, "al terminar el primero, el scope se libera")
}

func TestTarget_Mensajes(t *testing.T) {
	assert.Equal(t, "erro ao atualizar ordem das categorias", reorder.Categories.FailureMessage())
	assert.Equal(t, "erro ao atualizar ordem das produtos", reorder.Products.FailureMessage())
	assert.Equal(t, "ordem das complementos atualizada", reorder.ComplementItems.SuccessMessage())
}
