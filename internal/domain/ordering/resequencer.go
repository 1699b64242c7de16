package ordering

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/jhoicas/cardapio-api/internal/domain"
)

// Límites del intercambio de posiciones.
const (
	// MaxSafeOrder: por encima de este valor absoluto no se calcula un centinela.
	MaxSafeOrder int64 = 999_999_999
	// SentinelBase: los centinelas se asignan estrictamente por debajo de este valor.
	SentinelBase int64 = -999_999
)

// Direction sentido del movimiento dentro de la lista.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection valida el sentido recibido desde la API.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, s)
}

// Item par {id, orden} de una entidad ordenable.
type Item struct {
	ID    int64 `json:"id"`
	Order int64 `json:"order"`
}

// Swap los dos elementos cuyos órdenes se intercambian, con sus valores originales.
type Swap struct {
	Current Item
	Target  Item
}

// Plan valida el movimiento y devuelve el intercambio a realizar.
//
// moved=false y err=nil significa no-op (lista vacía o el elemento ya está en el borde).
// Los errores son de validación: ErrItemNotInScope, ErrDuplicateOrder, ErrUnsafeOrder.
// La lista recibida no se modifica.
func Plan(items []Item, targetID int64, dir Direction) (swap Swap, moved bool, err error) {
	if len(items) == 0 {
		return Swap{}, false, nil
	}
	if dir != Up && dir != Down {
		return Swap{}, false, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, dir)
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order == sorted[j].Order {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Order < sorted[j].Order
	})

	current := -1
	for i, it := range sorted {
		if it.ID == targetID {
			current = i
			break
		}
	}
	if current < 0 {
		return Swap{}, false, fmt.Errorf("%w: id %d", domain.ErrItemNotInScope, targetID)
	}

	target := current - 1
	if dir == Down {
		target = current + 1
	}
	if target < 0 || target >= len(sorted) {
		return Swap{}, false, nil
	}

	cur, adj := sorted[current], sorted[target]
	if cur.Order == adj.Order {
		return Swap{}, false, fmt.Errorf("%w: ids %d y %d tienen orden %d", domain.ErrDuplicateOrder, cur.ID, adj.ID, cur.Order)
	}
	if !Safe(cur.Order) || !Safe(adj.Order) {
		return Swap{}, false, fmt.Errorf("%w: ids %d (%d) y %d (%d)", domain.ErrUnsafeOrder, cur.ID, cur.Order, adj.ID, adj.Order)
	}
	return Swap{Current: cur, Target: adj}, true, nil
}

// Safe informa si un valor de orden está dentro de ±MaxSafeOrder.
func Safe(order int64) bool {
	return order <= MaxSafeOrder && order >= -MaxSafeOrder
}

// IsSentinel informa si el valor corresponde a un centinela que quedó tras un fallo parcial.
func IsSentinel(order int64) bool {
	return order < SentinelBase && Safe(order)
}

// Sentinels genera centinelas estrictamente decrecientes: SentinelBase - n, n = 1, 2, ...
// Es seguro para uso concurrente; dos intercambios simultáneos nunca comparten centinela.
type Sentinels struct {
	n atomic.Int64
}

// Next devuelve un centinela menor que SentinelBase - n y que todo orden presente en items.
// Un centinela que dejó otro proceso o una ejecución anterior sigue en la lista, así que
// el nuevo queda por debajo de él.
func (s *Sentinels) Next(items []Item) (int64, error) {
	v := SentinelBase - s.n.Add(1)
	for _, it := range items {
		if !Safe(it.Order) {
			return 0, fmt.Errorf("%w: id %d (%d)", domain.ErrUnsafeOrder, it.ID, it.Order)
		}
		if it.Order <= v {
			v = it.Order - 1
		}
	}
	if !Safe(v) {
		return 0, fmt.Errorf("%w: sin centinela disponible por debajo de %d", domain.ErrUnsafeOrder, v+1)
	}
	return v, nil
}
