package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
)

// ScopeFilter restringe una consulta a un conjunto de hermanos (columna = valor).
type ScopeFilter struct {
	Column string
	Value  any
}

// Scope conjunto de filtros que delimita la lista de hermanos de un reordenamiento.
type Scope []ScopeFilter

// Key representación estable del scope, usada para serializar movimientos sobre la misma lista.
func (s Scope) Key() string {
	parts := make([]string, 0, len(s))
	for _, f := range s {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Column, f.Value))
	}
	return strings.Join(parts, ",")
}

// OrderStore almacén genérico de posiciones: lista hermanos ordenados y actualiza un campo de orden.
// table y field provienen de un conjunto cerrado conocido por el adaptador.
type OrderStore interface {
	ListOrdered(ctx context.Context, table, field string, scope Scope) ([]ordering.Item, error)
	UpdateOrder(ctx context.Context, table, field string, id, value int64) error
}
