package postgres

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

var _ repository.OrderStore = (*OrderStore)(nil)

// orderable tablas con campo de orden y las columnas que delimitan sus listas de hermanos.
// Los nombres nunca llegan del cliente, pero se validan contra este mapa antes de armar SQL.
var orderable = map[string]struct {
	field  string
	scopes []string
}{
	"categories":                   {field: "order", scopes: []string{"user_id"}},
	"products":                     {field: "display_order", scopes: []string{"category_id"}},
	"product_complement_groups":    {field: "order", scopes: []string{"product_id"}},
	"complement_items":             {field: "order", scopes: []string{"group_id"}},
	"product_specific_complements": {field: "order", scopes: []string{"product_id", "group_id"}},
}

// OrderStore adaptador genérico de posiciones sobre PostgreSQL.
type OrderStore struct {
	q Querier
}

// NewOrderStore construye el adaptador. Acepta pool o tx (Querier).
func NewOrderStore(q Querier) *OrderStore {
	return &OrderStore{q: q}
}

// ListOrdered lista id y orden de los hermanos del scope, por orden y luego id.
func (s *OrderStore) ListOrdered(ctx context.Context, table, field string, scope repository.Scope) ([]ordering.Item, error) {
	query, args, err := listOrderedSQL(table, field, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s order: %w", table, err)
	}
	defer rows.Close()
	var items []ordering.Item
	for rows.Next() {
		var it ordering.Item
		if err := rows.Scan(&it.ID, &it.Order); err != nil {
			return nil, fmt.Errorf("scan %s order: %w", table, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateOrder fija el campo de orden de una fila. ErrNotFound si la fila ya no existe.
func (s *OrderStore) UpdateOrder(ctx context.Context, table, field string, id, value int64) error {
	query, err := updateOrderSQL(table, field)
	if err != nil {
		return err
	}
	cmd, err := s.q.Exec(ctx, query, id, value)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %d ya usado en %s", domain.ErrConflict, value, table)
		}
		return fmt.Errorf("update %s order: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Scopes devuelve todas las listas de hermanos existentes en la tabla (usado por la auditoría).
func (s *OrderStore) Scopes(ctx context.Context, table string) ([]repository.Scope, error) {
	def, ok := orderable[table]
	if !ok {
		return nil, fmt.Errorf("%w: tabla %q no ordenable", domain.ErrInvalidInput, table)
	}
	cols := make([]string, len(def.scopes))
	for i, c := range def.scopes {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}
	list := strings.Join(cols, ", ")
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", list, pgx.Identifier{table}.Sanitize(), list)

	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s scopes: %w", table, err)
	}
	defer rows.Close()
	var out []repository.Scope
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s scope: %w", table, err)
		}
		scope := make(repository.Scope, len(def.scopes))
		for i, c := range def.scopes {
			scope[i] = repository.ScopeFilter{Column: c, Value: vals[i]}
		}
		out = append(out, scope)
	}
	return out, rows.Err()
}

func checkOrderable(table, field string) error {
	def, ok := orderable[table]
	if !ok {
		return fmt.Errorf("%w: tabla %q no ordenable", domain.ErrInvalidInput, table)
	}
	if def.field != field {
		return fmt.Errorf("%w: %s no ordena por %q", domain.ErrInvalidInput, table, field)
	}
	return nil
}

func listOrderedSQL(table, field string, scope repository.Scope) (string, []any, error) {
	if err := checkOrderable(table, field); err != nil {
		return "", nil, err
	}
	allowed := orderable[table].scopes
	if len(scope) != len(allowed) {
		return "", nil, fmt.Errorf("%w: scope de %s debe filtrar por %v", domain.ErrInvalidInput, table, allowed)
	}
	filters := append(repository.Scope(nil), scope...)
	sort.Slice(filters, func(i, j int) bool { return filters[i].Column < filters[j].Column })

	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if !slices.Contains(allowed, f.Column) || (i > 0 && filters[i-1].Column == f.Column) {
			return "", nil, fmt.Errorf("%w: columna de scope %q", domain.ErrInvalidInput, f.Column)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", pgx.Identifier{f.Column}.Sanitize(), i+1))
		args = append(args, f.Value)
	}
	col := pgx.Identifier{field}.Sanitize()
	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE %s ORDER BY %s, id",
		col, pgx.Identifier{table}.Sanitize(), strings.Join(conds, " AND "), col)
	return query, args, nil
}

func updateOrderSQL(table, field string) (string, error) {
	if err := checkOrderable(table, field); err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s = $2 WHERE id = $1",
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{field}.Sanitize()), nil
}
