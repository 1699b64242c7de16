package reorder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// AuditStore OrderStore que además enumera las listas de hermanos existentes.
type AuditStore interface {
	repository.OrderStore
	Scopes(ctx context.Context, table string) ([]repository.Scope, error)
}

// Tipos de hallazgo de la auditoría.
const (
	FindingSentinel  = "sentinel"
	FindingDuplicate = "duplicate"
	FindingUnsafe    = "unsafe"
)

// Finding fila con un orden inconsistente.
type Finding struct {
	Table    string
	Scope    repository.Scope
	Kind     string
	ID       int64
	Order    int64
	Fixed    bool
	NewOrder int64
}

func (f Finding) String() string {
	s := fmt.Sprintf("%s [%s] id=%d order=%d %s", f.Table, f.Scope.Key(), f.ID, f.Order, f.Kind)
	if f.Fixed {
		s += fmt.Sprintf(" -> %d", f.NewOrder)
	}
	return s
}

// Audit recorre todas las listas ordenables buscando centinelas abandonados por un
// intercambio incompleto, órdenes repetidos y valores fuera de rango. Con fix=true
// mueve cada centinela al final de su lista.
func Audit(ctx context.Context, store AuditStore, fix bool, log zerolog.Logger) ([]Finding, error) {
	var findings []Finding
	for _, t := range Targets {
		scopes, err := store.Scopes(ctx, t.Table)
		if err != nil {
			return findings, err
		}
		for _, scope := range scopes {
			items, err := store.ListOrdered(ctx, t.Table, t.Field, scope)
			if err != nil {
				return findings, err
			}
			found, err := auditList(ctx, store, t, scope, items, fix)
			findings = append(findings, found...)
			if err != nil {
				return findings, err
			}
		}
		log.Debug().Str("tabla", t.Table).Int("listas", len(scopes)).Msg("auditoría de orden")
	}
	return findings, nil
}

func auditList(ctx context.Context, store AuditStore, t Target, scope repository.Scope, items []ordering.Item, fix bool) ([]Finding, error) {
	var out []Finding
	next := int64(0)
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Order >= next && !ordering.IsSentinel(it.Order) {
			next = it.Order + 1
		}
	}

	for _, it := range items {
		f := Finding{Table: t.Table, Scope: scope, ID: it.ID, Order: it.Order}
		switch {
		case ordering.IsSentinel(it.Order):
			f.Kind = FindingSentinel
			if fix {
				if err := store.UpdateOrder(ctx, t.Table, t.Field, it.ID, next); err != nil {
					out = append(out, f)
					return out, fmt.Errorf("reparar %s id %d: %w", t.Table, it.ID, err)
				}
				f.Fixed, f.NewOrder = true, next
				next++
			}
		case !ordering.Safe(it.Order):
			f.Kind = FindingUnsafe
		case seen[it.Order]:
			f.Kind = FindingDuplicate
		default:
			seen[it.Order] = true
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
