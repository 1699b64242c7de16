package reorder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// UpdateError fallo de E/S en uno de los tres pasos del intercambio.
// Si Step > 1, el elemento movido quedó con su centinela.
type UpdateError struct {
	Step int
	ID   int64
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("actualizar orden (paso %d, id %d): %v", e.Step, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// Result estado de la lista tras un movimiento.
type Result struct {
	Moved bool
	Items []ordering.Item
}

// Service intercambia la posición de un elemento con su vecino sin que dos elementos
// compartan un orden real en ningún momento:
//  1. actual := centinela
//  2. vecino := orden original del actual
//  3. actual := orden original del vecino
//
// No usa transacciones ni revierte el paso 1 si fallan los siguientes.
type Service struct {
	store     repository.OrderStore
	sentinels *ordering.Sentinels
	locks     *scopeLocks
	log       zerolog.Logger
}

// NewService construye el servicio de reordenamiento.
func NewService(store repository.OrderStore, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		sentinels: &ordering.Sentinels{},
		locks:     newScopeLocks(),
		log:       log,
	}
}

// Resequence mueve targetID una posición dentro de items. Devuelve true solo si las tres
// actualizaciones terminaron sin error. Las validaciones fallidas no tocan el almacén.
func (s *Service) Resequence(ctx context.Context, t Target, items []ordering.Item, targetID int64, dir ordering.Direction) (bool, error) {
	swap, moved, err := ordering.Plan(items, targetID, dir)
	if err != nil {
		ev := s.log.Warn()
		if errors.Is(err, domain.ErrItemNotInScope) || errors.Is(err, domain.ErrDuplicateOrder) {
			ev = s.log.Error().Bool("integridad", true)
		}
		ev.Err(err).Str("tabla", t.Table).Int64("id", targetID).Str("direccion", string(dir)).Msg("reordenamiento rechazado")
		return false, err
	}
	if !moved {
		s.log.Debug().Str("tabla", t.Table).Int64("id", targetID).Msg("reordenamiento sin cambios")
		return false, nil
	}

	sentinel, err := s.sentinels.Next(items)
	if err != nil {
		s.log.Error().Err(err).Str("tabla", t.Table).Int64("id", targetID).Msg("reordenamiento rechazado")
		return false, err
	}

	cur, adj := swap.Current, swap.Target
	steps := [3]struct {
		id    int64
		value int64
	}{
		{cur.ID, sentinel},
		{adj.ID, cur.Order},
		{cur.ID, adj.Order},
	}
	for i, st := range steps {
		if err := s.store.UpdateOrder(ctx, t.Table, t.Field, st.id, st.value); err != nil {
			uerr := &UpdateError{Step: i + 1, ID: st.id, Err: err}
			ev := s.log.Error().Err(uerr).Str("tabla", t.Table)
			if i > 0 {
				ev = ev.Int64("centinela", steps[0].value).Int64("id_con_centinela", cur.ID)
			}
			ev.Msg(t.FailureMessage())
			return false, uerr
		}
	}

	s.log.Info().
		Str("tabla", t.Table).
		Int64("id", cur.ID).
		Int64("vecino", adj.ID).
		Int64("orden_anterior", cur.Order).
		Int64("orden_nuevo", adj.Order).
		Msg("orden intercambiado")
	return true, nil
}

// Move carga los hermanos del scope, aplica Resequence y recarga la lista.
// Un segundo movimiento sobre el mismo scope mientras hay uno en curso falla con ErrReorderInProgress.
func (s *Service) Move(ctx context.Context, t Target, scope repository.Scope, id int64, dir ordering.Direction) (*Result, error) {
	unlock, ok := s.locks.tryLock(t.Table + "|" + scope.Key())
	if !ok {
		return nil, domain.ErrReorderInProgress
	}
	defer unlock()

	items, err := s.store.ListOrdered(ctx, t.Table, t.Field, scope)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", t.Kind, err)
	}
	moved, err := s.Resequence(ctx, t, items, id, dir)
	if err != nil {
		return nil, err
	}
	if !moved {
		return &Result{Items: items}, nil
	}
	reloaded, err := s.store.ListOrdered(ctx, t.Table, t.Field, scope)
	if err != nil {
		// el intercambio ya quedó hecho; se devuelve la lista calculada localmente
		s.log.Warn().Err(err).Str("tabla", t.Table).Msg("recargar lista tras intercambio")
		return &Result{Moved: true, Items: swapped(items, id, dir)}, nil
	}
	return &Result{Moved: true, Items: reloaded}, nil
}

// swapped aplica el intercambio planificado sobre una copia ordenada de items.
func swapped(items []ordering.Item, id int64, dir ordering.Direction) []ordering.Item {
	swap, _, _ := ordering.Plan(items, id, dir)
	out := make([]ordering.Item, len(items))
	copy(out, items)
	for i := range out {
		switch out[i].ID {
		case swap.Current.ID:
			out[i].Order = swap.Target.Order
		case swap.Target.ID:
			out[i].Order = swap.Current.Order
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

type scopeLocks struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newScopeLocks() *scopeLocks {
	return &scopeLocks{busy: make(map[string]struct{})}
}

func (l *scopeLocks) tryLock(key string) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.busy[key]; taken {
		return nil, false
	}
	l.busy[key] = struct{}{}
	return func() {
		l.mu.Lock()
		delete(l.busy, key)
		l.mu.Unlock()
	}, true
}
