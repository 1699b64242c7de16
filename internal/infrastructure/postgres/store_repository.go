package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `user_id, name, slug, whatsapp, delivery_fee, open, created_at, updated_at`

// StoreRepo perfil público de la tienda sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByUser obtiene la tienda del comerciante.
func (r *StoreRepo) GetByUser(ctx context.Context, userID string) (*entity.Store, error) {
	return r.get(ctx, `SELECT `+storeColumns+` FROM stores WHERE user_id = $1`, userID)
}

// GetBySlug obtiene la tienda por el slug de su URL pública.
func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	return r.get(ctx, `SELECT `+storeColumns+` FROM stores WHERE slug = $1`, slug)
}

// Upsert crea o actualiza la tienda del comerciante. ErrDuplicate si el slug ya es de otra tienda.
func (r *StoreRepo) Upsert(ctx context.Context, s *entity.Store) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stores (user_id, name, slug, whatsapp, delivery_fee, open, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, slug = EXCLUDED.slug, whatsapp = EXCLUDED.whatsapp,
			delivery_fee = EXCLUDED.delivery_fee, open = EXCLUDED.open, updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`,
		s.UserID, s.Name, s.Slug, s.WhatsApp, s.DeliveryFee, s.Open, s.UpdatedAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) get(ctx context.Context, query string, arg any) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.UserID, &s.Name, &s.Slug, &s.WhatsApp, &s.DeliveryFee, &s.Open, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}
