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

var _ repository.ComplementGroupRepository = (*ComplementGroupRepo)(nil)

const (
	groupColumns = `id, user_id, title, description, required, min_select, max_select, created_at, updated_at`
	itemColumns  = `id, group_id, name, price, active, "order"`
)

// ComplementGroupRepo grupos de complementos y sus ítems sobre PostgreSQL.
type ComplementGroupRepo struct {
	q Querier
}

// NewComplementGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComplementGroupRepository(q Querier) *ComplementGroupRepo {
	return &ComplementGroupRepo{q: q}
}

// CreateGroup persiste un grupo nuevo.
func (r *ComplementGroupRepo) CreateGroup(ctx context.Context, g *entity.ComplementGroup) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO complement_groups (user_id, title, description, required, min_select, max_select, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		g.UserID, g.Title, g.Description, g.Required, g.MinSelect, g.MaxSelect, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("insert complement group: %w", err)
	}
	return nil
}

// GetGroup obtiene un grupo por ID, sin ítems.
func (r *ComplementGroupRepo) GetGroup(ctx context.Context, id int64) (*entity.ComplementGroup, error) {
	g, err := scanGroup(r.q.QueryRow(ctx, `SELECT `+groupColumns+` FROM complement_groups WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get complement group: %w", err)
	}
	return g, nil
}

// UpdateGroup actualiza título y reglas de selección.
func (r *ComplementGroupRepo) UpdateGroup(ctx context.Context, g *entity.ComplementGroup) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE complement_groups
		SET title = $2, description = $3, required = $4, min_select = $5, max_select = $6, updated_at = $7
		WHERE id = $1`,
		g.ID, g.Title, g.Description, g.Required, g.MinSelect, g.MaxSelect, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update complement group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListGroupsByUser lista los grupos del comerciante por título.
func (r *ComplementGroupRepo) ListGroupsByUser(ctx context.Context, userID string) ([]*entity.ComplementGroup, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+groupColumns+` FROM complement_groups WHERE user_id = $1 ORDER BY title, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list complement groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComplementGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complement group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// DeleteGroup elimina el grupo con sus ítems y vínculos (FK en cascada).
func (r *ComplementGroupRepo) DeleteGroup(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM complement_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete complement group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem agrega el ítem al final del grupo.
func (r *ComplementGroupRepo) CreateItem(ctx context.Context, it *entity.ComplementItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO complement_items (group_id, name, price, active, "order")
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX("order"), -1) + 1 FROM complement_items WHERE group_id = $1 AND "order" >= 0))
		RETURNING id, "order"`,
		it.GroupID, it.Name, it.Price, it.Active,
	).Scan(&it.ID, &it.Order)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: grupo %d", domain.ErrNotFound, it.GroupID)
		}
		return fmt.Errorf("insert complement item: %w", err)
	}
	return nil
}

// GetItem obtiene un ítem por ID.
func (r *ComplementGroupRepo) GetItem(ctx context.Context, id int64) (*entity.ComplementItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM complement_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get complement item: %w", err)
	}
	return it, nil
}

// UpdateItem actualiza nombre, precio y disponibilidad.
func (r *ComplementGroupRepo) UpdateItem(ctx context.Context, it *entity.ComplementItem) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE complement_items SET name = $2, price = $3, active = $4 WHERE id = $1`,
		it.ID, it.Name, it.Price, it.Active,
	)
	if err != nil {
		return fmt.Errorf("update complement item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItemsByGroup lista los ítems del grupo en orden.
func (r *ComplementGroupRepo) ListItemsByGroup(ctx context.Context, groupID int64) ([]*entity.ComplementItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM complement_items WHERE group_id = $1 ORDER BY "order", id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list complement items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComplementItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complement item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// DeleteItem elimina el ítem; los complementos específicos que lo usan caen por FK.
func (r *ComplementGroupRepo) DeleteItem(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM complement_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete complement item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGroup(row pgx.Row) (*entity.ComplementGroup, error) {
	var g entity.ComplementGroup
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Required,
		&g.MinSelect, &g.MaxSelect, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func scanItem(row pgx.Row) (*entity.ComplementItem, error) {
	var it entity.ComplementItem
	if err := row.Scan(&it.ID, &it.GroupID, &it.Name, &it.Price, &it.Active, &it.Order); err != nil {
		return nil, err
	}
	return &it, nil
}
