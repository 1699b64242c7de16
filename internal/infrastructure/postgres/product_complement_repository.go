package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

var _ repository.ProductComplementRepository = (*ProductComplementRepo)(nil)

const (
	linkColumns     = `id, product_id, group_id, "order"`
	specificColumns = `id, product_id, group_id, complement_item_id, price_override, "order"`
)

// ProductComplementRepo vínculos producto↔grupo y complementos específicos sobre PostgreSQL.
type ProductComplementRepo struct {
	q Querier
}

// NewProductComplementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductComplementRepository(q Querier) *ProductComplementRepo {
	return &ProductComplementRepo{q: q}
}

// Attach vincula el grupo al final de los grupos del producto. ErrDuplicate si ya estaba vinculado.
func (r *ProductComplementRepo) Attach(ctx context.Context, l *entity.ProductComplementGroup) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO product_complement_groups (product_id, group_id, "order")
		VALUES ($1, $2,
			(SELECT COALESCE(MAX("order"), -1) + 1 FROM product_complement_groups WHERE product_id = $1 AND "order" >= 0))
		RETURNING id, "order"`,
		l.ProductID, l.GroupID,
	).Scan(&l.ID, &l.Order)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("attach complement group: %w", err)
	}
	return nil
}

// GetLink obtiene un vínculo por su ID de fila.
func (r *ProductComplementRepo) GetLink(ctx context.Context, id int64) (*entity.ProductComplementGroup, error) {
	var l entity.ProductComplementGroup
	err := r.q.QueryRow(ctx, `SELECT `+linkColumns+` FROM product_complement_groups WHERE id = $1`, id).
		Scan(&l.ID, &l.ProductID, &l.GroupID, &l.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get complement link: %w", err)
	}
	return &l, nil
}

// ListLinksByProduct lista los grupos vinculados al producto en orden.
func (r *ProductComplementRepo) ListLinksByProduct(ctx context.Context, productID int64) ([]*entity.ProductComplementGroup, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+linkColumns+` FROM product_complement_groups WHERE product_id = $1 ORDER BY "order", id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list complement links: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductComplementGroup
	for rows.Next() {
		var l entity.ProductComplementGroup
		if err := rows.Scan(&l.ID, &l.ProductID, &l.GroupID, &l.Order); err != nil {
			return nil, fmt.Errorf("scan complement link: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Detach desvincula el grupo y borra los complementos específicos del producto para ese grupo.
func (r *ProductComplementRepo) Detach(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM product_specific_complements sc
		USING product_complement_groups l
		WHERE l.id = $1 AND sc.product_id = l.product_id AND sc.group_id = l.group_id`, id)
	if err != nil {
		return fmt.Errorf("delete specific complements of link: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_complement_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach complement group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSpecific agrega un complemento específico al final de producto+grupo.
func (r *ProductComplementRepo) AddSpecific(ctx context.Context, sc *entity.ProductSpecificComplement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO product_specific_complements (product_id, group_id, complement_item_id, price_override, "order")
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX("order"), -1) + 1 FROM product_specific_complements
			 WHERE product_id = $1 AND group_id = $2 AND "order" >= 0))
		RETURNING id, "order"`,
		sc.ProductID, sc.GroupID, sc.ComplementItemID, nullDecimal(sc.PriceOverride),
	).Scan(&sc.ID, &sc.Order)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert specific complement: %w", err)
	}
	return nil
}

// GetSpecific obtiene un complemento específico por su ID de fila.
func (r *ProductComplementRepo) GetSpecific(ctx context.Context, id int64) (*entity.ProductSpecificComplement, error) {
	sc, err := scanSpecific(r.q.QueryRow(ctx, `SELECT `+specificColumns+` FROM product_specific_complements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get specific complement: %w", err)
	}
	return sc, nil
}

// ListSpecificByProduct lista los complementos específicos del producto, por grupo y orden.
func (r *ProductComplementRepo) ListSpecificByProduct(ctx context.Context, productID int64) ([]*entity.ProductSpecificComplement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+specificColumns+` FROM product_specific_complements WHERE product_id = $1 ORDER BY group_id, "order", id`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("list specific complements: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductSpecificComplement
	for rows.Next() {
		sc, err := scanSpecific(rows)
		if err != nil {
			return nil, fmt.Errorf("scan specific complement: %w", err)
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

// RemoveSpecific elimina un complemento específico.
func (r *ProductComplementRepo) RemoveSpecific(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_specific_complements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete specific complement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSpecific(row pgx.Row) (*entity.ProductSpecificComplement, error) {
	var (
		sc       entity.ProductSpecificComplement
		override decimal.NullDecimal
	)
	if err := row.Scan(&sc.ID, &sc.ProductID, &sc.GroupID, &sc.ComplementItemID, &override, &sc.Order); err != nil {
		return nil, err
	}
	if override.Valid {
		sc.PriceOverride = &override.Decimal
	}
	return &sc, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
