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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, category_id, name, description, price, image_url, active, display_order, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto al final de su categoría. Los tamaños se guardan con ReplaceSizes.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (user_id, category_id, name, description, price, image_url, active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(display_order), -1) + 1 FROM products WHERE category_id = $2 AND display_order >= 0),
			$8, $9)
		RETURNING id, display_order`
	err := r.q.QueryRow(ctx, query,
		p.UserID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.DisplayOrder)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, con sus tamaños.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.attachSizes(ctx, []*entity.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update actualiza datos editables. Categoría y orden cambian por MoveToCategory y reordenamiento.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, image_url = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MoveToCategory pasa el producto al final de otra categoría y devuelve su nuevo display_order.
func (r *ProductRepo) MoveToCategory(ctx context.Context, productID, categoryID int64) (int64, error) {
	var order int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET category_id = $2, updated_at = now(),
			display_order = (SELECT COALESCE(MAX(display_order), -1) + 1 FROM products WHERE category_id = $2 AND display_order >= 0)
		WHERE id = $1
		RETURNING display_order`,
		productID, categoryID,
	).Scan(&order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, categoryID)
		}
		return 0, fmt.Errorf("move product: %w", err)
	}
	return order, nil
}

// ReplaceSizes reemplaza los tamaños del producto en el orden recibido y completa ID, ProductID y Order.
func (r *ProductRepo) ReplaceSizes(ctx context.Context, productID int64, sizes []entity.ProductSize) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product sizes: %w", err)
	}
	for i := range sizes {
		s := &sizes[i]
		s.ProductID, s.Order = productID, int64(i)
		err := r.q.QueryRow(ctx,
			`INSERT INTO product_sizes (product_id, name, price, "order") VALUES ($1, $2, $3, $4) RETURNING id`,
			s.ProductID, s.Name, s.Price, s.Order,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert product size: %w", err)
		}
	}
	return nil
}

// ListByCategory lista los productos de la categoría por display_order.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY display_order, id`, categoryID)
}

// ListByUser lista todos los productos del comerciante, agrupables por categoría y ya en orden.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY category_id, display_order, id`, userID)
}

// Delete elimina un producto; tamaños y vínculos caen por FK.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, arg any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachSizes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachSizes carga los tamaños de todos los productos en una sola consulta.
func (r *ProductRepo) attachSizes(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, product_id, name, price, "order" FROM product_sizes WHERE product_id = ANY($1) ORDER BY product_id, "order", id`,
		ids)
	if err != nil {
		return fmt.Errorf("list product sizes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.ProductSize
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Name, &s.Price, &s.Order); err != nil {
			return fmt.Errorf("scan product size: %w", err)
		}
		if p, ok := byID[s.ProductID]; ok {
			p.Sizes = append(p.Sizes, s)
		}
	}
	return rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.UserID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Active, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
