package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y sus tamaños.
type ProductUseCase struct {
	tx         CatalogTxRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      repository.MenuCache
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx CatalogTxRunner,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	cache repository.MenuCache,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{tx: tx, products: products, categories: categories, cache: cache, log: log}
}

// Create crea el producto al final de su categoría y sus tamaños, en una sola transacción.
func (uc *ProductUseCase) Create(ctx context.Context, sess domain.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.ownCategory(ctx, sess, in.CategoryID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidInput)
	}
	sizes, err := toSizes(in.Sizes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		UserID:      sess.UserID,
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Active:      in.Active == nil || *in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		if len(sizes) == 0 {
			return nil
		}
		if err := products.ReplaceSizes(ctx, p.ID, sizes); err != nil {
			return err
		}
		p.Sizes = sizes
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toProductResponse(p), nil
}

// GetByID obtiene un producto con sus tamaños. nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, sess domain.Session, id int64) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, sess, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza el producto. Un cambio de categoría lo ubica al final de la nueva.
func (uc *ProductUseCase) Update(ctx context.Context, sess domain.Session, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, sess, id)
	if err != nil || p == nil {
		return nil, err
	}
	newCategory := in.CategoryID != nil && *in.CategoryID != p.CategoryID
	if newCategory {
		if err := uc.ownCategory(ctx, sess, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	var sizes []entity.ProductSize
	if in.Sizes != nil {
		if sizes, err = toSizes(*in.Sizes); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = time.Now()

	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository) error {
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if newCategory {
			order, err := products.MoveToCategory(ctx, p.ID, *in.CategoryID)
			if err != nil {
				return err
			}
			p.CategoryID, p.DisplayOrder = *in.CategoryID, order
		}
		if in.Sizes != nil {
			if err := products.ReplaceSizes(ctx, p.ID, sizes); err != nil {
				return err
			}
			p.Sizes = sizes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toProductResponse(p), nil
}

// ListByCategory lista los productos de una categoría por display_order.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, sess domain.Session, categoryID int64) (*dto.ProductListResponse, error) {
	if err := uc.ownCategory(ctx, sess, categoryID); err != nil {
		return nil, err
	}
	list, err := uc.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Delete elimina el producto (tamaños y vínculos caen por FK). No se renumera.
func (uc *ProductUseCase) Delete(ctx context.Context, sess domain.Session, id int64) error {
	p, err := uc.owned(ctx, sess, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

func (uc *ProductUseCase) owned(ctx context.Context, sess domain.Session, id int64) (*entity.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (uc *ProductUseCase) ownCategory(ctx context.Context, sess domain.Session, categoryID int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.UserID != sess.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func toSizes(in []dto.SizeInput) ([]entity.ProductSize, error) {
	sizes := make([]entity.ProductSize, 0, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" || s.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: tamaño inválido", domain.ErrInvalidInput)
		}
		sizes = append(sizes, entity.ProductSize{Name: name, Price: s.Price})
	}
	return sizes, nil
}

func toSizeResponses(sizes []entity.ProductSize) []dto.SizeResponse {
	out := make([]dto.SizeResponse, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, dto.SizeResponse{ID: s.ID, Name: s.Name, Price: s.Price, Order: s.Order})
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Active:       p.Active,
		DisplayOrder: p.DisplayOrder,
		Sizes:        toSizeResponses(p.Sizes),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
