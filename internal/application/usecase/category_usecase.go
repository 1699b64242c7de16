package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. La posición solo cambia vía reorder.Mover.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache repository.MenuCache
	log   zerolog.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, cache repository.MenuCache, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache, log: log}
}

// Create crea una categoría al final de la lista del comerciante.
func (uc *CategoryUseCase) Create(ctx context.Context, sess domain.Session, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Category{
		UserID:      sess.UserID,
		Name:        name,
		Description: in.Description,
		Active:      in.Active == nil || *in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría del comerciante. nil, nil si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, sess domain.Session, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.owned(ctx, sess, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update actualiza nombre, descripción o visibilidad.
func (uc *CategoryUseCase) Update(ctx context.Context, sess domain.Session, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.owned(ctx, sess, id)
	if err != nil || c == nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toCategoryResponse(c), nil
}

// List lista las categorías del comerciante por orden.
func (uc *CategoryUseCase) List(ctx context.Context, sess domain.Session) (*dto.CategoryListResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Delete elimina la categoría. Las hermanas conservan su orden (no se renumera).
func (uc *CategoryUseCase) Delete(ctx context.Context, sess domain.Session, id int64) error {
	c, err := uc.owned(ctx, sess, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

func (uc *CategoryUseCase) owned(ctx context.Context, sess domain.Session, id int64) (*entity.Category, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if c.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		Order:       c.Order,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
