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

// ComplementUseCase grupos de complementos, sus ítems, vínculos con productos y
// complementos específicos por producto.
type ComplementUseCase struct {
	groups   repository.ComplementGroupRepository
	links    repository.ProductComplementRepository
	products repository.ProductRepository
	cache    repository.MenuCache
	log      zerolog.Logger
}

// NewComplementUseCase construye el caso de uso.
func NewComplementUseCase(
	groups repository.ComplementGroupRepository,
	links repository.ProductComplementRepository,
	products repository.ProductRepository,
	cache repository.MenuCache,
	log zerolog.Logger,
) *ComplementUseCase {
	return &ComplementUseCase{groups: groups, links: links, products: products, cache: cache, log: log}
}

// CreateGroup crea un grupo de complementos del comerciante.
func (uc *ComplementUseCase) CreateGroup(ctx context.Context, sess domain.Session, in dto.CreateComplementGroupRequest) (*dto.ComplementGroupResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	now := time.Now()
	g := &entity.ComplementGroup{
		UserID:      sess.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Required:    in.Required,
		MinSelect:   in.MinSelect,
		MaxSelect:   in.MaxSelect,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := normalizeGroup(g); err != nil {
		return nil, err
	}
	if err := uc.groups.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return toGroupResponse(g), nil
}

// GetGroup obtiene un grupo con sus ítems. nil, nil si no existe.
func (uc *ComplementUseCase) GetGroup(ctx context.Context, sess domain.Session, id int64) (*dto.ComplementGroupResponse, error) {
	g, err := uc.ownedGroup(ctx, sess, id)
	if err != nil || g == nil {
		return nil, err
	}
	items, err := uc.groups.ListItemsByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		g.Items = append(g.Items, *it)
	}
	return toGroupResponse(g), nil
}

// UpdateGroup actualiza título y reglas de selección.
func (uc *ComplementUseCase) UpdateGroup(ctx context.Context, sess domain.Session, id int64, in dto.UpdateComplementGroupRequest) (*dto.ComplementGroupResponse, error) {
	g, err := uc.ownedGroup(ctx, sess, id)
	if err != nil || g == nil {
		return nil, err
	}
	if in.Title != nil {
		g.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.Required != nil {
		g.Required = *in.Required
	}
	if in.MinSelect != nil {
		g.MinSelect = *in.MinSelect
	}
	if in.MaxSelect != nil {
		g.MaxSelect = *in.MaxSelect
	}
	if err := normalizeGroup(g); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now()
	if err := uc.groups.UpdateGroup(ctx, g); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toGroupResponse(g), nil
}

// ListGroups lista los grupos del comerciante (sin ítems).
func (uc *ComplementUseCase) ListGroups(ctx context.Context, sess domain.Session) (*dto.ComplementGroupListResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	list, err := uc.groups.ListGroupsByUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComplementGroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, *toGroupResponse(g))
	}
	return &dto.ComplementGroupListResponse{Items: out}, nil
}

// DeleteGroup elimina el grupo, sus ítems y sus vínculos.
func (uc *ComplementUseCase) DeleteGroup(ctx context.Context, sess domain.Session, id int64) error {
	g, err := uc.ownedGroup(ctx, sess, id)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrNotFound
	}
	if err := uc.groups.DeleteGroup(ctx, id); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

// CreateItem agrega un ítem al final del grupo.
func (uc *ComplementUseCase) CreateItem(ctx context.Context, sess domain.Session, groupID int64, in dto.CreateComplementItemRequest) (*dto.ComplementItemResponse, error) {
	g, err := uc.ownedGroup(ctx, sess, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: name requerido y price no negativo", domain.ErrInvalidInput)
	}
	item := &entity.ComplementItem{
		GroupID: groupID,
		Name:    name,
		Price:   in.Price,
		Active:  in.Active == nil || *in.Active,
	}
	if err := uc.groups.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toItemResponse(item), nil
}

// UpdateItem actualiza un ítem del grupo.
func (uc *ComplementUseCase) UpdateItem(ctx context.Context, sess domain.Session, groupID, itemID int64, in dto.UpdateComplementItemRequest) (*dto.ComplementItemResponse, error) {
	item, err := uc.ownedItem(ctx, sess, groupID, itemID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidInput)
		}
		item.Price = *in.Price
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := uc.groups.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toItemResponse(item), nil
}

// DeleteItem elimina un ítem; los demás conservan su orden.
func (uc *ComplementUseCase) DeleteItem(ctx context.Context, sess domain.Session, groupID, itemID int64) error {
	if _, err := uc.ownedItem(ctx, sess, groupID, itemID); err != nil {
		return err
	}
	if err := uc.groups.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

// AttachGroup vincula un grupo al producto, al final de sus grupos.
func (uc *ComplementUseCase) AttachGroup(ctx context.Context, sess domain.Session, productID int64, in dto.AttachGroupRequest) (*dto.ProductGroupResponse, error) {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	g, err := uc.ownedGroup(ctx, sess, in.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	link := &entity.ProductComplementGroup{ProductID: productID, GroupID: in.GroupID}
	if err := uc.links.Attach(ctx, link); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return &dto.ProductGroupResponse{ID: link.ID, ProductID: productID, GroupID: g.ID, Title: g.Title, Order: link.Order}, nil
}

// ListProductGroups lista los grupos vinculados al producto por orden.
func (uc *ComplementUseCase) ListProductGroups(ctx context.Context, sess domain.Session, productID int64) ([]dto.ProductGroupResponse, error) {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	links, err := uc.links.ListLinksByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductGroupResponse, 0, len(links))
	for _, l := range links {
		g, err := uc.groups.GetGroup(ctx, l.GroupID)
		if err != nil {
			return nil, err
		}
		title := ""
		if g != nil {
			title = g.Title
		}
		out = append(out, dto.ProductGroupResponse{ID: l.ID, ProductID: l.ProductID, GroupID: l.GroupID, Title: title, Order: l.Order})
	}
	return out, nil
}

// DetachGroup quita el vínculo producto↔grupo.
func (uc *ComplementUseCase) DetachGroup(ctx context.Context, sess domain.Session, productID, linkID int64) error {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return err
	}
	link, err := uc.links.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if link == nil || link.ProductID != productID {
		return domain.ErrNotFound
	}
	if err := uc.links.Detach(ctx, linkID); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

// AddSpecific agrega un complemento específico al producto, al final de producto+grupo.
func (uc *ComplementUseCase) AddSpecific(ctx context.Context, sess domain.Session, productID int64, in dto.AddSpecificComplementRequest) (*dto.SpecificComplementResponse, error) {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	item, err := uc.groups.GetItem(ctx, in.ComplementItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.ownedItem(ctx, sess, item.GroupID, item.ID); err != nil {
		return nil, err
	}
	if in.PriceOverride != nil && in.PriceOverride.IsNegative() {
		return nil, fmt.Errorf("%w: price_override negativo", domain.ErrInvalidInput)
	}
	sc := &entity.ProductSpecificComplement{
		ProductID:        productID,
		GroupID:          item.GroupID,
		ComplementItemID: item.ID,
		PriceOverride:    in.PriceOverride,
	}
	if err := uc.links.AddSpecific(ctx, sc); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return toSpecificResponse(sc), nil
}

// ListSpecific lista los complementos específicos del producto.
func (uc *ComplementUseCase) ListSpecific(ctx context.Context, sess domain.Session, productID int64) ([]dto.SpecificComplementResponse, error) {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return nil, err
	}
	list, err := uc.links.ListSpecificByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpecificComplementResponse, 0, len(list))
	for _, sc := range list {
		out = append(out, *toSpecificResponse(sc))
	}
	return out, nil
}

// RemoveSpecific elimina la fila de complemento específico.
func (uc *ComplementUseCase) RemoveSpecific(ctx context.Context, sess domain.Session, productID, linkID int64) error {
	if err := uc.ownProduct(ctx, sess, productID); err != nil {
		return err
	}
	sc, err := uc.links.GetSpecific(ctx, linkID)
	if err != nil {
		return err
	}
	if sc == nil || sc.ProductID != productID {
		return domain.ErrNotFound
	}
	if err := uc.links.RemoveSpecific(ctx, linkID); err != nil {
		return err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return nil
}

func (uc *ComplementUseCase) ownedGroup(ctx context.Context, sess domain.Session, id int64) (*entity.ComplementGroup, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	g, err := uc.groups.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	if g.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

func (uc *ComplementUseCase) ownedItem(ctx context.Context, sess domain.Session, groupID, itemID int64) (*entity.ComplementItem, error) {
	g, err := uc.ownedGroup(ctx, sess, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.groups.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.GroupID != groupID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ComplementUseCase) ownProduct(ctx context.Context, sess domain.Session, productID int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.UserID != sess.UserID {
		return domain.ErrForbidden
	}
	return nil
}

// normalizeGroup valida reglas de selección. Un grupo obligatorio exige al menos una opción.
func normalizeGroup(g *entity.ComplementGroup) error {
	if g.Title == "" {
		return fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}
	if g.MinSelect < 0 || g.MaxSelect < 0 {
		return fmt.Errorf("%w: min_select/max_select negativos", domain.ErrInvalidInput)
	}
	if g.Required && g.MinSelect == 0 {
		g.MinSelect = 1
	}
	if g.MaxSelect > 0 && g.MaxSelect < g.MinSelect {
		return fmt.Errorf("%w: max_select menor que min_select", domain.ErrInvalidInput)
	}
	return nil
}

func toItemResponse(it *entity.ComplementItem) *dto.ComplementItemResponse {
	return &dto.ComplementItemResponse{
		ID:      it.ID,
		GroupID: it.GroupID,
		Name:    it.Name,
		Price:   it.Price,
		Active:  it.Active,
		Order:   it.Order,
	}
}

func toGroupResponse(g *entity.ComplementGroup) *dto.ComplementGroupResponse {
	items := make([]dto.ComplementItemResponse, 0, len(g.Items))
	for i := range g.Items {
		items = append(items, *toItemResponse(&g.Items[i]))
	}
	return &dto.ComplementGroupResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Required:    g.Required,
		MinSelect:   g.MinSelect,
		MaxSelect:   g.MaxSelect,
		Items:       items,
	}
}

func toSpecificResponse(sc *entity.ProductSpecificComplement) *dto.SpecificComplementResponse {
	return &dto.SpecificComplementResponse{
		ID:               sc.ID,
		ProductID:        sc.ProductID,
		GroupID:          sc.GroupID,
		ComplementItemID: sc.ComplementItemID,
		PriceOverride:    sc.PriceOverride,
		Order:            sc.Order,
	}
}
