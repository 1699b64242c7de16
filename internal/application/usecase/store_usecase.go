package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/entity"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// StoreUseCase perfil público de la tienda del comerciante.
type StoreUseCase struct {
	repo  repository.StoreRepository
	cache repository.MenuCache
	log   zerolog.Logger
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, cache repository.MenuCache, log zerolog.Logger) *StoreUseCase {
	return &StoreUseCase{repo: repo, cache: cache, log: log}
}

// Get devuelve la tienda del comerciante. nil, nil si todavía no la configuró.
func (uc *StoreUseCase) Get(ctx context.Context, sess domain.Session) (*dto.StoreResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByUser(ctx, sess.UserID)
	if err != nil || s == nil {
		return nil, err
	}
	return ToStoreResponse(s), nil
}

// Upsert crea o actualiza la tienda. El slug es único entre comerciantes (ErrDuplicate).
func (uc *StoreUseCase) Upsert(ctx context.Context, sess domain.Session, in dto.UpsertStoreRequest) (*dto.StoreResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if name == "" || !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: name requerido y slug en formato minúsculas-con-guiones", domain.ErrInvalidInput)
	}
	phone := entity.WhatsAppDigits(in.WhatsApp)
	if in.WhatsApp != "" && len(phone) < 10 {
		return nil, fmt.Errorf("%w: whatsapp inválido", domain.ErrInvalidInput)
	}
	if in.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("%w: delivery_fee negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	s := &entity.Store{
		UserID:      sess.UserID,
		Name:        name,
		Slug:        slug,
		WhatsApp:    phone,
		DeliveryFee: in.DeliveryFee,
		Open:        in.Open,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	invalidateMenu(ctx, uc.cache, uc.log, sess.UserID)
	return ToStoreResponse(s), nil
}

// ToStoreResponse salida pública de la tienda.
func ToStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		Name:        s.Name,
		Slug:        s.Slug,
		WhatsApp:    s.WhatsApp,
		DeliveryFee: s.DeliveryFee,
		Open:        s.Open,
	}
}
