package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con el repositorio de productos atado a ella.
// Se usa para crear o actualizar un producto junto con sus tamaños.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// invalidateMenu borra el menú público cacheado; un fallo de caché no aborta la escritura.
func invalidateMenu(ctx context.Context, cache repository.MenuCache, log zerolog.Logger, userID string) {
	if err := cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("invalidar caché del menú")
	}
}

func requireSession(sess domain.Session) error {
	if !sess.Valid() {
		return domain.ErrUnauthorized
	}
	return nil
}
