package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/application/usecase"
)

// StoreHandler perfil público de la tienda del comerciante (protegido).
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener la tienda del comerciante
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store [get]
func (h *StoreHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "tienda no configurada")
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar la tienda
// @Tags         store
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertStoreRequest  true  "Datos públicos de la tienda"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/store [put]
func (h *StoreHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
