package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/application/reorder"
	"github.com/jhoicas/cardapio-api/internal/domain"
	"github.com/jhoicas/cardapio-api/internal/domain/ordering"
)

// OrderMover casos de uso de reordenamiento que expone la API (implementado por *reorder.Mover).
type OrderMover interface {
	MoveCategory(ctx context.Context, sess domain.Session, id int64, dir ordering.Direction) (*reorder.Result, error)
	MoveProduct(ctx context.Context, sess domain.Session, id int64, dir ordering.Direction) (*reorder.Result, error)
	MoveProductGroup(ctx context.Context, sess domain.Session, productID, linkID int64, dir ordering.Direction) (*reorder.Result, error)
	MoveComplementItem(ctx context.Context, sess domain.Session, groupID, itemID int64, dir ordering.Direction) (*reorder.Result, error)
	MoveSpecificComplement(ctx context.Context, sess domain.Session, productID, linkID int64, dir ordering.Direction) (*reorder.Result, error)
}

// ReorderHandler endpoints POST .../move: intercambian un elemento con su vecino.
type ReorderHandler struct {
	mover OrderMover
	log   zerolog.Logger
}

// NewReorderHandler construye el handler.
func NewReorderHandler(mover OrderMover, log zerolog.Logger) *ReorderHandler {
	return &ReorderHandler{mover: mover, log: log}
}

// MoveCategory godoc
// @Summary      Mover categoría una posición
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.MoveRequest  true  "up | down"
// @Success      200   {object}  dto.MoveResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/move [post]
func (h *ReorderHandler) MoveCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	return h.handle(c, reorder.Categories, func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error) {
		return h.mover.MoveCategory(ctx, sess, id, dir)
	})
}

// MoveProduct godoc
// @Summary      Mover producto una posición dentro de su categoría
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.MoveRequest  true  "up | down"
// @Success      200   {object}  dto.MoveResponse
// @Router       /api/products/{id}/move [post]
func (h *ReorderHandler) MoveProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	return h.handle(c, reorder.Products, func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error) {
		return h.mover.MoveProduct(ctx, sess, id, dir)
	})
}

// MoveProductGroup godoc
// @Summary      Mover grupo de complementos dentro del producto
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Param        linkId     path  int  true  "ID del vínculo producto-grupo"
// @Param        body       body  dto.MoveRequest  true  "up | down"
// @Success      200  {object}  dto.MoveResponse
// @Router       /api/products/{productId}/complement-groups/{linkId}/move [post]
func (h *ReorderHandler) MoveProductGroup(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	linkID, ok := paramID(c, "linkId")
	if !ok {
		return invalidID(c, "linkId")
	}
	return h.handle(c, reorder.ProductGroups, func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error) {
		return h.mover.MoveProductGroup(ctx, sess, productID, linkID, dir)
	})
}

// MoveComplementItem godoc
// @Summary      Mover ítem dentro de su grupo
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        groupId  path  int  true  "ID del grupo"
// @Param        id       path  int  true  "ID del ítem"
// @Param        body     body  dto.MoveRequest  true  "up | down"
// @Success      200  {object}  dto.MoveResponse
// @Router       /api/complement-groups/{groupId}/items/{id}/move [post]
func (h *ReorderHandler) MoveComplementItem(c *fiber.Ctx) error {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	itemID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	return h.handle(c, reorder.ComplementItems, func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error) {
		return h.mover.MoveComplementItem(ctx, sess, groupID, itemID, dir)
	})
}

// MoveSpecificComplement godoc
// @Summary      Mover complemento específico dentro de producto+grupo
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Param        linkId     path  int  true  "ID de la fila de complemento específico"
// @Param        body       body  dto.MoveRequest  true  "up | down"
// @Success      200  {object}  dto.MoveResponse
// @Router       /api/products/{productId}/specific-complements/{linkId}/move [post]
func (h *ReorderHandler) MoveSpecificComplement(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	linkID, ok := paramID(c, "linkId")
	if !ok {
		return invalidID(c, "linkId")
	}
	return h.handle(c, reorder.SpecificComplements, func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error) {
		return h.mover.MoveSpecificComplement(ctx, sess, productID, linkID, dir)
	})
}

type moveFunc func(ctx context.Context, sess domain.Session, dir ordering.Direction) (*reorder.Result, error)

// handle parsea la dirección, ejecuta el movimiento y traduce el resultado a una única notificación.
func (h *ReorderHandler) handle(c *fiber.Ctx, t reorder.Target, move moveFunc) error {
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	dir, err := ordering.ParseDirection(in.Direction)
	if err != nil {
		return respondError(c, err)
	}

	res, err := move(c.UserContext(), GetSession(c), dir)
	if err != nil {
		var uerr *reorder.UpdateError
		if errors.As(err, &uerr) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPDATE_FAILED", Message: t.FailureMessage()})
		}
		status, _ := errorStatus(err)
		if status == fiber.StatusInternalServerError {
			h.log.Error().Err(err).Str("tabla", t.Table).Msg(t.FailureMessage())
			return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: t.FailureMessage()})
		}
		return respondError(c, err)
	}

	items := res.Items
	if items == nil {
		items = []ordering.Item{}
	}
	out := dto.MoveResponse{Moved: res.Moved, Items: items}
	if res.Moved {
		out.Message = t.SuccessMessage()
	}
	return c.JSON(out)
}
