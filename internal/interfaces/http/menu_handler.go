package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
)

// PublicMenu lectura del menú público (implementado por *menu.MenuUseCase).
type PublicMenu interface {
	PublicMenu(ctx context.Context, slug string) (*dto.PublicMenu, error)
}

// Checkout pedido por WhatsApp (implementado por *menu.CheckoutUseCase).
type Checkout interface {
	Checkout(ctx context.Context, slug string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

// MenuHandler rutas públicas del cardápio (sin autenticación).
type MenuHandler struct {
	menu     PublicMenu
	checkout Checkout
}

// NewMenuHandler construye el handler.
func NewMenuHandler(menu PublicMenu, checkout Checkout) *MenuHandler {
	return &MenuHandler{menu: menu, checkout: checkout}
}

// Menu godoc
// @Summary      Menú público de la tienda
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug de la tienda"
// @Success      200   {object}  dto.PublicMenu
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /public/stores/{slug}/menu [get]
func (h *MenuHandler) Menu(c *fiber.Ctx) error {
	out, err := h.menu.PublicMenu(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Generar pedido para enviar por WhatsApp
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Slug de la tienda"
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /public/stores/{slug}/checkout [post]
func (h *MenuHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.checkout.Checkout(c.UserContext(), c.Params("slug"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
