package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cardapio-api/internal/application/dto"
	"github.com/jhoicas/cardapio-api/internal/application/usecase"
)

// ComplementHandler grupos de complementos, sus ítems y los vínculos con productos (protegido).
type ComplementHandler struct {
	uc *usecase.ComplementUseCase
}

// NewComplementHandler construye el handler.
func NewComplementHandler(uc *usecase.ComplementUseCase) *ComplementHandler {
	return &ComplementHandler{uc: uc}
}

// CreateGroup godoc
// @Summary      Crear grupo de complementos
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComplementGroupRequest  true  "Grupo"
// @Success      201   {object}  dto.ComplementGroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/complement-groups [post]
func (h *ComplementHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateComplementGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateGroup(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGroups godoc
// @Summary      Listar grupos de complementos
// @Tags         complements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplementGroupListResponse
// @Router       /api/complement-groups [get]
func (h *ComplementHandler) ListGroups(c *fiber.Ctx) error {
	out, err := h.uc.ListGroups(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetGroup godoc
// @Summary      Obtener grupo con sus ítems por orden
// @Tags         complements
// @Security     Bearer
// @Produce      json
// @Param        groupId  path  int  true  "ID del grupo"
// @Success      200  {object}  dto.ComplementGroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/complement-groups/{groupId} [get]
func (h *ComplementHandler) GetGroup(c *fiber.Ctx) error {
	id, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	out, err := h.uc.GetGroup(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "grupo no encontrado")
	}
	return c.JSON(out)
}

// UpdateGroup godoc
// @Summary      Actualizar grupo de complementos
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        groupId  path  int  true  "ID del grupo"
// @Param        body     body  dto.UpdateComplementGroupRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ComplementGroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/complement-groups/{groupId} [put]
func (h *ComplementHandler) UpdateGroup(c *fiber.Ctx) error {
	id, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	var in dto.UpdateComplementGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateGroup(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "grupo no encontrado")
	}
	return c.JSON(out)
}

// DeleteGroup godoc
// @Summary      Eliminar grupo con sus ítems y vínculos
// @Tags         complements
// @Security     Bearer
// @Param        groupId  path  int  true  "ID del grupo"
// @Success      204
// @Router       /api/complement-groups/{groupId} [delete]
func (h *ComplementHandler) DeleteGroup(c *fiber.Ctx) error {
	id, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	if err := h.uc.DeleteGroup(c.UserContext(), GetSession(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateItem godoc
// @Summary      Agregar ítem al final del grupo
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        groupId  path  int  true  "ID del grupo"
// @Param        body     body  dto.CreateComplementItemRequest  true  "Ítem"
// @Success      201  {object}  dto.ComplementItemResponse
// @Router       /api/complement-groups/{groupId}/items [post]
func (h *ComplementHandler) CreateItem(c *fiber.Ctx) error {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	var in dto.CreateComplementItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateItem(c.UserContext(), GetSession(c), groupID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar ítem de complemento
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        groupId  path  int  true  "ID del grupo"
// @Param        id       path  int  true  "ID del ítem"
// @Param        body     body  dto.UpdateComplementItemRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ComplementItemResponse
// @Router       /api/complement-groups/{groupId}/items/{id} [put]
func (h *ComplementHandler) UpdateItem(c *fiber.Ctx) error {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	itemID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateComplementItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), GetSession(c), groupID, itemID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar ítem de complemento
// @Tags         complements
// @Security     Bearer
// @Param        groupId  path  int  true  "ID del grupo"
// @Param        id       path  int  true  "ID del ítem"
// @Success      204
// @Router       /api/complement-groups/{groupId}/items/{id} [delete]
func (h *ComplementHandler) DeleteItem(c *fiber.Ctx) error {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return invalidID(c, "groupId")
	}
	itemID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.DeleteItem(c.UserContext(), GetSession(c), groupID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachGroup godoc
// @Summary      Vincular grupo al producto (queda al final)
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Param        body       body  dto.AttachGroupRequest  true  "Grupo"
// @Success      201  {object}  dto.ProductGroupResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/complement-groups [post]
func (h *ComplementHandler) AttachGroup(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	var in dto.AttachGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AttachGroup(c.UserContext(), GetSession(c), productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProductGroups godoc
// @Summary      Listar grupos vinculados al producto, por orden
// @Tags         complements
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {array}  dto.ProductGroupResponse
// @Router       /api/products/{productId}/complement-groups [get]
func (h *ComplementHandler) ListProductGroups(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	out, err := h.uc.ListProductGroups(c.UserContext(), GetSession(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DetachGroup godoc
// @Summary      Desvincular grupo del producto
// @Tags         complements
// @Security     Bearer
// @Param        productId  path  int  true  "ID del producto"
// @Param        linkId     path  int  true  "ID del vínculo"
// @Success      204
// @Router       /api/products/{productId}/complement-groups/{linkId} [delete]
func (h *ComplementHandler) DetachGroup(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	linkID, ok := paramID(c, "linkId")
	if !ok {
		return invalidID(c, "linkId")
	}
	if err := h.uc.DetachGroup(c.UserContext(), GetSession(c), productID, linkID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddSpecific godoc
// @Summary      Agregar complemento específico al producto
// @Tags         complements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Param        body       body  dto.AddSpecificComplementRequest  true  "Ítem y precio opcional"
// @Success      201  {object}  dto.SpecificComplementResponse
// @Router       /api/products/{productId}/specific-complements [post]
func (h *ComplementHandler) AddSpecific(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	var in dto.AddSpecificComplementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddSpecific(c.UserContext(), GetSession(c), productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSpecific godoc
// @Summary      Listar complementos específicos del producto
// @Tags         complements
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {array}  dto.SpecificComplementResponse
// @Router       /api/products/{productId}/specific-complements [get]
func (h *ComplementHandler) ListSpecific(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	out, err := h.uc.ListSpecific(c.UserContext(), GetSession(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveSpecific godoc
// @Summary      Quitar complemento específico
// @Tags         complements
// @Security     Bearer
// @Param        productId  path  int  true  "ID del producto"
// @Param        linkId     path  int  true  "ID de la fila"
// @Success      204
// @Router       /api/products/{productId}/specific-complements/{linkId} [delete]
func (h *ComplementHandler) RemoveSpecific(c *fiber.Ctx) error {
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	linkID, ok := paramID(c, "linkId")
	if !ok {
		return invalidID(c, "linkId")
	}
	if err := h.uc.RemoveSpecific(c.UserContext(), GetSession(c), productID, linkID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
