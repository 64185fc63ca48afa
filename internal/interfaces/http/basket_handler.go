package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Doacoes-api/internal/application/basket"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
)

// BasketHandler maneja cestas y su donación.
type BasketHandler struct {
	uc  *basket.UseCase
	log *logger.Logger
}

// NewBasketHandler construye el handler.
func NewBasketHandler(uc *basket.UseCase, log *logger.Logger) *BasketHandler {
	return &BasketHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear cesta
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BasketRequest  true  "Nombre y composición"
// @Success      201   {object}  dto.BasketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/baskets [post]
func (h *BasketHandler) Create(c *fiber.Ctx) error {
	var in dto.BasketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cesta
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cesta"
// @Success      200  {object}  dto.BasketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [get]
func (h *BasketHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cestas activas
// @Tags         baskets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BasketListResponse
// @Router       /api/baskets [get]
func (h *BasketHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cesta
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la cesta"
// @Param        body  body  dto.BasketRequest  true  "Nombre y composición"
// @Success      200   {object}  dto.BasketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [put]
func (h *BasketHandler) Update(c *fiber.Ctx) error {
	var in dto.BasketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cesta (lógico)
// @Tags         baskets
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cesta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [delete]
func (h *BasketHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Donate godoc
// @Summary      Donar cesta
// @Description  Registra una salida con las líneas de la cesta y descuenta el stock de cada producto.
// @Tags         baskets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la cesta"
// @Param        body  body  dto.DonateBasketRequest  true  "Beneficiario y destino"
// @Success      201   {object}  dto.DonationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/baskets/{id}/donate [post]
func (h *BasketHandler) Donate(c *fiber.Ctx) error {
	var in dto.DonateBasketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c, err)
		}
	}
	out, err := h.uc.Donate(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
