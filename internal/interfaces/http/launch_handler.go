package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/launch"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
)

// LaunchHandler maneja lanzamientos de stock (entradas y salidas manuales).
type LaunchHandler struct {
	uc  *launch.UseCase
	log *logger.Logger
}

// NewLaunchHandler construye el handler.
func NewLaunchHandler(uc *launch.UseCase, log *logger.Logger) *LaunchHandler {
	return &LaunchHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar lanzamiento
// @Description  Aplica cada línea al stock del producto según el tipo. Las líneas sin producto válido se omiten y se informan en skipped.
// @Tags         launches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LaunchRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DocumentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/launches [post]
func (h *LaunchHandler) Create(c *fiber.Ctx) error {
	var in dto.LaunchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lanzamiento con sus líneas
// @Tags         launches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lanzamiento"
// @Success      200  {object}  dto.LaunchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/launches/{id} [get]
func (h *LaunchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar lanzamientos
// @Tags         launches
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Filtra por tipo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.LaunchListResponse
// @Router       /api/launches [get]
func (h *LaunchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("type"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar lanzamiento
// @Description  Revierte el efecto de las líneas anteriores y aplica las nuevas en una sola transacción.
// @Tags         launches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del lanzamiento"
// @Param        body  body  dto.LaunchRequest  true  "Cabecera y líneas nuevas"
// @Success      200   {object}  dto.DocumentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/launches/{id} [put]
func (h *LaunchHandler) Update(c *fiber.Ctx) error {
	var in dto.LaunchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lanzamiento
// @Description  Revierte el efecto de sus líneas y borra cabecera y líneas.
// @Tags         launches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lanzamiento"
// @Success      200  {object}  dto.DocumentResult
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/launches/{id} [delete]
func (h *LaunchHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
