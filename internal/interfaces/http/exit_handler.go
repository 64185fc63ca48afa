package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
)

// ExitHandler consulta salidas (donaciones de cestas) y su comprobante.
type ExitHandler struct {
	uc  *exit.UseCase
	log *logger.Logger
}

// NewExitHandler construye el handler.
func NewExitHandler(uc *exit.UseCase, log *logger.Logger) *ExitHandler {
	return &ExitHandler{uc: uc, log: log}
}

// GetByID godoc
// @Summary      Obtener salida
// @Tags         exits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.ExitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exits/{id} [get]
func (h *ExitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar salidas
// @Tags         exits
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ExitListResponse
// @Router       /api/exits [get]
func (h *ExitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la donación
// @Tags         exits
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/exits/{id}/receipt [get]
func (h *ExitHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=\"doacao-%s.pdf\"", id))
	return c.Send(pdf)
}
