package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/application/folio"
)

// FolioHandler asignación y verificación de folios (protegido).
type FolioHandler struct {
	uc *folio.UseCase
}

// NewFolioHandler construye el handler.
func NewFolioHandler(uc *folio.UseCase) *FolioHandler {
	return &FolioHandler{uc: uc}
}

// Allocate godoc
// @Summary      Proponer el siguiente folio de la serie
// @Description  Incrementa el consecutivo de (serie, año) de forma atómica. El folio
// @Description  queda reclamado hasta que la operación que lo usa hace commit; un
// @Description  folio propuesto y abandonado deja hueco en la serie.
// @Tags         folios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateFolioRequest  true  "Serie (RSG, SAL-RSG, ENT, SAL, ...)"
// @Success      200   {object}  dto.FolioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/folios/allocate [post]
func (h *FolioHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateFolioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Allocate(c.UserContext(), in.Series)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Exists godoc
// @Summary      Verificar si un folio ya existe
// @Description  Chequeo temprano de UI para folios capturados a mano. La verificación
// @Description  definitiva ocurre al reclamar el folio en la transacción del documento.
// @Tags         folios
// @Security     Bearer
// @Produce      json
// @Param        rendered  query  string  true  "Folio a verificar"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/folios/exists [get]
func (h *FolioHandler) Exists(c *fiber.Ctx) error {
	exists, err := h.uc.Exists(c.UserContext(), c.Query("rendered"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}
