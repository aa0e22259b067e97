package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/application/inventory"
	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// InventoryHandler maneja el libro de movimientos y el motor de stock (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Registrar entrada de inventario (lote atómico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Líneas de entrada"
// @Success      201   {array}  dto.MovementEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entries, err := h.uc.RecordEntry(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponses(entries))
}

// RecordExit godoc
// @Summary      Registrar salida de inventario (lote atómico, nunca deja stock negativo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Líneas de salida"
// @Success      201   {array}  dto.MovementEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK o DUPLICATE_FOLIO"
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entries, err := h.uc.RecordExit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponses(entries))
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product    query  string  false  "Nombre (sin distinguir acentos) o código de barras"
// @Param        reference  query  string  false  "Referencia"
// @Param        type       query  string  false  "IN | OUT"
// @Param        from       query  string  false  "Desde (RFC 3339 o 2006-01-02)"
// @Param        to         query  string  false  "Hasta"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {array}  dto.MovementEntryResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	entries, err := h.uc.ListMovements(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(entries))
}

// RecomputeStock godoc
// @Summary      Verificar stock contra el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.RecomputeStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.RecomputeStockResponse  "LEDGER_INTEGRITY: stock y libro divergen"
// @Router       /api/inventory/stock/{id}/recompute [post]
func (h *InventoryHandler) RecomputeStock(c *fiber.Ctx) error {
	out, err := h.uc.RecomputeStock(c.UserContext(), c.Params("id"))
	if err != nil {
		// El desajuste devuelve el detalle (esperado vs recalculado) junto con
		// el 500: el operador necesita ambas cifras para intervenir.
		if errors.Is(err, domain.ErrLedgerIntegrity) && out != nil {
			log.Error().Err(err).Str("product_id", out.ProductID).
				Str("stock", out.Stock.String()).Str("recomputed", out.Recomputed.String()).
				Msg("integridad del libro comprometida")
			return c.Status(fiber.StatusInternalServerError).JSON(out)
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

func toMovementResponses(entries []*entity.MovementEntry) []dto.MovementEntryResponse {
	out := make([]dto.MovementEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.MovementEntryResponse{
			ID:            e.ID,
			Type:          e.Type,
			Folio:         e.Folio,
			ProductID:     e.ProductID,
			Quantity:      e.Quantity,
			UnitCondition: e.UnitCondition,
			Reference:     e.Reference,
			CreatedBy:     e.CreatedBy,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out
}
