package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgomezm/custodia-pos/internal/application/custody"
	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// CustodyHandler maneja el ciclo de vida de artículos en resguardo (protegido).
type CustodyHandler struct {
	uc *custody.UseCase
}

// NewCustodyHandler construye el handler.
func NewCustodyHandler(uc *custody.UseCase) *CustodyHandler {
	return &CustodyHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar artículo en resguardo
// @Tags         custody
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCustodyItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.CustodyItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/custody/items [post]
func (h *CustodyHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCustodyItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustodyItemResponse(item))
}

// Transition godoc
// @Summary      Aplicar transición de custodia (compare-and-swap sobre el estado)
// @Tags         custody
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.TransitionCustodyItemRequest  true  "Transición"
// @Success      200   {object}  dto.CustodyItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "STALE_STATE, TERMINAL_STATE o DUPLICATE_FOLIO"
// @Router       /api/custody/items/{id}/transition [post]
func (h *CustodyHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionCustodyItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Transition(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCustodyItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.CustodyItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/custody/items/{id} [get]
func (h *CustodyHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCustodyItemResponse(item))
}

// List godoc
// @Summary      Listar artículos en resguardo
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "EN_TRANSITO | EN_RESGUARDO | BAJA_DEFINITIVA"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.CustodyItemResponse
// @Router       /api/custody/items [get]
func (h *CustodyHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	items, err := h.uc.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustodyItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCustodyItemResponse(item))
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de custodia del artículo (orden cronológico)
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {array}  dto.CustodyEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/custody/items/{id}/history [get]
func (h *CustodyHandler) History(c *fiber.Ctx) error {
	events, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustodyEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toCustodyEventResponse(ev))
	}
	return c.JSON(out)
}

func toCustodyItemResponse(item *entity.CustodyItem) dto.CustodyItemResponse {
	return dto.CustodyItemResponse{
		ID:               item.ID,
		InventoryNumber:  item.InventoryNumber,
		SerialNumber:     item.SerialNumber,
		Description:      item.Description,
		Brand:            item.Brand,
		Model:            item.Model,
		Quantity:         item.Quantity,
		Reason:           item.Reason,
		InitialCondition: item.InitialCondition,
		CenterOrigin:     item.CenterOrigin,
		Status:           item.Status,
		CreatedAt:        item.CreatedAt,
	}
}

func toCustodyEventResponse(ev *entity.CustodyEvent) dto.CustodyEventResponse {
	return dto.CustodyEventResponse{
		ID:            ev.ID,
		Kind:          ev.Kind,
		FromStatus:    ev.FromStatus,
		ToStatus:      ev.ToStatus,
		Folio:         ev.Folio,
		Destination:   ev.Destination,
		DeliveredBy:   dto.ActorDTO{Name: ev.Actors.DeliveredBy.Name, Position: ev.Actors.DeliveredBy.Position},
		TransportedBy: dto.ActorDTO{Name: ev.Actors.TransportedBy.Name, Position: ev.Actors.TransportedBy.Position},
		ReceivedBy:    dto.ActorDTO{Name: ev.Actors.ReceivedBy.Name, Position: ev.Actors.ReceivedBy.Position},
		Notes:         ev.Notes,
		OccurredAt:    ev.OccurredAt,
		RecordedBy:    ev.RecordedBy,
	}
}
