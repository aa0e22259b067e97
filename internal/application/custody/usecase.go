package custody

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	appfolio "github.com/dgomezm/custodia-pos/internal/application/folio"
	"github.com/dgomezm/custodia-pos/internal/domain"
	custodydomain "github.com/dgomezm/custodia-pos/internal/domain/custody"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// EventRegistro es el primer evento del historial: el alta del artículo.
// No es una transición del grafo, pero deja el historial completo desde el
// origen (el replay de eventos siempre reproduce el Status actual).
const EventRegistro = "REGISTRO"

// UseCase ciclo de vida de artículos en resguardo: alta, transiciones con
// compare-and-swap sobre el estado, e historial append-only.
type UseCase struct {
	txRunner  TxRunner
	itemRepo  repository.CustodyItemRepository
	eventRepo repository.CustodyEventRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, itemRepo repository.CustodyItemRepository, eventRepo repository.CustodyEventRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, eventRepo: eventRepo}
}

// Register da de alta un artículo en EN_TRANSITO (o EN_RESGUARDO si el intake
// omite el tránsito) y escribe su evento de registro con el folio que lo
// ampara, todo en una transacción. InventoryNumber y SerialNumber duplicados
// devuelven ErrDuplicate.
func (uc *UseCase) Register(ctx context.Context, actorID string, in dto.RegisterCustodyItemRequest) (*entity.CustodyItem, error) {
	if in.InventoryNumber == "" || in.Description == "" || in.CenterOrigin == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !custodydomain.ValidReason(in.Reason) || !custodydomain.ValidCondition(in.InitialCondition) {
		return nil, domain.ErrInvalidInput
	}
	status := in.InitialStatus
	if status == "" {
		status = entity.StatusEnTransito
	}
	if !custodydomain.ValidRegistrationStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if in.DeliveredBy.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.CustodyItem{
		ID:               uuid.New().String(),
		InventoryNumber:  in.InventoryNumber,
		SerialNumber:     in.SerialNumber,
		Description:      in.Description,
		Brand:            in.Brand,
		Model:            in.Model,
		Quantity:         in.Quantity,
		Reason:           in.Reason,
		InitialCondition: in.InitialCondition,
		CenterOrigin:     in.CenterOrigin,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := uc.txRunner.RunCustody(ctx, func(
		itemRepo repository.CustodyItemRepository,
		eventRepo repository.CustodyEventRepository,
		folioRepo repository.FolioRepository,
	) error {
		f, err := appfolio.ClaimFolio(ctx, folioRepo, in.Folio, entity.FolioSeriesResguardo, entity.FolioNamespaceCustodia, now)
		if err != nil {
			return err
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return eventRepo.Append(ctx, &entity.CustodyEvent{
			ID:            uuid.New().String(),
			CustodyItemID: item.ID,
			Kind:          EventRegistro,
			FromStatus:    "",
			ToStatus:      status,
			Folio:         f.Rendered,
			Actors:        entity.ActorChain{DeliveredBy: entity.Actor{Name: in.DeliveredBy.Name, Position: in.DeliveredBy.Position}},
			Notes:         in.Notes,
			OccurredAt:    now,
			RecordedBy:    actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Transition aplica una transición del ciclo de vida con compare-and-swap:
// el UPDATE exige que el estado actual siga siendo el que el operador vio
// (ExpectedStatus). El perdedor de una carrera recibe ErrStaleState y debe
// recargar. Estado nuevo + evento + folio se escriben en una transacción.
func (uc *UseCase) Transition(ctx context.Context, actorID, itemID string, in dto.TransitionCustodyItemRequest) (*entity.CustodyItem, error) {
	if itemID == "" || in.ExpectedStatus == "" {
		return nil, domain.ErrInvalidInput
	}
	actors := toActorChain(in)
	if err := custodydomain.ValidateActors(in.Kind, actors); err != nil {
		return nil, err
	}

	now := time.Now()
	var updated *entity.CustodyItem
	err := uc.txRunner.RunCustody(ctx, func(
		itemRepo repository.CustodyItemRepository,
		eventRepo repository.CustodyEventRepository,
		folioRepo repository.FolioRepository,
	) error {
		item, err := itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		reason := in.Reason
		if reason == "" {
			reason = item.Reason
		}
		to, err := custodydomain.Resolve(item.Status, in.Kind, reason)
		if err != nil {
			return err
		}
		if item.Status != in.ExpectedStatus {
			return domain.ErrStaleState
		}

		// Folio: obligatorio en salidas (automático SAL-RSG si no viene);
		// opcional en recepciones, donde referencia el documento de origen.
		folioRendered := ""
		if in.Folio != "" || custodydomain.RemovesFromCustody(in.Kind) {
			f, err := appfolio.ClaimFolio(ctx, folioRepo, in.Folio, entity.FolioSeriesSalidaResguardo, entity.FolioNamespaceCustodia, now)
			if err != nil {
				return err
			}
			folioRendered = f.Rendered
		}

		ok, err := itemRepo.UpdateStatusCAS(ctx, itemID, in.ExpectedStatus, to)
		if err != nil {
			return err
		}
		if !ok {
			// Otro operador ganó la carrera entre nuestra lectura y el UPDATE.
			current, err := itemRepo.GetByID(ctx, itemID)
			if err != nil {
				return err
			}
			if current != nil && current.IsTerminal() {
				return domain.ErrTerminalState
			}
			return domain.ErrStaleState
		}

		destination := ""
		if in.Kind == custodydomain.TransitionSalida && reason == entity.ReasonTraslado {
			destination = custodydomain.TrasladoDestination
		}

		if err := eventRepo.Append(ctx, &entity.CustodyEvent{
			ID:            uuid.New().String(),
			CustodyItemID: itemID,
			Kind:          in.Kind,
			FromStatus:    item.Status,
			ToStatus:      to,
			Folio:         folioRendered,
			Destination:   destination,
			Actors:        actors,
			Notes:         in.Notes,
			OccurredAt:    now,
			RecordedBy:    actorID,
		}); err != nil {
			return err
		}

		copied := *item
		copied.Status = to
		copied.UpdatedAt = now
		updated = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// History devuelve el historial de custodia del artículo en orden cronológico.
func (uc *UseCase) History(ctx context.Context, itemID string) ([]*entity.CustodyEvent, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.eventRepo.ListByItem(ctx, itemID)
}

// GetByID devuelve el estado actual del artículo.
func (uc *UseCase) GetByID(ctx context.Context, itemID string) (*entity.CustodyItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List devuelve artículos filtrados por estado (vacío = todos).
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.CustodyItem, error) {
	return uc.itemRepo.List(ctx, status, limit, offset)
}

func toActorChain(in dto.TransitionCustodyItemRequest) entity.ActorChain {
	return entity.ActorChain{
		DeliveredBy:   entity.Actor{Name: in.DeliveredBy.Name, Position: in.DeliveredBy.Position},
		TransportedBy: entity.Actor{Name: in.TransportedBy.Name, Position: in.TransportedBy.Position},
		ReceivedBy:    entity.Actor{Name: in.ReceivedBy.Name, Position: in.ReceivedBy.Position},
	}
}
