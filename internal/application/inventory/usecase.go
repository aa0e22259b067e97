package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	appfolio "github.com/dgomezm/custodia-pos/internal/application/folio"
	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// UseCase libro de movimientos + motor de consistencia de stock.
// Cada lote (entrada o salida) se aplica en una transacción con bloqueo de
// fila por producto (SELECT FOR UPDATE): el libro y el stock derivado nunca
// divergen, y una salida jamás deja stock negativo, ni transitoriamente.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	entryRepo   repository.MovementEntryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, entryRepo repository.MovementEntryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, entryRepo: entryRepo}
}

// RecordEntry registra una entrada de inventario (folio serie ENT si es automático).
func (uc *UseCase) RecordEntry(ctx context.Context, actorID string, in dto.RecordMovementRequest) ([]*entity.MovementEntry, error) {
	return uc.record(ctx, actorID, entity.MovementTypeIN, entity.FolioSeriesEntrada, in)
}

// RecordExit registra una salida de inventario (folio serie SAL si es automático).
func (uc *UseCase) RecordExit(ctx context.Context, actorID string, in dto.RecordMovementRequest) ([]*entity.MovementEntry, error) {
	return uc.record(ctx, actorID, entity.MovementTypeOUT, entity.FolioSeriesSalida, in)
}

// record valida el lote completo y lo aplica de forma atómica: si cualquier
// línea falla (cantidad inválida, producto inexistente o PRECIO_LIBRE, stock
// insuficiente) ninguna línea queda escrita y el stock no cambia.
func (uc *UseCase) record(ctx context.Context, actorID, movType, series string, in dto.RecordMovementRequest) ([]*entity.MovementEntry, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var created []*entity.MovementEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.MovementEntryRepository,
		folioRepo repository.FolioRepository,
	) error {
		f, err := appfolio.ClaimFolio(ctx, folioRepo, in.Folio, series, entity.FolioNamespaceInventario, now)
		if err != nil {
			return err
		}
		for _, line := range in.Lines {
			// Bloquea la fila del producto: dos salidas concurrentes del mismo
			// producto se serializan y la segunda ve el stock ya descontado.
			product, err := productRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if !product.Active || !product.TracksStock() {
				return domain.ErrInvalidInput
			}

			entry := &entity.MovementEntry{
				ID:            uuid.New().String(),
				Type:          movType,
				Folio:         f.Rendered,
				ProductID:     line.ProductID,
				Quantity:      line.Quantity,
				UnitCondition: line.UnitCondition,
				Reference:     in.Reference,
				CreatedBy:     actorID,
				CreatedAt:     now,
			}
			newStock, err := applyDelta(product.Stock, entry.Delta())
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
				return err
			}
			if err := entryRepo.Create(ctx, entry); err != nil {
				return err
			}
			created = append(created, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// applyDelta es el núcleo del motor de consistencia: aplica el efecto de una
// entrada del libro sobre el saldo y rechaza cualquier saldo negativo.
func applyDelta(stock, delta decimal.Decimal) (decimal.Decimal, error) {
	newStock := stock.Add(delta)
	if newStock.IsNegative() {
		return decimal.Decimal{}, domain.ErrInsufficientStock
	}
	return newStock, nil
}

// ListMovements proyección de solo lectura sobre el libro para vistas de
// historial. No existe camino de mutación fuera de record.
func (uc *UseCase) ListMovements(ctx context.Context, q dto.ListMovementsQuery) ([]*entity.MovementEntry, error) {
	if q.Type != "" && q.Type != entity.MovementTypeIN && q.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	q.DefaultPage()
	filter := repository.MovementFilter{
		ProductQuery: normalizeQuery(q.Product),
		Reference:    q.Reference,
		Type:         q.Type,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	var err error
	if filter.From, err = parseDate(q.From); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if filter.To, err = parseDate(q.To); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.entryRepo.List(ctx, filter)
}

// RecomputeStock reproduce el libro completo del producto y lo compara con el
// stock almacenado. Es una herramienta de verificación, no parte del camino
// caliente; un desajuste es fatal (ErrLedgerIntegrity) y exige intervención
// del operador: nunca se "corrige" en silencio.
func (uc *UseCase) RecomputeStock(ctx context.Context, productID string) (*dto.RecomputeStockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	recomputed, err := uc.entryRepo.SumDeltaByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RecomputeStockResponse{
		ProductID:  productID,
		Stock:      product.Stock,
		Recomputed: recomputed,
		Matches:    product.Stock.Equal(recomputed),
	}
	if !resp.Matches {
		return resp, domain.ErrLedgerIntegrity
	}
	return resp, nil
}

// parseDate acepta RFC 3339 o fecha simple 2006-01-02. Vacío devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
