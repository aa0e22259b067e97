package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

var _ repository.CustodyEventRepository = (*CustodyEventRepo)(nil)

const custodyEventColumns = `id, custody_item_id, kind, from_status, to_status, folio, destination,
		delivered_by_name, delivered_by_position, transported_by_name, transported_by_position,
		received_by_name, received_by_position, notes, occurred_at, recorded_by`

// CustodyEventRepo implementación del historial de custodia sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: este adaptador no expone
// UPDATE ni DELETE, y la BD tampoco los permite (trigger de protección).
type CustodyEventRepo struct {
	q Querier
}

// NewCustodyEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustodyEventRepository(q Querier) *CustodyEventRepo {
	return &CustodyEventRepo{q: q}
}

// Append agrega un evento al historial. Folio duplicado en el espacio de
// custodia devuelve ErrDuplicateFolio.
func (r *CustodyEventRepo) Append(ctx context.Context, event *entity.CustodyEvent) error {
	query := `
		INSERT INTO custody_events (` + custodyEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	folio := (*string)(nil)
	if event.Folio != "" {
		folio = &event.Folio
	}
	_, err := r.q.Exec(ctx, query,
		event.ID, event.CustodyItemID, event.Kind, event.FromStatus, event.ToStatus,
		folio, event.Destination,
		event.Actors.DeliveredBy.Name, event.Actors.DeliveredBy.Position,
		event.Actors.TransportedBy.Name, event.Actors.TransportedBy.Position,
		event.Actors.ReceivedBy.Name, event.Actors.ReceivedBy.Position,
		event.Notes, event.OccurredAt, event.RecordedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFolio
		}
		return fmt.Errorf("append custody event: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial de un artículo en orden cronológico ascendente.
func (r *CustodyEventRepo) ListByItem(ctx context.Context, custodyItemID string) ([]*entity.CustodyEvent, error) {
	query := `
		SELECT ` + custodyEventColumns + `
		FROM custody_events WHERE custody_item_id = $1
		ORDER BY occurred_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, custodyItemID)
	if err != nil {
		return nil, fmt.Errorf("list custody events: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustodyEvent
	for rows.Next() {
		event, err := scanCustodyEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custody event: %w", err)
		}
		list = append(list, event)
	}
	return list, rows.Err()
}

func scanCustodyEvent(row pgx.Row) (*entity.CustodyEvent, error) {
	var e entity.CustodyEvent
	var folio *string
	err := row.Scan(
		&e.ID, &e.CustodyItemID, &e.Kind, &e.FromStatus, &e.ToStatus, &folio, &e.Destination,
		&e.Actors.DeliveredBy.Name, &e.Actors.DeliveredBy.Position,
		&e.Actors.TransportedBy.Name, &e.Actors.TransportedBy.Position,
		&e.Actors.ReceivedBy.Name, &e.Actors.ReceivedBy.Position,
		&e.Notes, &e.OccurredAt, &e.RecordedBy,
	)
	if err != nil {
		return nil, err
	}
	if folio != nil {
		e.Folio = *folio
	}
	return &e, nil
}
