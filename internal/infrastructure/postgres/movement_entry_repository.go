package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

var _ repository.MovementEntryRepository = (*MovementEntryRepo)(nil)

const movementEntryColumns = `id, type, folio, product_id, quantity, unit_condition, reference, created_by, created_at`

// MovementEntryRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Append-only: sin UPDATE ni DELETE.
type MovementEntryRepo struct {
	q Querier
}

// NewMovementEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementEntryRepository(q Querier) *MovementEntryRepo {
	return &MovementEntryRepo{q: q}
}

// Create persiste una línea del libro.
func (r *MovementEntryRepo) Create(ctx context.Context, entry *entity.MovementEntry) error {
	query := `
		INSERT INTO movement_entries (` + movementEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Type, entry.Folio, entry.ProductID, entry.Quantity,
		entry.UnitCondition, entry.Reference, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement entry: %w", err)
	}
	return nil
}

// List consulta el libro con filtros. El texto de producto llega ya
// normalizado (minúsculas, sin acentos); translate() quita los acentos del
// lado de la tabla para que la comparación sea simétrica.
func (r *MovementEntryRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementEntry, error) {
	query := `
		SELECT m.id, m.type, m.folio, m.product_id, m.quantity, m.unit_condition, m.reference, m.created_by, m.created_at
		FROM movement_entries m
		JOIN products p ON p.id = m.product_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductQuery != "" {
		query += fmt.Sprintf(` AND (lower(translate(p.name, 'áéíóúüñÁÉÍÓÚÜÑ', 'aeiouunAEIOUUN')) LIKE $%d OR p.barcode = $%d)`, pos, pos+1)
		args = append(args, "%"+filter.ProductQuery+"%", filter.ProductQuery)
		pos += 2
	}
	if filter.Reference != "" {
		query += fmt.Sprintf(" AND m.reference ILIKE $%d", pos)
		args = append(args, "%"+filter.Reference+"%")
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		entry, err := scanMovementEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// SumDeltaByProduct devuelve Σ(IN) − Σ(OUT) del producto sobre el libro completo.
func (r *MovementEntryRepo) SumDeltaByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM movement_entries WHERE product_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return decimal.Decimal{}, fmt.Errorf("sum movement deltas: %w", err)
	}
	return sum, nil
}

func scanMovementEntry(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	err := row.Scan(
		&m.ID, &m.Type, &m.Folio, &m.ProductID, &m.Quantity,
		&m.UnitCondition, &m.Reference, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
