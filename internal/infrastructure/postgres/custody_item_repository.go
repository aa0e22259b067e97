package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

var _ repository.CustodyItemRepository = (*CustodyItemRepo)(nil)

const custodyItemColumns = `id, inventory_number, serial_number, description, brand, model, quantity,
		reason, initial_condition, center_origin, status, created_at, updated_at`

// CustodyItemRepo implementación del puerto CustodyItemRepository sobre PostgreSQL (usable con pool o tx).
type CustodyItemRepo struct {
	q Querier
}

// NewCustodyItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustodyItemRepository(q Querier) *CustodyItemRepo {
	return &CustodyItemRepo{q: q}
}

// Create persiste un artículo nuevo. InventoryNumber o SerialNumber duplicado
// devuelve ErrDuplicate (índices únicos).
func (r *CustodyItemRepo) Create(ctx context.Context, item *entity.CustodyItem) error {
	query := `
		INSERT INTO custody_items (` + custodyItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	serial := (*string)(nil)
	if item.SerialNumber != "" {
		serial = &item.SerialNumber
	}
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InventoryNumber, serial, item.Description, item.Brand, item.Model,
		item.Quantity, item.Reason, item.InitialCondition, item.CenterOrigin, item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert custody item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *CustodyItemRepo) GetByID(ctx context.Context, id string) (*entity.CustodyItem, error) {
	query := `SELECT ` + custodyItemColumns + ` FROM custody_items WHERE id = $1`
	item, err := scanCustodyItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custody item: %w", err)
	}
	return item, nil
}

// GetByInventoryNumber obtiene un artículo por número de inventario.
func (r *CustodyItemRepo) GetByInventoryNumber(ctx context.Context, inventoryNumber string) (*entity.CustodyItem, error) {
	query := `SELECT ` + custodyItemColumns + ` FROM custody_items WHERE inventory_number = $1`
	item, err := scanCustodyItem(r.q.QueryRow(ctx, query, inventoryNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custody item by inventory number: %w", err)
	}
	return item, nil
}

// List lista artículos, opcionalmente por estado, del más reciente al más antiguo.
func (r *CustodyItemRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.CustodyItem, error) {
	query := `SELECT ` + custodyItemColumns + ` FROM custody_items`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list custody items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustodyItem
	for rows.Next() {
		item, err := scanCustodyItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custody item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// UpdateStatusCAS actualiza el estado solo si el actual coincide con expected.
// Cero filas afectadas = otro operador ganó la carrera (o el estado ya cambió).
func (r *CustodyItemRepo) UpdateStatusCAS(ctx context.Context, id, expected, next string) (bool, error) {
	query := `
		UPDATE custody_items SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`
	tag, err := r.q.Exec(ctx, query, next, id, expected)
	if err != nil {
		return false, fmt.Errorf("cas custody status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanCustodyItem(row pgx.Row) (*entity.CustodyItem, error) {
	var i entity.CustodyItem
	var serial *string
	err := row.Scan(
		&i.ID, &i.InventoryNumber, &serial, &i.Description, &i.Brand, &i.Model,
		&i.Quantity, &i.Reason, &i.InitialCondition, &i.CenterOrigin, &i.Status,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if serial != nil {
		i.SerialNumber = *serial
	}
	return &i, nil
}
