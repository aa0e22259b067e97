package repository

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// CustodyItemRepository define el puerto de persistencia para artículos en resguardo.
type CustodyItemRepository interface {
	Create(ctx context.Context, item *entity.CustodyItem) error
	GetByID(ctx context.Context, id string) (*entity.CustodyItem, error)
	GetByInventoryNumber(ctx context.Context, inventoryNumber string) (*entity.CustodyItem, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.CustodyItem, error)
	// UpdateStatusCAS actualiza el estado solo si el actual coincide con expected
	// (UPDATE ... WHERE status = expected). Devuelve false si no afectó filas:
	// el caller decide entre ErrStaleState y ErrTerminalState releyendo.
	UpdateStatusCAS(ctx context.Context, id, expected, next string) (bool, error)
}
