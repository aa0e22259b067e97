package repository

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// CustodyEventRepository define el puerto para el historial de custodia.
// El historial es append-only: no existe Update ni Delete.
type CustodyEventRepository interface {
	Append(ctx context.Context, event *entity.CustodyEvent) error
	// ListByItem devuelve los eventos de un artículo en orden cronológico ascendente.
	ListByItem(ctx context.Context, custodyItemID string) ([]*entity.CustodyEvent, error)
}
