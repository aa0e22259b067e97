package repository

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// FolioRepository define el puerto del asignador de folios.
type FolioRepository interface {
	// NextSequence incrementa y devuelve el consecutivo de (serie, año) de
	// forma atómica (upsert sobre folio_counters). Seguro bajo concurrencia.
	NextSequence(ctx context.Context, series string, year int) (int64, error)
	// Claim registra el folio renderizado en su espacio de nombres. Devuelve
	// ErrDuplicateFolio si otro documento ya lo reclamó. Debe ejecutarse en la
	// misma transacción que escribe el documento que lo usa.
	Claim(ctx context.Context, folio *entity.Folio) error
	// ExistsRendered verifica el folio en todos los espacios de nombres
	// (chequeo de UI para folios manuales; la verificación final es Claim).
	ExistsRendered(ctx context.Context, rendered string) (bool, error)
}
