package inventory

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el reclamo del folio, las líneas
// del libro y la actualización de stock se apliquen todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.MovementEntryRepository,
		folioRepo repository.FolioRepository,
	) error) error
}
