package custody

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada transición escribe el estado del artículo,
// su evento de custodia y el reclamo del folio en una sola unidad atómica.
type TxRunner interface {
	RunCustody(ctx context.Context, fn func(
		itemRepo repository.CustodyItemRepository,
		eventRepo repository.CustodyEventRepository,
		folioRepo repository.FolioRepository,
	) error) error
}
