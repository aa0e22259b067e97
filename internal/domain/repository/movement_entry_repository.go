package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// MovementFilter criterios de consulta del libro de movimientos.
// ProductQuery se compara sin acentos contra nombre y código de barras.
type MovementFilter struct {
	ProductQuery string
	Reference    string
	Type         string // IN | OUT, vacío = ambos
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MovementEntryRepository define el puerto del libro de movimientos.
// Append-only: no existe Update ni Delete; una corrección es una nueva entrada.
type MovementEntryRepository interface {
	Create(ctx context.Context, entry *entity.MovementEntry) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementEntry, error)
	// SumDeltaByProduct devuelve Σ(IN) − Σ(OUT) de todas las entradas del
	// producto desde el inicio de los tiempos (para recomputar stock).
	SumDeltaByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}
