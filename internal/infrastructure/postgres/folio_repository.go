package postgres

import (
	"context"
	"fmt"

	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo implementación del asignador de folios sobre PostgreSQL (usable con pool o tx).
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// NextSequence incrementa y devuelve el consecutivo de (serie, año) en una
// sola sentencia atómica: dos llamadores concurrentes nunca reciben el mismo
// número porque el upsert serializa sobre la fila del contador.
func (r *FolioRepo) NextSequence(ctx context.Context, series string, year int) (int64, error) {
	query := `
		INSERT INTO folio_counters (series, year, sequence)
		VALUES ($1, $2, 1)
		ON CONFLICT (series, year)
		DO UPDATE SET sequence = folio_counters.sequence + 1
		RETURNING sequence`
	var seq int64
	if err := r.q.QueryRow(ctx, query, series, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next folio sequence: %w", err)
	}
	return seq, nil
}

// Claim registra el folio renderizado en su espacio de nombres. El índice
// único (namespace, rendered) es la verificación definitiva de unicidad:
// se ejecuta dentro de la misma transacción que escribe el documento.
func (r *FolioRepo) Claim(ctx context.Context, folio *entity.Folio) error {
	query := `
		INSERT INTO folios (rendered, namespace, series, year, sequence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	series := (*string)(nil)
	if folio.Series != "" {
		series = &folio.Series
	}
	_, err := r.q.Exec(ctx, query,
		folio.Rendered, folio.Namespace, series, folio.Year, folio.Sequence, folio.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFolio
		}
		return fmt.Errorf("claim folio: %w", err)
	}
	return nil
}

// ExistsRendered verifica el folio en todos los espacios de nombres
// (advertencia temprana de UI para folios capturados a mano).
func (r *FolioRepo) ExistsRendered(ctx context.Context, rendered string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM folios WHERE rendered = $1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, rendered).Scan(&exists); err != nil {
		return false, fmt.Errorf("folio exists: %w", err)
	}
	return exists, nil
}
