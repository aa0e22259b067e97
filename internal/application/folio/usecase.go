package folio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	foliodomain "github.com/dgomezm/custodia-pos/internal/domain/folio"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// UseCase asignación y verificación de folios.
// Allocate propone el siguiente consecutivo de la serie; el folio queda
// reclamado de forma definitiva hasta que la operación que lo usa hace commit
// (ClaimFolio dentro de la transacción del documento).
type UseCase struct {
	folioRepo repository.FolioRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(folioRepo repository.FolioRepository) *UseCase {
	return &UseCase{folioRepo: folioRepo}
}

// Allocate toma el año actual, incrementa el consecutivo de (serie, año) de
// forma atómica y devuelve el folio renderizado. Llamadas concurrentes nunca
// reciben el mismo consecutivo; un folio propuesto y abandonado deja hueco,
// lo cual es aceptable (duplicados no lo son).
func (uc *UseCase) Allocate(ctx context.Context, series string) (*dto.FolioResponse, error) {
	if err := foliodomain.ValidateSeries(series); err != nil {
		return nil, err
	}
	s := strings.ToUpper(strings.TrimSpace(series))
	year := time.Now().Year()
	seq, err := uc.folioRepo.NextSequence(ctx, s, year)
	if err != nil {
		return nil, err
	}
	return &dto.FolioResponse{
		Series:   s,
		Year:     year,
		Sequence: seq,
		Rendered: foliodomain.Render(s, year, seq),
	}, nil
}

// Exists verifica un folio capturado a mano contra todos los espacios de
// nombres. Es el chequeo de UI; la verificación definitiva es el Claim dentro
// de la transacción que escribe el documento.
func (uc *UseCase) Exists(ctx context.Context, rendered string) (bool, error) {
	if err := foliodomain.ValidateManual(rendered); err != nil {
		return false, err
	}
	return uc.folioRepo.ExistsRendered(ctx, foliodomain.Normalize(rendered))
}

// ClaimFolio reclama el folio de una operación dentro de la transacción que la
// escribe. Con folio manual valida y reclama tal cual (duplicado =
// ErrDuplicateFolio, resultado esperado para el operador). Sin folio manual
// asigna el consecutivo y reclama; si el render choca con un folio manual ya
// reclamado, reintenta una vez con un consecutivo fresco antes de rendirse
// con ErrConflict.
func ClaimFolio(ctx context.Context, folioRepo repository.FolioRepository, manual, series, namespace string, now time.Time) (*entity.Folio, error) {
	if manual != "" {
		if err := foliodomain.ValidateManual(manual); err != nil {
			return nil, err
		}
		f := &entity.Folio{
			Rendered:  foliodomain.Normalize(manual),
			Year:      now.Year(),
			Namespace: namespace,
			CreatedAt: now,
		}
		if err := folioRepo.Claim(ctx, f); err != nil {
			return nil, err
		}
		return f, nil
	}

	s := strings.ToUpper(series)
	for attempt := 0; attempt < 2; attempt++ {
		seq, err := folioRepo.NextSequence(ctx, s, now.Year())
		if err != nil {
			return nil, err
		}
		f := &entity.Folio{
			Series:    s,
			Year:      now.Year(),
			Sequence:  seq,
			Rendered:  foliodomain.Render(s, now.Year(), seq),
			Namespace: namespace,
			CreatedAt: now,
		}
		err = folioRepo.Claim(ctx, f)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, domain.ErrDuplicateFolio) {
			return nil, err
		}
	}
	return nil, domain.ErrConflict
}
