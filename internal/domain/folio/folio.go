// Package folio contiene el formateo y la normalización de folios
// (servicio de dominio puro; la asignación del consecutivo vive en application).
package folio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgomezm/custodia-pos/internal/domain"
)

// seriesPattern: letras mayúsculas separadas por guiones, p.ej. RSG o SAL-RSG.
var seriesPattern = regexp.MustCompile(`^[A-Z]+(-[A-Z]+)*$`)

// Render construye el folio visible: {SERIE}-{año}-{consecutivo:03d}.
// El consecutivo se rellena a mínimo 3 dígitos; a partir de 1000 crece libre.
func Render(series string, year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%03d", strings.ToUpper(series), year, sequence)
}

// Normalize lleva un folio capturado a mano a su forma canónica: mayúsculas y
// sin espacios alrededor. La comparación de unicidad siempre usa esta forma.
func Normalize(rendered string) string {
	return strings.ToUpper(strings.TrimSpace(rendered))
}

// ValidateSeries verifica que la serie sea utilizable en un folio.
func ValidateSeries(series string) error {
	if !seriesPattern.MatchString(strings.ToUpper(strings.TrimSpace(series))) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ValidateManual verifica un folio capturado a mano: no vacío y con forma
// razonable de documento (al menos serie y número).
func ValidateManual(rendered string) error {
	f := Normalize(rendered)
	if f == "" || len(f) > 40 {
		return domain.ErrInvalidInput
	}
	if !strings.ContainsAny(f, "0123456789") {
		return domain.ErrInvalidInput
	}
	return nil
}
