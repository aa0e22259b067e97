package folio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/folio"
)

func TestRender_RellenaATresDigitos(t *testing.T) {
	assert.Equal(t, "RSG-2026-001", folio.Render("RSG", 2026, 1))
	assert.Equal(t, "RSG-2026-042", folio.Render("rsg", 2026, 42))
	assert.Equal(t, "SAL-RSG-2026-137", folio.Render("SAL-RSG", 2026, 137))
}

func TestRender_CreceLibreDesdeMil(t *testing.T) {
	assert.Equal(t, "ENT-2026-1000", folio.Render("ENT", 2026, 1000))
	assert.Equal(t, "ENT-2026-25341", folio.Render("ENT", 2026, 25341))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "RSG-2026-001", folio.Normalize("  rsg-2026-001 "))
	assert.Equal(t, "OFICIO/123", folio.Normalize("oficio/123"))
}

func TestValidateSeries(t *testing.T) {
	assert.NoError(t, folio.ValidateSeries("RSG"))
	assert.NoError(t, folio.ValidateSeries("SAL-RSG"))
	assert.NoError(t, folio.ValidateSeries(" ent "))

	assert.ErrorIs(t, folio.ValidateSeries(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, folio.ValidateSeries("RSG-"), domain.ErrInvalidInput)
	assert.ErrorIs(t, folio.ValidateSeries("RSG 2026"), domain.ErrInvalidInput)
	assert.ErrorIs(t, folio.ValidateSeries("R5G"), domain.ErrInvalidInput)
}

func TestValidateManual(t *testing.T) {
	assert.NoError(t, folio.ValidateManual("OFICIO-2026-77"))
	assert.NoError(t, folio.ValidateManual("  rsg-2025-004 "))

	assert.ErrorIs(t, folio.ValidateManual(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, folio.ValidateManual("   "), domain.ErrInvalidInput)
	assert.ErrorIs(t, folio.ValidateManual("SIN-NUMERO"), domain.ErrInvalidInput,
		"un folio manual debe contener al menos un dígito")
	assert.ErrorIs(t, folio.ValidateManual("X1-"+strings.Repeat("A", 45)), domain.ErrInvalidInput,
		"un folio manual de más de 40 caracteres se rechaza")
}
