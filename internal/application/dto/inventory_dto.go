package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest una línea de entrada o salida.
type MovementLineRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCondition string          `json:"unit_condition,omitempty"`
}

// RecordMovementRequest body para POST /api/inventory/entries y /exits.
// Folio vacío = folio automático (serie ENT o SAL según la operación).
// El lote es atómico: si una línea falla, no se aplica ninguna.
type RecordMovementRequest struct {
	Folio     string                `json:"folio,omitempty"`
	Reference string                `json:"reference"`
	Lines     []MovementLineRequest `json:"lines"`
}

// MovementEntryResponse una línea del libro de movimientos.
type MovementEntryResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Folio         string          `json:"folio"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCondition string          `json:"unit_condition,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListMovementsQuery filtros para GET /api/inventory/movements.
type ListMovementsQuery struct {
	Product   string `query:"product"` // nombre o código de barras, sin distinguir acentos
	Reference string `query:"reference"`
	Type      string `query:"type"` // IN | OUT
	From      string `query:"from"` // RFC 3339 o fecha 2006-01-02
	To        string `query:"to"`
	PageRequest
}

// AllocateFolioRequest body para POST /api/folios/allocate.
type AllocateFolioRequest struct {
	Series string `json:"series"`
}

// FolioResponse folio propuesto/asignado.
type FolioResponse struct {
	Series   string `json:"series"`
	Year     int    `json:"year"`
	Sequence int64  `json:"sequence"`
	Rendered string `json:"rendered"`
}

// RecomputeStockResponse resultado de la verificación de integridad.
type RecomputeStockResponse struct {
	ProductID  string          `json:"product_id"`
	Stock      decimal.Decimal `json:"stock"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Matches    bool            `json:"matches"`
}
