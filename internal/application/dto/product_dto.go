package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// El stock inicial no se captura aquí: todo stock entra por el libro de
// movimientos (una entrada con su folio), nunca por el catálogo.
type CreateProductRequest struct {
	Barcode      string          `json:"barcode,omitempty"`
	Name         string          `json:"name"`
	SaleCost     decimal.Decimal `json:"sale_cost"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SaleType     string          `json:"sale_type"` // UNIDAD | PESO | PRECIO_LIBRE
}

// UpdateProductRequest body para PUT /api/products/:id. Stock no es editable.
type UpdateProductRequest struct {
	Barcode      string          `json:"barcode,omitempty"`
	Name         string          `json:"name"`
	SaleCost     decimal.Decimal `json:"sale_cost"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SaleType     string          `json:"sale_type"`
	Active       *bool           `json:"active,omitempty"`
}

// ProductResponse representación del producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode,omitempty"`
	Name         string          `json:"name"`
	Stock        decimal.Decimal `json:"stock"`
	SaleCost     decimal.Decimal `json:"sale_cost"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SaleType     string          `json:"sale_type"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}
