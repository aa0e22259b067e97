package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta de un producto.
// Los productos PRECIO_LIBRE (monto capturado a mano en caja) no manejan stock
// y nunca aceptan movimientos de inventario.
const (
	SaleTypeUnidad      = "UNIDAD"
	SaleTypePeso        = "PESO"
	SaleTypePrecioLibre = "PRECIO_LIBRE"
)

// Product representa un producto fungible con stock controlado.
// Stock es estado derivado del libro de movimientos: solo el motor de
// consistencia lo escribe y siempre debe igualar la suma IN − OUT de
// movement_entries. Decimal porque los productos por PESO venden fracciones.
type Product struct {
	ID           string
	Barcode      string // código de barras, único si no está vacío
	Name         string
	Stock        decimal.Decimal
	SaleCost     decimal.Decimal
	PurchaseCost decimal.Decimal
	SaleType     string // UNIDAD | PESO | PRECIO_LIBRE
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TracksStock indica si el producto lleva control de inventario.
func (p *Product) TracksStock() bool {
	return p.SaleType != SaleTypePrecioLibre
}
