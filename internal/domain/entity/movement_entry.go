package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// MovementEntry es una línea inmutable del libro de movimientos: un cambio de
// stock de un producto, amparado por un folio. Las entradas nunca se mutan ni
// se borran; una corrección es una nueva entrada que compensa la anterior.
type MovementEntry struct {
	ID            string
	Type          string // IN | OUT
	Folio         string // folio del documento que ampara el movimiento
	ProductID     string
	Quantity      decimal.Decimal // siempre > 0; el signo lo da Type
	UnitCondition string          // condición de la unidad al moverse, opcional
	Reference     string          // motivo/descripción libre
	CreatedBy     string          // UserID del operador
	CreatedAt     time.Time
}

// Delta devuelve el efecto del movimiento sobre el stock: positivo para IN,
// negativo para OUT.
func (m *MovementEntry) Delta() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
