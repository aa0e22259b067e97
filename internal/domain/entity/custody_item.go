package entity

import "time"

// Estados del ciclo de vida de un artículo en resguardo.
// El estado solo avanza según el grafo de transiciones; BAJA_DEFINITIVA es terminal.
const (
	StatusEnTransito     = "EN_TRANSITO"
	StatusEnResguardo    = "EN_RESGUARDO"
	StatusBajaDefinitiva = "BAJA_DEFINITIVA"
)

// Motivos de resguardo/salida.
const (
	ReasonResguardo = "RESGUARDO"
	ReasonTraslado  = "TRASLADO"
	ReasonBaja      = "BAJA"
)

// Condición física del artículo al momento del registro.
const (
	ConditionBueno      = "BUENO"
	ConditionDanado     = "DAÑADO"
	ConditionDefectuoso = "DEFECTUOSO"
)

// CustodyItem representa un activo físico serializado bajo resguardo (no fungible,
// a diferencia de Product que maneja stock por cantidad).
// InventoryNumber es único e inmutable; SerialNumber es único si viene informado.
// Status es estado derivado: siempre debe coincidir con el ToStatus del último
// CustodyEvent del artículo. Los artículos nunca se borran; la baja es un estado.
type CustodyItem struct {
	ID               string
	InventoryNumber  string // número de inventario institucional, único
	SerialNumber     string // serie del fabricante, único si no está vacío
	Description      string
	Brand            string
	Model            string
	Quantity         int
	Reason           string // RESGUARDO | TRASLADO | BAJA
	InitialCondition string // BUENO | DAÑADO | DEFECTUOSO
	CenterOrigin     string // centro de trabajo de origen
	Status           string // EN_TRANSITO | EN_RESGUARDO | BAJA_DEFINITIVA
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsTerminal indica si el artículo ya no admite transiciones.
func (i *CustodyItem) IsTerminal() bool {
	return i.Status == StatusBajaDefinitiva
}
