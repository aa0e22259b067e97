package dto

import "time"

// ActorDTO un participante de la cadena de custodia.
type ActorDTO struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// RegisterCustodyItemRequest body para POST /api/custody/items.
// InitialStatus: EN_TRANSITO, o EN_RESGUARDO si el intake omite el tránsito.
type RegisterCustodyItemRequest struct {
	InventoryNumber  string   `json:"inventory_number"`
	SerialNumber     string   `json:"serial_number,omitempty"`
	Description      string   `json:"description"`
	Brand            string   `json:"brand,omitempty"`
	Model            string   `json:"model,omitempty"`
	Quantity         int      `json:"quantity"`
	Reason           string   `json:"reason"`            // RESGUARDO | TRASLADO | BAJA
	InitialCondition string   `json:"initial_condition"` // BUENO | DAÑADO | DEFECTUOSO
	CenterOrigin     string   `json:"center_origin"`
	InitialStatus    string   `json:"initial_status,omitempty"`
	Folio            string   `json:"folio,omitempty"` // vacío = folio RSG automático
	DeliveredBy      ActorDTO `json:"delivered_by"`
	Notes            string   `json:"notes,omitempty"`
}

// TransitionCustodyItemRequest body para POST /api/custody/items/:id/transition.
// ExpectedStatus es el estado que el operador vio en pantalla: el compare-and-swap
// rechaza la transición con STALE_STATE si otro operador se adelantó.
type TransitionCustodyItemRequest struct {
	Kind           string   `json:"kind"` // RECEPCION_CHOFER | RECEPCION_ALMACEN | SALIDA | BAJA_ADMINISTRATIVA
	Reason         string   `json:"reason,omitempty"`
	ExpectedStatus string   `json:"expected_status"`
	Folio          string   `json:"folio,omitempty"` // vacío en SALIDA = folio SAL-RSG automático
	DeliveredBy    ActorDTO `json:"delivered_by,omitempty"`
	TransportedBy  ActorDTO `json:"transported_by,omitempty"`
	ReceivedBy     ActorDTO `json:"received_by,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// CustodyItemResponse representación del artículo en respuestas.
type CustodyItemResponse struct {
	ID               string    `json:"id"`
	InventoryNumber  string    `json:"inventory_number"`
	SerialNumber     string    `json:"serial_number,omitempty"`
	Description      string    `json:"description"`
	Brand            string    `json:"brand,omitempty"`
	Model            string    `json:"model,omitempty"`
	Quantity         int       `json:"quantity"`
	Reason           string    `json:"reason"`
	InitialCondition string    `json:"initial_condition"`
	CenterOrigin     string    `json:"center_origin"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// CustodyEventResponse un evento del historial de custodia.
type CustodyEventResponse struct {
	ID            string   `json:"id"`
	Kind          string   `json:"kind"`
	FromStatus    string   `json:"from_status"`
	ToStatus      string   `json:"to_status"`
	Folio         string   `json:"folio,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	DeliveredBy   ActorDTO `json:"delivered_by,omitempty"`
	TransportedBy ActorDTO `json:"transported_by,omitempty"`
	ReceivedBy    ActorDTO `json:"received_by,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	RecordedBy    string    `json:"recorded_by"`
}
