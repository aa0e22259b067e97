package entity

import "time"

// Actor es un participante de la cadena de custodia: quien entrega, transporta
// o recibe un artículo. Position es el cargo o credencial que lo identifica.
type Actor struct {
	Name     string
	Position string
}

// Empty indica si el actor no fue informado.
func (a Actor) Empty() bool {
	return a.Name == "" && a.Position == ""
}

// Complete indica si el actor trae nombre y cargo/credencial no vacíos.
func (a Actor) Complete() bool {
	return a.Name != "" && a.Position != ""
}

// ActorChain es la cadena de custodia (entrega / transporta / recibe) capturada
// en cada transición. Las salidas exigen la terna completa; las recepciones de
// intake solo el actor del paso correspondiente.
type ActorChain struct {
	DeliveredBy   Actor
	TransportedBy Actor
	ReceivedBy    Actor
}

// CustodyEvent es el registro inmutable de una transición del ciclo de vida.
// Solo se agrega, nunca se edita ni se borra; el historial completo de un
// artículo debe reproducir su Status actual.
type CustodyEvent struct {
	ID            string
	CustodyItemID string
	Kind          string // tipo de transición (custody.Transition*)
	FromStatus    string
	ToStatus      string
	Folio         string // documento que autorizó la transición
	Destination   string // destino físico para traslados, vacío en otros casos
	Actors        ActorChain
	Notes         string
	OccurredAt    time.Time
	RecordedBy    string // UserID del operador que capturó el evento
}
