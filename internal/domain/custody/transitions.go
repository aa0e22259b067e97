// Package custody contiene las reglas puras del ciclo de vida de un artículo
// en resguardo: qué transición aplica desde cada estado y qué actores de la
// cadena de custodia exige cada una (servicio de dominio, sin dependencias).
package custody

import (
	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// Tipos de transición del ciclo de vida.
const (
	// TransitionRecepcionChofer: el chofer confirma recepción en tránsito.
	// No cambia el estado; solo actualiza la cadena de custodia.
	TransitionRecepcionChofer = "RECEPCION_CHOFER"
	// TransitionRecepcionAlmacen: el almacén recibe el artículo (EN_RESGUARDO).
	TransitionRecepcionAlmacen = "RECEPCION_ALMACEN"
	// TransitionSalida: salida de resguardo. Según el motivo: BAJA termina el
	// ciclo (BAJA_DEFINITIVA); TRASLADO reingresa EN_TRANSITO hacia Zona Principal.
	TransitionSalida = "SALIDA"
	// TransitionBajaAdministrativa: baja directa desde cualquier estado no terminal.
	TransitionBajaAdministrativa = "BAJA_ADMINISTRATIVA"
)

// TrasladoDestination es el destino fijo de las salidas por traslado.
const TrasladoDestination = "Zona Principal"

// Resolve devuelve el estado destino para (estado actual, transición, motivo).
// Combinaciones fuera de la tabla confirmada se rechazan con ErrInvalidInput en
// lugar de adivinar. Un estado terminal siempre devuelve ErrTerminalState.
func Resolve(current, kind, reason string) (string, error) {
	if current == entity.StatusBajaDefinitiva {
		return "", domain.ErrTerminalState
	}
	switch kind {
	case TransitionRecepcionChofer:
		if current != entity.StatusEnTransito {
			return "", domain.ErrInvalidInput
		}
		return entity.StatusEnTransito, nil
	case TransitionRecepcionAlmacen:
		if current != entity.StatusEnTransito {
			return "", domain.ErrInvalidInput
		}
		return entity.StatusEnResguardo, nil
	case TransitionSalida:
		if current != entity.StatusEnResguardo {
			return "", domain.ErrInvalidInput
		}
		switch reason {
		case entity.ReasonBaja:
			return entity.StatusBajaDefinitiva, nil
		case entity.ReasonTraslado:
			return entity.StatusEnTransito, nil
		default:
			return "", domain.ErrInvalidInput
		}
	case TransitionBajaAdministrativa:
		return entity.StatusBajaDefinitiva, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// RemovesFromCustody indica si la transición saca el artículo del resguardo
// (y por tanto exige la terna completa de la cadena de custodia).
func RemovesFromCustody(kind string) bool {
	return kind == TransitionSalida
}

// ValidateActors verifica que la transición traiga los actores que exige:
//   - RECEPCION_CHOFER: solo quien transporta.
//   - RECEPCION_ALMACEN: quien recibe, con nombre y cargo.
//   - SALIDA: entrega, transporta y recibe, cada uno con nombre y cargo.
//   - BAJA_ADMINISTRATIVA: el actor que autoriza (capturado como DeliveredBy).
func ValidateActors(kind string, actors entity.ActorChain) error {
	switch kind {
	case TransitionRecepcionChofer:
		if actors.TransportedBy.Name == "" {
			return domain.ErrInvalidInput
		}
	case TransitionRecepcionAlmacen:
		if !actors.ReceivedBy.Complete() {
			return domain.ErrInvalidInput
		}
	case TransitionSalida:
		if !actors.DeliveredBy.Complete() || !actors.TransportedBy.Complete() || !actors.ReceivedBy.Complete() {
			return domain.ErrInvalidInput
		}
	case TransitionBajaAdministrativa:
		if actors.DeliveredBy.Name == "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ValidRegistrationStatus verifica el estado inicial permitido al registrar:
// EN_TRANSITO, o EN_RESGUARDO cuando el intake omite el paso de tránsito.
func ValidRegistrationStatus(status string) bool {
	return status == entity.StatusEnTransito || status == entity.StatusEnResguardo
}

// ValidReason verifica el motivo de resguardo declarado al registrar.
func ValidReason(reason string) bool {
	switch reason {
	case entity.ReasonResguardo, entity.ReasonTraslado, entity.ReasonBaja:
		return true
	}
	return false
}

// ValidCondition verifica la condición física declarada al registrar.
func ValidCondition(condition string) bool {
	switch condition {
	case entity.ConditionBueno, entity.ConditionDanado, entity.ConditionDefectuoso:
		return true
	}
	return false
}
