package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrConflict: carrera en la asignación del consecutivo de folio.
	// El caso de uso reintenta una vez antes de propagarlo.
	ErrConflict = errors.New("conflicto al asignar el consecutivo de folio")

	// ErrDuplicateFolio: el folio ya fue reclamado en su espacio de nombres.
	ErrDuplicateFolio = errors.New("el folio ya existe")

	// ErrStaleState: el compare-and-swap sobre el estado de resguardo falló;
	// otro operador procesó el artículo primero. El caller debe recargar.
	ErrStaleState = errors.New("el estado del artículo cambió, recargue e intente de nuevo")

	// ErrTerminalState: el artículo está en BAJA_DEFINITIVA y no admite más transiciones.
	ErrTerminalState = errors.New("el artículo está dado de baja definitiva")

	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrLedgerIntegrity: el stock almacenado no coincide con la suma del libro
	// de movimientos. Fatal; requiere intervención del operador, nunca se reintenta.
	ErrLedgerIntegrity = errors.New("inconsistencia entre stock y libro de movimientos")
)
