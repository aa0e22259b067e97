package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin       = "admin"
	RoleAlmacenista = "almacenista"
	RoleCajero      = "cajero"
)

// User representa un operador del sistema. El motor de custodia e inventario
// solo consume su ID y nombre como identidad del actor que registra.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Position     string // cargo mostrado en documentos de custodia
	Role         string // admin | almacenista | cajero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
