package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEmpleado   = "empleado"
)

// ValidRole indica si r es uno de los roles del sistema.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmpleado:
		return true
	}
	return false
}

// User representa una identidad con acceso a la API. Nunca se borra, solo se desactiva.
type User struct {
	ID               string
	Nombre           string
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Role             string // admin, supervisor, empleado
	Activo           bool
	LastLogin        *time.Time
	ResetTokenHash   string // sha256 del token de recuperación
	ResetTokenExpira *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
