package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// User representa una cuenta de la plataforma (dueña de sus costeos y ofertas).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // superadmin, admin, user
	PlanID       string // plan de suscripción activo
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPrivileged indica si el rol está exento de límites de plan.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}
