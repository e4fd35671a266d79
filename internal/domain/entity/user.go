package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// SuperAdminID id fijo del super-admin configurado por entorno (no existe en la tabla users).
const SuperAdminID = "00000000-0000-0000-0000-000000000000"

// legacySuperAdminID aparece en tokens emitidos por versiones anteriores.
const legacySuperAdminID = "super-admin"

// User representa una cuenta. Cada usuario es owner de su propio catálogo.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // admin, client
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity es la identidad que actúa en una operación; de ella sale el owner.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// NormalizeUserID traduce el id legacy del super-admin al id fijo actual.
func NormalizeUserID(id string) string {
	if id == legacySuperAdminID {
		return SuperAdminID
	}
	return id
}

// Owner devuelve el identificador de tenant de la identidad.
func (i Identity) Owner() string { return NormalizeUserID(i.UserID) }

// IsAdmin indica si la identidad tiene rol admin.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}
