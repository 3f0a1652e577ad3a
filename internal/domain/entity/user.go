package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleCobrador   = "COBRADOR"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User representa un usuario del sistema (pertenece a una Company).
// Los cobradores recorren la ruta y registran pagos; los admin autorizan
// operaciones destructivas y movimientos de capital.
type User struct {
	ID           string
	CompanyID    string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ADMIN, COBRADOR, SUPER_ADMIN
	Status       bool   // false = desactivado, no puede operar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
