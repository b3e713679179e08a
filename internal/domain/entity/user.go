package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleBuyer = "BUYER"
)

// User representa un usuario del portal de compras.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
