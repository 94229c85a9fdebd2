package entity

import "time"

// Roles válidos para User.
const (
	RoleProfessional = "healthcare-professional"
	RoleAdmin        = "admin"
)

// ValidRole indica si el rol pertenece al enum de roles.
func ValidRole(role string) bool {
	return role == RoleProfessional || role == RoleAdmin
}

// User representa un profesional de salud registrado.
// CPF y CRM son únicos en todo el sistema.
type User struct {
	ID           string
	Name         string
	CPF          string // identificación nacional, usada como login
	CRM          string // registro profesional, "CRM/UF 123456"
	PasswordHash string // bcrypt hash, nunca sale por la API
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
