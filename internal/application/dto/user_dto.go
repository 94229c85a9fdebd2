package dto

import "time"

// RegisterRequest entrada para registro (auth). El password se hashea en el use case.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	CPF      string `json:"cpf" validate:"required"`
	CRM      string `json:"crm" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=healthcare-professional admin"`
}

// LoginRequest entrada para login con CPF.
type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse proyección pública de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	CRM       string    `json:"crm"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse salida de registro y login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserEnvelope respuesta de /auth/me.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UserListResponse listado administrativo de usuarios.
type UserListResponse struct {
	Results int            `json:"results"`
	Users   []UserResponse `json:"users"`
}
