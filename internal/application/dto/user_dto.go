package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterUserRequest alta de un usuario (solo admin).
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // ADMIN, COBRADOR
}

// UserResponse proyección de un usuario (nunca expone el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RiskLookupResponse resultado de la consulta de riesgo de un cliente.
type RiskLookupResponse struct {
	CustomerID string            `json:"customer_id"`
	Level      string            `json:"level"` // VERDE, AMARILLO, ROJO
	BadCredits int               `json:"bad_credits"`
	Credits    []*CreditResponse `json:"credits"`
}
