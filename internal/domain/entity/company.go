package entity

import "time"

// Company representa una empresa prestamista (tenant). Toda consulta del
// core se filtra por CompanyID; el ciclo de vida de la suscripción se
// administra fuera de este servicio.
type Company struct {
	ID        string
	Name      string
	Status    bool // false = suspendida, bloquea login
	ExpiresAt *time.Time
	CreatedAt time.Time
}
