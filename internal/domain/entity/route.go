package entity

import "time"

// Route es una ruta de cobro: una secuencia ordenada de clientes asignada
// a un cobrador. El orden vive en Customer.RoutePosition.
type Route struct {
	ID          string
	CompanyID   string
	Name        string
	CollectorID string // usuario cobrador asignado; vacío = sin asignar
	Status      bool
	CreatedAt   time.Time
}
