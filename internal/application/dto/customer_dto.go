package dto

import "time"

// CreateCustomerRequest registro de un cliente nuevo.
type CreateCustomerRequest struct {
	DNI         string   `json:"dni"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	District    string   `json:"district"`
	BusinessRef string   `json:"business_ref"`
	RouteID     string   `json:"route_id"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// UpdateCustomerRequest edición de datos del cliente (incluye refrescar GPS).
type UpdateCustomerRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	District    string   `json:"district"`
	BusinessRef string   `json:"business_ref"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// CustomerResponse proyección de un cliente.
type CustomerResponse struct {
	ID            string    `json:"id"`
	DNI           string    `json:"dni"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	District      string    `json:"district"`
	BusinessRef   string    `json:"business_ref"`
	RouteID       string    `json:"route_id"`
	RoutePosition int       `json:"route_position"`
	Lat           *float64  `json:"lat,omitempty"`
	Lon           *float64  `json:"lon,omitempty"`
	HasGPS        bool      `json:"has_gps"`
	CreatedAt     time.Time `json:"created_at"`
}
