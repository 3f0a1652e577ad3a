package entity

import "time"

// Customer representa un cliente de la empresa (sujeto de créditos).
// RoutePosition es denso y único dentro de la ruta (1..N); lo administra el
// enrutador, nunca se edita suelto. Lat/Lon son opcionales: un cliente sin
// cualquiera de las dos coordenadas se trata como "sin GPS" al enrutar.
type Customer struct {
	ID            string
	CompanyID     string
	DNI           string
	Name          string
	Phone         string
	Address       string
	District      string // barrio
	BusinessRef   string // referencia del negocio/puesto
	RouteID       string
	RoutePosition int
	Lat           *float64
	Lon           *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasGPS indica si el cliente tiene coordenada completa registrada.
func (c *Customer) HasGPS() bool {
	return c.Lat != nil && c.Lon != nil
}
