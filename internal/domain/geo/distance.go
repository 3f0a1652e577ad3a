package geo

import "math"

// EarthRadiusM radio terrestre en metros. Todo el sistema habla en metros;
// no mezclar con km en los call sites.
const EarthRadiusM = 6371000.0

// Distance calcula la distancia de círculo máximo (fórmula de Haversine)
// entre dos coordenadas en grados decimales. Resultado en metros.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// WithinRadius indica si dos puntos están a lo más radiusM metros.
// Usado para la alerta "estás cobrando lejos del cliente".
func WithinRadius(lat1, lon1, lat2, lon2, radiusM float64) bool {
	return Distance(lat1, lon1, lat2, lon2) <= radiusM
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
