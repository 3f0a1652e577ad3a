package routing

import (
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/geo"
)

// AutoSequence ordena los clientes con la heurística del vecino más
// cercano: parte del primer cliente con GPS en el orden actual y visita
// siempre al no visitado más próximo. Los empates se resuelven a favor del
// que va primero en el orden actual (búsqueda con "<" estricto). Los
// clientes sin GPS se anexan al final conservando su orden relativo.
//
// Devuelve el nuevo orden sin persistir nada; el commit es aparte.
func AutoSequence(customers []*entity.Customer) ([]*entity.Customer, error) {
	var withGPS, withoutGPS []*entity.Customer
	for _, c := range customers {
		if c.HasGPS() {
			withGPS = append(withGPS, c)
		} else {
			withoutGPS = append(withoutGPS, c)
		}
	}
	if len(withGPS) == 0 {
		return nil, domain.ErrNoGeoData
	}

	ordered := make([]*entity.Customer, 0, len(customers))
	ordered = append(ordered, withGPS[0])
	pending := make([]*entity.Customer, len(withGPS)-1)
	copy(pending, withGPS[1:])

	for len(pending) > 0 {
		last := ordered[len(ordered)-1]
		nearest := 0
		minDist := geo.Distance(*last.Lat, *last.Lon, *pending[0].Lat, *pending[0].Lon)
		for i := 1; i < len(pending); i++ {
			d := geo.Distance(*last.Lat, *last.Lon, *pending[i].Lat, *pending[i].Lon)
			if d < minDist {
				minDist = d
				nearest = i
			}
		}
		ordered = append(ordered, pending[nearest])
		pending = append(pending[:nearest], pending[nearest+1:]...)
	}

	return append(ordered, withoutGPS...), nil
}

// MoveToPosition reubica manualmente a un cliente en la posición newPos
// (base 1), corriendo una posición a los intermedios. No persiste.
func MoveToPosition(customers []*entity.Customer, customerID string, newPos int) ([]*entity.Customer, error) {
	if newPos < 1 || newPos > len(customers) {
		return nil, domain.ErrPositionOutOfRange
	}
	current := -1
	for i, c := range customers {
		if c.ID == customerID {
			current = i
			break
		}
	}
	if current == -1 {
		return nil, domain.ErrNotFound
	}

	out := make([]*entity.Customer, 0, len(customers))
	out = append(out, customers[:current]...)
	out = append(out, customers[current+1:]...)

	dest := newPos - 1
	out = append(out[:dest], append([]*entity.Customer{customers[current]}, out[dest:]...)...)
	return out, nil
}
