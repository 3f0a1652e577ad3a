package domain

import "time"

// Clock abstrae el "ahora" para que los casos de uso con ventanas diarias
// (caja, semáforo de mora, scoring) sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implementación de producción sobre time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock siempre devuelve el mismo instante. Para tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
