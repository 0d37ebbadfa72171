package domain

import "time"

// Clock supplies the current instant. Status derivation depends on it,
// so it is injected rather than read from the runtime directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }
