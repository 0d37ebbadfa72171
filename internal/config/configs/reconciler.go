package configs

import "time"

// Reconciler configures the periodic status reconciliation loop. It
// sweeps every campaign whose persisted status is still time-sensitive
// and writes the derived status where the two diverge. An Interval of
// zero disables the loop; status then only moves on explicit sync
// requests.
type Reconciler struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"0"`
}

// Enabled reports whether the reconciliation loop should run.
func (c Reconciler) Enabled() bool {
	return c.Interval > 0
}
