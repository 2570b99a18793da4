// Package motor models the lab motor well enough to feed the speed chart on
// boards without a tachometer.
package motor

// Sim is a first-order lag: every Step closes 1/Tau of the remaining gap to
// the setpoint, moving at least one count and never overshooting. Speeds are
// in tenths of a revolution per second.
type Sim struct {
	speed int32
	tau   int32
}

// NewSim starts the plant at start. A tau below 1 is treated as 1.
func NewSim(tau int, start uint16) *Sim {
	if tau < 1 {
		tau = 1
	}
	return &Sim{speed: int32(start), tau: int32(tau)}
}

// Step advances one sample period toward desired and returns the new speed.
func (s *Sim) Step(desired uint16) uint16 {
	diff := int32(desired) - s.speed
	delta := diff / s.tau
	if delta == 0 {
		switch {
		case diff > 0:
			delta = 1
		case diff < 0:
			delta = -1
		}
	}
	s.speed += delta
	return uint16(s.speed)
}

// Speed returns the last computed speed.
func (s *Sim) Speed() uint16 { return uint16(s.speed) }
