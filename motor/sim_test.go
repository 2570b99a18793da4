package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimConverges(t *testing.T) {
	s := NewSim(4, 0)
	prev := s.Speed()
	for i := 0; i < 100; i++ {
		got := s.Step(2500)
		assert.GreaterOrEqual(t, got, prev, "step %d", i)
		assert.LessOrEqual(t, got, uint16(2500), "step %d", i)
		prev = got
	}
	assert.Equal(t, uint16(2500), s.Speed())
}

func TestSimSlowsDown(t *testing.T) {
	s := NewSim(3, 3000)
	assert.Equal(t, uint16(2000), s.Step(0))
	for i := 0; i < 60; i++ {
		s.Step(0)
	}
	assert.Equal(t, uint16(0), s.Speed())
}

func TestSimSnapsWithUnitTau(t *testing.T) {
	for _, tau := range []int{-1, 0, 1} {
		s := NewSim(tau, 100)
		assert.Equal(t, uint16(4200), s.Step(4200), "tau=%d", tau)
	}
}

func TestSimHoldsAtSetpoint(t *testing.T) {
	s := NewSim(5, 1200)
	assert.Equal(t, uint16(1200), s.Step(1200))
}
