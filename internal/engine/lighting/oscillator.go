package lighting

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/pkg/math"
)

// Oscillator maps elapsed time onto [0, 1]: (sin(seconds) + 1) / 2.
func Oscillator(elapsed time.Duration) float32 {
	return (math32.Sin(float32(elapsed.Seconds())) + 1) / 2
}

// Mover animates one point-light slot along a straight path.
// A counter-phase mover travels with 1-t instead of t.
type Mover struct {
	Slot         int       `yaml:"slot" toml:"slot"`
	Start        math.Vec3 `yaml:"start" toml:"start"`
	End          math.Vec3 `yaml:"end" toml:"end"`
	CounterPhase bool      `yaml:"counter_phase,omitempty" toml:"counter_phase,omitempty"`
}

// At returns the mover position for oscillator value t.
func (m Mover) At(t float32) math.Vec3 {
	if m.CounterPhase {
		t = 1 - t
	}
	return m.Start.Lerp(m.End, t)
}
