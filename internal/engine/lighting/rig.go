package lighting

import (
	"time"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Rig is the full light setup: one spotlight, six point-light slots and the
// movers that animate some of those slots.
type Rig struct {
	GlobalAmbient math.Vec3                  `yaml:"global_ambient" toml:"global_ambient"`
	Spot          SpotLight                  `yaml:"spot" toml:"spot"`
	Points        [NumPointLights]PointLight `yaml:"points" toml:"points"`
	Movers        []Mover                    `yaml:"movers" toml:"movers"`
}

// Snapshot is the resolved light state at one instant.
type Snapshot struct {
	T      float32                    `yaml:"t" toml:"t"`
	Spot   SpotLight                  `yaml:"spot" toml:"spot"`
	Points [NumPointLights]PointLight `yaml:"points" toml:"points"`
}

// Attic mover endpoints.
var (
	moverStart    = math.V3(0, 15.5, -8.9)
	moverEndRight = math.V3(14.4, 13, -8.9)
	moverEndLeft  = math.V3(-14.4, 13, -8.9)
	deskLampPos   = math.V3(0, 8.5, -3)
)

// Attic returns the attic rig. Slots 0 and 2 are the glowing movers; slots 1
// and 3 follow the mirrored counter-phase paths but stay switched off; slot 4
// is unused and slot 5 is the desk lamp, lit only when deskLamp is set.
func Attic(globalAmbient float32, deskLamp bool) *Rig {
	cutOff, outer := Cone(85, 90)
	r := &Rig{
		GlobalAmbient: math.Splat(globalAmbient),
		Spot: SpotLight{
			Position:    math.V3(0, 14, -9.85),
			Direction:   math.V3(0, -0.5, 0),
			CutOff:      cutOff,
			OuterCutOff: outer,
			Ambient:     math.V3(0.7, 0.55, 0.4),
			Diffuse:     math.V3(1, 0.9, 0.7),
			Specular:    math.V3(1, 0.9, 0.8),
			Attenuation: Attenuation{1, 0.05, 0.0007},
			Active:      true,
		},
		Movers: []Mover{
			{Slot: 0, Start: moverStart, End: moverEndRight},
			{Slot: 1, Start: moverStart, End: moverEndRight, CounterPhase: true},
			{Slot: 2, Start: moverStart, End: moverEndLeft},
			{Slot: 3, Start: moverStart, End: moverEndLeft, CounterPhase: true},
		},
	}

	orange := math.V3(1, 0.5, 0)
	glow := PointLight{
		Ambient:     orange,
		Diffuse:     orange,
		Specular:    orange,
		Attenuation: Attenuation{1, 0.09, 0.032},
		Active:      true,
	}
	r.Points[0] = glow
	r.Points[1] = Disabled(math.Vec3{})
	r.Points[2] = glow
	r.Points[3] = Disabled(math.Vec3{})
	r.Points[4] = Disabled(math.Vec3{})

	r.Points[5] = Disabled(deskLampPos)
	if deskLamp {
		r.Points[5] = PointLight{
			Position:    deskLampPos,
			Ambient:     math.V3(0.1, 0.05, 0),
			Diffuse:     orange,
			Specular:    orange,
			Attenuation: Attenuation{1, 0.07, 0.017},
			Active:      true,
		}
	}
	return r
}

// Snapshot resolves mover positions for the given elapsed time.
func (r *Rig) Snapshot(elapsed time.Duration) Snapshot {
	t := Oscillator(elapsed)
	s := Snapshot{T: t, Spot: r.Spot, Points: r.Points}
	for _, m := range r.Movers {
		if m.Slot >= 0 && m.Slot < NumPointLights {
			s.Points[m.Slot].Position = m.At(t)
		}
	}
	return s
}

// Positions returns the point-light positions at elapsed.
func (r *Rig) Positions(elapsed time.Duration) [NumPointLights]math.Vec3 {
	s := r.Snapshot(elapsed)
	var out [NumPointLights]math.Vec3
	for i, p := range s.Points {
		out[i] = p.Position
	}
	return out
}

// Inactive returns the number of switched-off point-light slots.
func (r *Rig) Inactive() int {
	n := 0
	for _, p := range r.Points {
		if !p.Active {
			n++
		}
	}
	return n
}

// Apply enables lighting and writes every light to u.
func (r *Rig) Apply(u shader.Uniforms, elapsed time.Duration) Snapshot {
	s := r.Snapshot(elapsed)

	u.SetBool(shader.UniformUseLighting, true)
	u.SetVec3(shader.UniformGlobalAmbient, r.GlobalAmbient)
	s.Spot.apply(u)
	for i, p := range s.Points {
		p.apply(u, i)
	}
	disableDirectional(u)
	return s
}
