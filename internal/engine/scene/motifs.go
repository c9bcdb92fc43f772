package scene

import (
	"strconv"

	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/pkg/math"
)

// BeamRow repeats base along Z from zFrom to zTo (inclusive) at the given
// step, keeping its X and Y.
func BeamRow(base Placement, zFrom, zTo, step float32) []Placement {
	if step <= 0 {
		return []Placement{base}
	}
	var out []Placement
	for z := zFrom; z <= zTo+step/1000; z += step {
		p := base
		p.Transform.Position.Z = z
		out = append(out, p)
	}
	return out
}

// Mirror returns base reflected through the YZ plane: X position and the
// X and Z rotations are negated.
func Mirror(base Placement) Placement {
	p := base
	p.Transform.Position.X = -p.Transform.Position.X
	p.Transform.RotX = -p.Transform.RotX
	p.Transform.RotZ = -p.Transform.RotZ
	return p
}

// Radial arranges copies of a placement around a vertical axis.
type Radial struct {
	Pivot  math.Vec3
	Radius float32
	Count  int
	// StepDeg is the angle between neighbours; 0 spreads Count evenly.
	StepDeg float32
	// PhaseDeg rotates the whole ring, used to spiral successive rings.
	PhaseDeg float32
	// Lift returns the height above Pivot for item i at angle rad.
	Lift func(i int, rad float32) float32
	// Orient returns the item's Euler angles in degrees for angle rad.
	Orient func(rad float32) (rx, ry, rz float32)
}

// RadialCluster places r.Count copies of base around r.Pivot.
func RadialCluster(base Placement, r Radial) []Placement {
	if r.Count <= 0 {
		return nil
	}
	step := r.StepDeg
	if step == 0 {
		step = 360 / float32(r.Count)
	}
	out := make([]Placement, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		rad := math.Radians(float32(i)*step + r.PhaseDeg)
		s, c := math32.Sincos(rad)

		p := base
		pos := r.Pivot.Add(math.V3(r.Radius*c, 0, r.Radius*s))
		if r.Lift != nil {
			pos.Y += r.Lift(i, rad)
		}
		p.Transform.Position = pos
		if r.Orient != nil {
			p.Transform.RotX, p.Transform.RotY, p.Transform.RotZ = r.Orient(rad)
		}
		out = append(out, p)
	}
	return out
}

// Unlit marks every placement as drawn without lighting.
func Unlit(ps ...Placement) []Placement {
	out := make([]Placement, len(ps))
	for i, p := range ps {
		p.Unlit = true
		out[i] = p
	}
	return out
}

// Named sets Name on every placement, suffixing an index when there are several.
func Named(name string, ps []Placement) []Placement {
	for i := range ps {
		if len(ps) == 1 {
			ps[i].Name = name
			continue
		}
		ps[i].Name = name + "_" + strconv.Itoa(i)
	}
	return ps
}
