package shader

// Pass selects what the scene shader computes for a draw.
// Its value is written to the uPass uniform.
type Pass int32

const (
	PassDepth Pass = iota // depth only, from the light
	PassColor             // full shading from the camera
)

func (p Pass) String() string {
	switch p {
	case PassDepth:
		return "depth"
	case PassColor:
		return "color"
	default:
		return "unknown"
	}
}

// SetPass writes p to the pass uniform.
func SetPass(u Uniforms, p Pass) {
	u.SetInt(UniformPass, int32(p))
}
