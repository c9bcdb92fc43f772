package material

import "github.com/Faultbox/attic3d/pkg/math"

func tint(v float32) *float32 { return &v }

// phong builds a material whose ambient colour equals its diffuse colour.
func phong(tag string, diffuse math.Vec3, specular, shininess float32) Material {
	return Material{
		Tag:             tag,
		AmbientColor:    diffuse,
		AmbientStrength: 0.1,
		DiffuseColor:    diffuse,
		SpecularColor:   math.Splat(specular),
		Shininess:       shininess,
	}
}

func grey(v float32) math.Vec3 { return math.Splat(v / 255) }

// Attic returns the materials used by the attic scene.
func Attic() []Material {
	orange := math.V3(1, 0.5, 0)

	glowingOrange := phong("glowing_orange", orange, 1, 32)
	glowingOrange.AmbientStrength = 0.5
	glowingOrange.EmissiveColor = orange

	glowingBeam := phong("glowing_beam", orange, 1, 32)
	glowingBeam.EmissiveColor = orange

	rug := phong("rug", grey(180), 1, 32)
	rug.Tint = tint(0.9)

	glass := phong("window_glass", math.RGB255(137, 196, 244), 1, 32)
	glass.EmissiveColor = math.Splat(0.7)

	lampLight := phong("lamp_light", math.V3(1, 0.6, 0.4), 1, 10)
	lampLight.EmissiveColor = math.V3(1, 0.6, 0.4)

	canvas := phong("canvas_material", math.Splat(1), 0.5, 0)
	canvas.EmissiveColor = math.Splat(0.01)

	return []Material{
		phong("default", math.Splat(1), 1, 32),
		glowingOrange,
		phong("floor", math.RGB255(117, 64, 28), 1, 32),
		phong("wall", grey(180), 1, 32),
		phong("ceiling", grey(90), 1, 32),
		glowingBeam,
		phong("sofa", grey(90), 1, 32),
		phong("sofa_feet", grey(60), 1, 32),
		rug,
		phong("drawer", grey(180), 1, 32),
		phong("space_heater", grey(35), 1, 32),
		glass,
		phong("window", grey(180), 1, 0),
		phong("beam", grey(180), 1, 32),
		phong("lamp", grey(180), 1, 100),
		lampLight,
		phong("frame_material", grey(30), 0.5, 0),
		canvas,
		phong("pot_material", math.Splat(0.5), 1, 64),
		phong("stem_material", math.V3(0.13, 0.55, 0.13), 0.2, 16),
		phong("leaf_material", math.V3(0, 1, 0), 0.2, 16),
	}
}
