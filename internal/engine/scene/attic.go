package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/texture"
	"github.com/Faultbox/attic3d/internal/engine/transform"
	"github.com/Faultbox/attic3d/pkg/math"
)

var v3 = math.V3

// AtticTextures lists the attic images in load order. roof.jpg is listed
// twice under the same tag; the second load is rejected by the registry.
func AtticTextures() []texture.Source {
	return []texture.Source{
		{Path: "floor.jpg", Tag: "texture1"},
		{Path: "couchfabric.jpg", Tag: "texture2"},
		{Path: "sidewall.jpg", Tag: "texture3"},
		{Path: "roof.jpg", Tag: "texture4"},
		{Path: "painting1.png", Tag: "texture5"},
		{Path: "roof.jpg", Tag: "texture4"},
		{Path: "desktop.png", Tag: "texture6"},
		{Path: "keyboard.png", Tag: "texture7"},
		{Path: "monitor.png", Tag: "texture8"},
		{Path: "drawer.png", Tag: "texture9"},
	}
}

type rot struct{ x, y, z float32 }

func put(name, mat string, k mesh.Kind, scale math.Vec3, r rot, pos math.Vec3) Placement {
	return Placement{
		Name:      name,
		Material:  mat,
		Mesh:      k,
		Transform: transform.New(scale, r.x, r.y, r.z, pos),
	}
}

func textured(p Placement, tex string, uv float32) Placement {
	p.Texture = tex
	p.UVScale = math.V2(uv, uv)
	return p
}

func colored(c *math.Vec4, ps ...Placement) []Placement {
	for i := range ps {
		ps[i].Color = c
	}
	return ps
}

// Attic returns the complete attic scene.
func Attic() Script {
	groups := [][]Placement{
		roomShell(),
		beams(),
		sofa(),
		rug(),
		drawerSet(),
		shelves(),
		wallBoards(),
		window(),
		spaceHeater(),
		floorLamps(),
		desk(),
		pcTower(),
		painting(),
		monitor(),
		keyboard(),
		plants(),
		chair(),
	}
	var s Script
	for _, g := range groups {
		s = append(s, g...)
	}
	return s
}

func roomShell() []Placement {
	side := textured(put("wall_right", "wall", mesh.Plane, v3(12, 10, 3.5), rot{0, 90, 90}, v3(15, 3.5, 2)), "texture3", 2)
	leftSide := Mirror(side)
	leftSide.Name = "wall_left"

	ceiling := textured(put("ceiling_right", "ceiling", mesh.Plane, v3(12, 20, 10.7), rot{-45, 90, 90}, v3(7.4, 14.5, 2)), "texture4", 2)
	leftCeiling := ceiling
	leftCeiling.Name = "ceiling_left"
	leftCeiling.Transform.RotX = 45
	leftCeiling.Transform.Position.X = -7.4

	return []Placement{
		textured(put("floor", "floor", mesh.Plane, v3(15, 0.1, 12), rot{}, v3(0, 0, 2)), "texture1", 4),
		textured(put("wall_back", "wall", mesh.Plane, v3(15, 10, 15), rot{90, 0, 0}, v3(0, 15, -10)), "texture3", 0.75),
		leftSide,
		side,
		ceiling,
		leftCeiling,
	}
}

func beams() []Placement {
	scale := v3(21, 0.5, 0.5)
	glow := textured(put("beam_glow_right", "glowing_beam", mesh.Box, scale, rot{90, 0, 135}, v3(7.4, 14.5, -10)), "texture1", 2)
	glowLeft := Mirror(glow)
	glowLeft.Name = "beam_glow_left"

	ridge := textured(put("beam_ridge", "beam", mesh.Box, scale, rot{0, 90, 90}, v3(0, 21.5, 2)), "texture1", 2)

	rafter := glow
	rafter.Material = "beam"
	right := Named("rafter_right", BeamRow(rafter, -10, 10, 4))
	left := make([]Placement, len(right))
	for i, p := range right {
		left[i] = Mirror(p)
	}
	left = Named("rafter_left", left)

	out := []Placement{glow, glowLeft, ridge}
	out = append(out, right...)
	return append(out, left...)
}

func sofa() []Placement {
	fabric := func(name string, scale math.Vec3, r rot, pos math.Vec3) Placement {
		return textured(put(name, "sofa", mesh.Box, scale, r, pos), "texture2", 0.75)
	}
	foot := func(name string, h float32, pos math.Vec3) Placement {
		return put(name, "sofa_feet", mesh.Cylinder, v3(0.1, h, 0.1), rot{}, pos)
	}
	out := []Placement{
		fabric("sofa_arm_front", v3(5, 2, 0.9), rot{}, v3(-12.25, 1.25, 5)),
		fabric("sofa_arm_back", v3(5, 2, 0.9), rot{}, v3(-12.25, 1.25, -3)),
		fabric("sofa_base", v3(4.95, 0.5, 8), rot{}, v3(-12.25, 0.5, 1)),
		fabric("sofa_cushion_0", v3(3, 0.5, 3.5), rot{0, 0, -55}, v3(-13.75, 2, 2.75)),
		fabric("sofa_cushion_1", v3(3, 0.5, 3.5), rot{0, 0, -55}, v3(-13.75, 2, -0.75)),
		fabric("sofa_seat", v3(5, 0.75, 6.5), rot{}, v3(-12.25, 1.25, 1)),
	}
	return append(out, colored(gray(30),
		foot("sofa_foot_0", 0.5, v3(-14.25, 0, 5)),
		foot("sofa_foot_1", 0.75, v3(-10.25, 0, 5)),
		foot("sofa_foot_2", 0.5, v3(-14.25, 0, -3)),
		foot("sofa_foot_3", 0.75, v3(-10.25, 0, -3)),
	)...)
}

func rug() []Placement {
	p := textured(put("rug", "rug", mesh.Box, v3(16, 0.2, 16), rot{}, v3(-1, 0.15, 4)), "texture2", 0.75)
	p.Tint = 0.8
	return []Placement{p}
}

func drawerSet() []Placement {
	out := colored(gray(242), put("drawer_body", "drawer", mesh.Box, v3(3.5, 5, 9.5), rot{}, v3(13, 2.525, -0.5)))
	for i, y := range []float32{1.05, 4.05, 2.55} {
		front := textured(put("", "drawer", mesh.Box, v3(3.25, 1.25, 9.25), rot{}, v3(12.8, y, -0.6)), "texture9", 1)
		front.Name = "drawer_front_" + string(rune('0'+i))
		front.Color = gray(231)
		out = append(out, front)
	}
	return out
}

func shelves() []Placement {
	wood := func(name string, scale math.Vec3, r rot, pos math.Vec3) Placement {
		return put(name, "drawer", mesh.Box, scale, r, pos)
	}
	return colored(gray(242),
		wood("shelf_back", v3(3.5, 5, 0.5), rot{}, v3(13, 2.525, -9.5)),
		wood("shelf_top", v3(3.45, 0.5, 6.5), rot{}, v3(13, 4.75, -6.25)),
		wood("shelf_board_0", v3(3.45, 0.05, 6.5), rot{}, v3(13, 0.05, -6.25)),
		wood("shelf_board_1", v3(3.45, 0.05, 6.5), rot{}, v3(13, 3, -6.25)),
		wood("shelf_board_2", v3(3.45, 0.05, 6.5), rot{}, v3(13, 1.5, -6.25)),
		wood("bookcase_base", v3(2.75, 0.75, 2.5), rot{}, v3(7.5, 0.4, -8.25)),
		wood("bookcase_top", v3(2.75, 0.5, 2.5), rot{}, v3(7.5, 7.27, -8.25)),
		wood("bookcase_shelf_0", v3(2.75, 0.15, 2.5), rot{}, v3(7.5, 5.27, -8.25)),
		wood("bookcase_shelf_1", v3(2.75, 0.15, 2.5), rot{}, v3(7.5, 3, -8.25)),
		wood("bookcase_side_0", v3(0.25, 7.5, 2.5), rot{}, v3(6.25, 3.77, -8.25)),
		wood("bookcase_side_1", v3(0.25, 7.5, 2.5), rot{}, v3(9, 3.77, -8.25)),
		wood("bookcase_back", v3(0.25, 7.5, 2.5), rot{0, 90, 0}, v3(7.6, 3.77, -8.25)),
	)
}

func wallBoards() []Placement {
	right := put("wall_board_right", "drawer", mesh.Box, v3(1, 1, 24), rot{}, v3(15, 6.5, 2))
	left := right
	left.Name = "wall_board_left"
	left.Transform.Position.X = -15
	left.Tint = 0.8
	return colored(gray(242), right, left)
}

func window() []Placement {
	frame := func(name string, scale math.Vec3, pos math.Vec3) Placement {
		return put(name, "window", mesh.Box, scale, rot{}, pos)
	}
	out := colored(gray(180),
		frame("window_rail_bottom", v3(8, 0.75, 1), v3(0, 5, -10)),
		frame("window_rail_top", v3(8, 0.75, 1), v3(0, 15, -10)),
		frame("window_stile_left", v3(0.75, 10.75, 1), v3(-4, 10, -10)),
		frame("window_stile_right", v3(0.75, 10.75, 1), v3(4, 10, -10)),
		frame("window_bar_0", v3(0.35, 8.75, 0.75), v3(0.25, 10, -10)),
		frame("window_bar_1", v3(0.35, 8.75, 0.75), v3(-0.25, 10, -10)),
		frame("window_bar_2", v3(0.35, 8.75, 0.75), v3(-3.25, 10, -10)),
		frame("window_bar_3", v3(0.35, 8.75, 0.75), v3(3.25, 10, -10)),
		frame("window_cross_0", v3(3.25, 0.35, 0.75), v3(1.75, 10, -10)),
		frame("window_cross_1", v3(3.25, 0.35, 0.75), v3(-1.75, 14.25, -10)),
		frame("window_cross_2", v3(3.25, 0.35, 0.75), v3(1.75, 5.75, -10)),
		frame("window_cross_3", v3(3.25, 0.35, 0.75), v3(-1.75, 5.75, -10)),
		frame("window_cross_4", v3(3.25, 0.35, 0.75), v3(1.75, 14.25, -10)),
		frame("window_cross_5", v3(3.25, 0.35, 0.75), v3(-1.75, 10, -10)),
	)
	glass := put("window_glass", "window_glass", mesh.Plane, v3(4, 1, 4.75), rot{90, 0, 0}, v3(0, 10, -9.9))
	glass.Color = rgba(135, 206, 235, 1)
	return Unlit(append(out, glass)...)
}

func spaceHeater() []Placement {
	return colored(gray(30),
		put("heater_body", "space_heater", mesh.Box, v3(2, 4, 1.5), rot{}, v3(13.75, 2.01, 6.1)),
		put("heater_glow", "glowing_orange", mesh.Box, v3(0.25, 2, 0.25), rot{}, v3(13.75, 1.5, 6.8)),
	)
}

func floorLamps() []Placement {
	metal := rgba(160, 161, 161, 1)
	pole := func(name string, scale math.Vec3, r rot, pos math.Vec3) Placement {
		return put(name, "lamp", mesh.Cylinder, scale, r, pos)
	}
	out := colored(metal,
		pole("lamp_0_pole", v3(0.1, 8, 0.1), rot{}, v3(10, 0, -7)),
		pole("lamp_0_base", v3(0.9, 0.1, 0.9), rot{}, v3(10, 0, -7)),
		pole("lamp_0_arm_0", v3(0.1, 1, 0.1), rot{45, 90, 0}, v3(10, 8, -7)),
		pole("lamp_0_arm_1", v3(0.1, 1, 0.1), rot{45, -90, 0}, v3(10, 8, -7)),
	)
	out = append(out, colored(rgba(255, 200, 124, 0.6),
		put("lamp_0_shade", "lamp_light", mesh.TaperedCylinder, v3(1.5, 1.5, 1.5), rot{}, v3(10, 8.5, -7)))...)
	out = append(out, colored(metal,
		pole("lamp_1_pole", v3(0.1, 7, 0.1), rot{}, v3(-12, 0, -7)),
		pole("lamp_1_base", v3(0.9, 0.1, 0.9), rot{}, v3(-12, 0, -7)),
	)...)
	return append(out, colored(rgba(255, 165, 0, 0.98),
		put("lamp_1_shade", "lamp_light", mesh.TaperedCylinder, v3(1.5, 2.5, 1.5), rot{}, v3(-12, 6, -7)))...)
}

func desk() []Placement {
	leg := func(name string, r rot, pos math.Vec3) Placement {
		return put(name, "drawer", mesh.Cylinder, v3(0.1, 4, 0.1), r, pos)
	}
	return colored(gray(242),
		leg("desk_leg_0", rot{-10, 0, -10}, v3(-8, 0, -6)),
		leg("desk_leg_1", rot{10, 0, -10}, v3(-8, 0, -8)),
		leg("desk_leg_2", rot{-10, 0, 10}, v3(2, 0, -6)),
		leg("desk_leg_3", rot{10, 0, 10}, v3(2, 0, -8)),
		put("desk_top", "drawer", mesh.Box, v3(14, 0.4, 4), rot{}, v3(-2, 4, -7.9)),
	)
}

// screenFace is a textured front panel sampled from the centre of its image.
func screenFace(p Placement, tex string) Placement {
	p = textured(p, tex, 1)
	p.UVOffset = math.V2(0.5, 0.5)
	return p
}

func pcTower() []Placement {
	black := rgba(0, 0, 0, 1)
	return Unlit(colored(black,
		put("pc_case", "drawer", mesh.Box, v3(2, 3.5, 3.5), rot{}, v3(4, 1.8, -7.9)),
		screenFace(put("pc_front", "drawer", mesh.Box, v3(1.9, 3.4, 3.5), rot{}, v3(4, 1.8, -7.8)), "texture6"),
	)...)
}

func painting() []Placement {
	bar := func(name string, scale, pos math.Vec3) Placement {
		return put(name, "frame_material", mesh.Box, scale, rot{}, pos)
	}
	out := colored(gray(60),
		bar("painting_frame_bottom", v3(3.7, 0.2, 0.2), v3(-8, 5.5, -9.8)),
		bar("painting_frame_top", v3(3.7, 0.2, 0.2), v3(-8, 11.1, -9.8)),
		bar("painting_frame_left", v3(0.2, 5.7, 0.2), v3(-9.75, 8.3, -9.8)),
		bar("painting_frame_right", v3(0.2, 5.7, 0.2), v3(-6.25, 8.3, -9.8)),
	)
	out = append(out, colored(gray(255),
		screenFace(put("painting_canvas", "canvas_material", mesh.Box, v3(3.5, 5.5, 0.1), rot{}, v3(-8, 8.3, -9.85)), "texture5"))...)
	return Unlit(out...)
}

func monitor() []Placement {
	out := colored(rgba(0, 0, 0, 1),
		put("monitor_bezel", "default", mesh.Box, v3(9.5, 3.75, 0.2), rot{}, v3(-0.5, 7.3, -8.85)),
		screenFace(put("monitor_screen", "default", mesh.Box, v3(9.45, 3.72, 0.1), rot{}, v3(-0.5, 7.3, -8.78)), "texture8"),
	)
	out = append(out, colored(gray(30),
		put("monitor_stand", "default", mesh.Box, v3(1, 2, 0.2), rot{}, v3(-0.5, 5.3, -9.45)),
		put("keyboard_tray", "default", mesh.Box, v3(6, 0.25, 2), rot{10, 0, 0}, v3(-0.5, 4.3, -7.45)),
	)...)
	return Unlit(out...)
}

func keyboard() []Placement {
	keys := textured(put("keyboard_keys", "default", mesh.Box, v3(3.9, 0.25, 1.7), rot{10, 0, 0}, v3(-0.5, 4.51, -7.45)), "texture7", 1)
	return Unlit(colored(gray(50),
		put("keyboard_body", "default", mesh.Box, v3(4, 0.25, 1.8), rot{10, 0, 0}, v3(-0.5, 4.5, -7.45)),
		keys,
	)...)
}

var (
	potColor  = gray(200)
	leafColor = rgba(0, 140, 30, 1)
)

func plants() []Placement {
	var out []Placement

	// Small pot with three round leaves.
	out = append(out, colored(potColor, put("plant_0_pot", "pot_material", mesh.Cylinder, v3(0.5, 0.75, 0.5), rot{}, v3(12, 5, -7)))...)
	out = append(out, colored(leafColor,
		put("plant_0_stem", "stem_material", mesh.Cylinder, v3(0.1, 1, 0.1), rot{}, v3(12, 5.25, -7)),
		put("plant_0_leaf_0", "leaf_material", mesh.Sphere, math.Splat(0.3), rot{}, v3(11.7, 6.25, -7)),
		put("plant_0_leaf_1", "leaf_material", mesh.Sphere, math.Splat(0.3), rot{}, v3(12.3, 6.25, -7)),
		put("plant_0_leaf_2", "leaf_material", mesh.Sphere, math.Splat(0.3), rot{}, v3(12, 6.75, -7)),
	)...)

	// Two pots with a ring of ten blade leaves.
	for i, stem := range []math.Vec3{v3(13, 5, -5), v3(12.4, 5, -3)} {
		name := "plant_" + string(rune('1'+i))
		out = append(out, colored(potColor, put(name+"_pot", "pot_material", mesh.Cylinder, v3(0.5, 0.75, 0.5), rot{}, stem))...)
		out = append(out, colored(leafColor, put(name+"_stem", "stem_material", mesh.Cylinder, v3(0.05, 2, 0.05), rot{}, stem))...)
		leaf := put("", "leaf_material", mesh.Cylinder, v3(0.05, 0.5, 0.05), rot{}, math.Vec3{})
		leaf.Color = leafColor
		out = append(out, Named(name+"_leaf", RadialCluster(leaf, Radial{
			Pivot:  stem,
			Radius: 0.3,
			Count:  10,
			Lift:   func(_ int, rad float32) float32 { return 1.2 + 0.4*math32.Sin(rad) },
			Orient: func(rad float32) (float32, float32, float32) {
				return 45 * math32.Sin(rad), math.Degrees(rad), 0
			},
		}))...)
	}

	// Tall pot, upside-down tapered cylinder.
	out = append(out, colored(potColor, put("plant_3_pot", "pot_material", mesh.TaperedCylinder, v3(1, 3.5, 1), rot{180, 0, 0}, v3(-13, 3.55, -5)))...)

	// Grass tufts in the first blade-leaf pot.
	for s, off := range [][2]float32{{0, 0}, {0.15, 0.15}, {-0.15, -0.15}} {
		base := v3(13+off[0], 6, -5+off[1])
		name := "grass_" + string(rune('0'+s))
		out = append(out, colored(leafColor, put(name+"_stem", "stem_material", mesh.Cylinder, v3(0.1, 2, 0.1), rot{}, base))...)
		out = append(out, Named(name+"_leaf", tuft(base, 0.3, 0.2, v3(0.05, 0.5, 0.1), 0))...)
	}

	// Spiral plant in the tall pot: each stem leans further and its leaf
	// ring is rotated by 60 degrees.
	spiral := [][2]float32{{0, 0}, {0.15, 0.15}, {-0.15, -0.15}, {0.15, -0.15}, {-0.15, 0.15}, {0.2, 0}}
	for s, off := range spiral {
		lean := float32(s) * -10
		name := "spiral_" + string(rune('0'+s))
		out = append(out, colored(leafColor, put(name+"_stem", "stem_material", mesh.Cylinder, v3(0.15, 3, 0.15), rot{lean, lean, 0}, v3(-13+off[0], 3.25, -5+off[1])))...)
		base := v3(-13+off[0], 4.25, -5+off[1])
		out = append(out, Named(name+"_leaf", tuft(base, 0.5, 0.4, v3(0.1, 0.8, 0.2), float32(s)*60))...)
	}
	return out
}

// tuft is a ring of twenty box leaves stacked in two turns of ten.
func tuft(base math.Vec3, radius, rise float32, scale math.Vec3, phase float32) []Placement {
	leaf := put("", "leaf_material", mesh.Box, scale, rot{}, math.Vec3{})
	leaf.Color = leafColor
	return RadialCluster(leaf, Radial{
		Pivot:    base,
		Radius:   radius,
		Count:    20,
		StepDeg:  18,
		PhaseDeg: phase,
		Lift:     func(i int, _ float32) float32 { return float32(i%10) * rise },
		Orient:   func(rad float32) (float32, float32, float32) { return 0, math.Degrees(rad), 45 },
	})
}

func chair() []Placement {
	seat := rot{10, -35, 0}
	tilted := rot{100, -35, 0}
	c := func(name string, k mesh.Kind, scale math.Vec3, r rot, pos math.Vec3) Placement {
		return put(name, "default", k, scale, r, pos)
	}
	return colored(gray(30),
		c("chair_back_ring", mesh.Torus, v3(1.9, 0.75, 0.75), seat, v3(-2, 6, -3)),
		c("chair_head_ring", mesh.Torus, v3(1.25, 0.65, 0.75), seat, v3(-2, 7, -3)),
		c("chair_head_pad", mesh.Cylinder, v3(1.25, 0.15, 0.55), tilted, v3(-2, 7, -3)),
		c("chair_back_pad", mesh.Box, v3(1.25, 0.65, 0.15), seat, v3(-2, 6, -3)),
		c("chair_lumbar", mesh.Box, v3(2.75, 0.5, 0.05), seat, v3(-2, 5.5, -3)),
		c("chair_wing_left", mesh.Box, v3(1.5, 0.55, 0.05), rot{-15, -35, 45}, v3(-3.1, 6.1, -3.8)),
		c("chair_wing_right", mesh.Box, v3(1.5, 0.55, 0.05), rot{25, -15, -45}, v3(-1, 6.1, -2.4)),
		c("chair_seat_ring", mesh.Torus, v3(1.95, 0.95, 0.75), seat, v3(-2, 4.2, -3.2)),
		c("chair_seat_pad", mesh.Cylinder, v3(1.75, 0.15, 0.75), rot{90, -35, 0}, v3(-2, 4.2, -3.3)),
		c("chair_seat_plate", mesh.Box, v3(2.55, 0.15, 0.75), tilted, v3(-2, 3.2, -3.35)),
		c("chair_seat_shell", mesh.Box, v3(2.55, 2.3, 0.75), tilted, v3(-1.35, 2.8, -4.25)),
		c("chair_lever", mesh.Box, v3(0.25, 0.15, 1), tilted, v3(-0.65, 3.4, -3.25)),
		c("chair_lever_knob", mesh.Cylinder, v3(0.1, 0.65, 0.1), tilted, v3(-0.25, 3.9, -3.75)),
		c("chair_column", mesh.Cylinder, v3(0.2, 2, 0.2), rot{}, v3(-1.5, 1, -3.75)),
		c("chair_foot_x", mesh.Cylinder, v3(0.1, 3.65, 0.1), rot{0, 0, 90}, v3(0.5, 1, -3.75)),
		c("chair_foot_z", mesh.Cylinder, v3(0.1, 3.65, 0.1), rot{90, 0, 0}, v3(-1.5, 1, -5.65)),
		c("chair_wheel_0", mesh.Sphere, math.Splat(0.4), rot{}, v3(-1.45, 0.4, -5.65)),
		c("chair_wheel_1", mesh.Sphere, math.Splat(0.4), rot{}, v3(-3.15, 0.7, -3.65)),
		c("chair_wheel_2", mesh.Sphere, math.Splat(0.4), rot{}, v3(-1.45, 0.7, -1.85)),
		c("chair_wheel_3", mesh.Sphere, math.Splat(0.4), rot{}, v3(0.6, 0.7, -3.65)),
	)
}
