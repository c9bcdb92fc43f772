package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/attic3d/internal/engine/camera"
)

// Key bindings.
const (
	keyQuit        = sdl.SCANCODE_ESCAPE
	keyScreenshot  = sdl.SCANCODE_F12
	keyPerspective = sdl.SCANCODE_P
	keyOrtho       = sdl.SCANCODE_O
	keyCycleOrtho  = sdl.SCANCODE_L
)

var moveKeys = [...]struct {
	key sdl.Scancode
	dir camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_Q, camera.Up},
	{sdl.SCANCODE_E, camera.Down},
}

// keyState is the part of input.Input the camera mapping reads.
type keyState interface {
	IsKeyHeld(sdl.Scancode) bool
	IsKeyPressed(sdl.Scancode) bool
	MouseDelta() (dx, dy float32)
	Wheel() float32
}

// cameraInput maps this frame's keyboard and mouse state onto the camera.
func cameraInput(k keyState, mouseLook bool) camera.Input {
	var in camera.Input
	for _, m := range moveKeys {
		in.Held[m.dir] = k.IsKeyHeld(m.key)
	}
	if mouseLook {
		in.LookX, in.LookY = k.MouseDelta()
	}
	in.Scroll = k.Wheel()
	in.Perspective = k.IsKeyPressed(keyPerspective)
	in.Ortho = k.IsKeyPressed(keyOrtho)
	in.Cycle = k.IsKeyPressed(keyCycleOrtho)
	return in
}
