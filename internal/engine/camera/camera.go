// Package camera provides the free-fly camera and its orthographic views.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/pkg/math"
)

// OrthoView is one of the fixed orthographic viewpoints.
type OrthoView int

const (
	TopDown OrthoView = iota
	Side
	Front
)

func (v OrthoView) String() string {
	switch v {
	case TopDown:
		return "top"
	case Side:
		return "side"
	case Front:
		return "front"
	}
	return "unknown"
}

// next returns the view L switches to.
func (v OrthoView) next() OrthoView {
	return (v + 1) % 3
}

// Movement is a keyboard movement direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Limits and defaults.
const (
	MinSpeed           = 1
	MaxPitch           = 89
	SpeedStep          = 1
	DefaultZoom        = 80
	DefaultSpeed       = 20
	DefaultNear        = 0.1
	DefaultFar         = 100
	DefaultOrtho       = 10
	DefaultSensitivity = 0.1
)

var worldUp = math.V3(0, 1, 0)

// CameraState is everything the view controller owns.
type CameraState struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3

	Yaw   float32 // degrees
	Pitch float32 // degrees
	Zoom  float32 // vertical field of view, degrees
	Speed float32 // world units per second

	Sensitivity float32 // degrees per pixel
	Near, Far   float32
	OrthoSize   float32

	Orthographic bool
	OrthoView    OrthoView
}

// Default returns the camera the viewer starts with: slightly above the
// floor, in front of the room, looking in and down.
func Default() *CameraState {
	s := &CameraState{
		Zoom:        DefaultZoom,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Near:        DefaultNear,
		Far:         DefaultFar,
		OrthoSize:   DefaultOrtho,
	}
	s.SetView(math.V3(0, 5, 12), math.V3(0, -0.5, -2))
	return s
}

// SetView places the camera and points it along front. Yaw and pitch are
// derived from front so mouse look continues from the new direction.
func (s *CameraState) SetView(pos, front math.Vec3) {
	s.Position = pos
	s.Front = front.Normalize()
	s.Pitch = math.Degrees(math32.Asin(math.Clamp(s.Front.Y, -1, 1)))
	s.Yaw = math.Degrees(math32.Atan2(s.Front.Z, s.Front.X))
	s.updateBasis()
}

// updateBasis recomputes Right and Up from Front. Looking straight up or
// down falls back to +X as right, which makes -Z the screen's up.
func (s *CameraState) updateBasis() {
	right := s.Front.Cross(worldUp)
	if right.Length() < 1e-6 {
		right = math.V3(1, 0, 0)
	}
	s.Right = right.Normalize()
	s.Up = s.Right.Cross(s.Front).Normalize()
}

// Look turns the camera by a mouse offset in pixels. dy is positive when
// the mouse moves up. Pitch is clamped to ±89°.
func (s *CameraState) Look(dx, dy float32) {
	s.Yaw += dx * s.Sensitivity
	s.Pitch = math.Clamp(s.Pitch+dy*s.Sensitivity, -MaxPitch, MaxPitch)

	yaw, pitch := math.Radians(s.Yaw), math.Radians(s.Pitch)
	s.Front = math.V3(
		math32.Cos(yaw)*math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw)*math32.Cos(pitch),
	).Normalize()
	s.updateBasis()
}

// Move translates the camera for dt seconds at the current speed.
func (s *CameraState) Move(m Movement, dt float32) {
	v := s.Speed * dt
	switch m {
	case Forward:
		s.Position = s.Position.Add(s.Front.Scale(v))
	case Backward:
		s.Position = s.Position.Sub(s.Front.Scale(v))
	case Left:
		s.Position = s.Position.Sub(s.Right.Scale(v))
	case Right:
		s.Position = s.Position.Add(s.Right.Scale(v))
	case Up:
		s.Position = s.Position.Add(s.Up.Scale(v))
	case Down:
		s.Position = s.Position.Sub(s.Up.Scale(v))
	}
}

// Scroll changes the movement speed by the wheel delta, never below MinSpeed.
func (s *CameraState) Scroll(dy float32) {
	s.Speed += dy * SpeedStep
	if s.Speed < MinSpeed {
		s.Speed = MinSpeed
	}
}

// Perspective switches to the perspective projection and resets the camera.
func (s *CameraState) Perspective() {
	s.Orthographic = false
	s.SetView(math.V3(0.5, 5.5, 10), math.V3(0, 0, -1))
}

// Ortho switches to the orthographic projection, starting top-down.
func (s *CameraState) Ortho() {
	s.Orthographic = true
	s.setOrthoView(TopDown)
}

// CycleOrtho moves to the next orthographic view: top, side, front, top.
// It does nothing in perspective mode and reports whether it switched.
func (s *CameraState) CycleOrtho() bool {
	if !s.Orthographic {
		return false
	}
	s.setOrthoView(s.OrthoView.next())
	return true
}

func (s *CameraState) setOrthoView(v OrthoView) {
	s.OrthoView = v
	switch v {
	case TopDown:
		s.SetView(math.V3(0, 20, 0), math.V3(0, -1, 0))
	case Side:
		s.SetView(math.V3(20, 5, 0), math.V3(-1, 0, 0))
	case Front:
		s.SetView(math.V3(0, 5, 20), math.V3(0, 0, -1))
	}
}
