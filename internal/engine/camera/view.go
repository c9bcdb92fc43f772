package camera

import (
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Input is one frame of camera-relevant input.
type Input struct {
	Held [Down + 1]bool // indexed by Movement

	// Mouse offset in pixels, dy positive upward.
	LookX, LookY float32
	Scroll       float32

	Perspective bool
	Ortho       bool
	Cycle       bool
}

// Update applies one frame of input. Mode switches run first so movement
// applies from the new viewpoint.
func Update(s *CameraState, in Input, dt float32) {
	if in.Perspective {
		s.Perspective()
	}
	if in.Ortho {
		s.Ortho()
	}
	if in.Cycle {
		s.CycleOrtho()
	}
	if in.LookX != 0 || in.LookY != 0 {
		s.Look(in.LookX, in.LookY)
	}
	if in.Scroll != 0 {
		s.Scroll(in.Scroll)
	}
	for m, held := range in.Held {
		if held {
			s.Move(Movement(m), dt)
		}
	}
}

// View returns the look-at matrix for the camera.
func (s *CameraState) View() math.Mat4 {
	return math.LookAt(s.Position, s.Position.Add(s.Front), s.Up)
}

// Projection returns the perspective or orthographic projection.
func (s *CameraState) Projection(aspect float32) math.Mat4 {
	if s.Orthographic {
		o := s.OrthoSize
		return math.Ortho(-o, o, -o, o, s.Near, s.Far)
	}
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(s.Zoom), aspect, s.Near, s.Far)
}

// Apply pushes view, projection and viewPosition.
func Apply(u shader.Uniforms, s *CameraState, aspect float32) {
	u.SetMat4(shader.UniformView, s.View())
	u.SetMat4(shader.UniformProjection, s.Projection(aspect))
	u.SetVec3(shader.UniformViewPosition, s.Position)
}
