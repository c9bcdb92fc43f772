package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/pkg/math"
)

// Frustum is an orthographic light volume.
type Frustum struct {
	Left, Right, Bottom, Top, Near, Far float32
}

// DefaultFrustum covers the attic from the window spotlight.
var DefaultFrustum = Frustum{Left: -10, Right: 10, Bottom: -10, Top: 10, Near: 1, Far: 50}

// LightSpaceMatrix returns the light view-projection for a light at lightPos
// aimed at the origin: Ortho(-10,10,-10,10,1,50) · LookAt(lightPos, 0, +Y).
func LightSpaceMatrix(lightPos math.Vec3) math.Mat4 {
	return LightSpaceMatrixFor(lightPos, math.Vec3{}, DefaultFrustum)
}

// LightSpaceMatrixFor returns the light view-projection looking from lightPos
// at target through the given frustum.
func LightSpaceMatrixFor(lightPos, target math.Vec3, f Frustum) math.Mat4 {
	up := math.V3(0, 1, 0)
	// A light straight above or below the target needs another up vector.
	if dir := target.Sub(lightPos).Normalize(); math32.Abs(dir.Y) > 0.99 {
		up = math.V3(0, 0, 1)
	}
	view := math.LookAt(lightPos, target, up)
	proj := math.Ortho(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
	return proj.Mul(view)
}
