// Package shaders provides the embedded GLSL sources for the scene program.
package shaders

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// File names of the scene program stages, relative to the shader directory.
const (
	SceneVertexFile   = "scene.vert"
	SceneFragmentFile = "scene.frag"
)

// SceneVertexShader is the vertex stage shared by the depth and color passes.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader is the Phong + shadow-map fragment stage.
//
//go:embed scene.frag
var SceneFragmentShader string

// LoadScene reads both scene stages from dir. It is used by the dev-mode
// hot reload; release builds use the embedded copies.
func LoadScene(dir string) (vertex, fragment string, err error) {
	v, err := os.ReadFile(filepath.Join(dir, SceneVertexFile))
	if err != nil {
		return "", "", fmt.Errorf("read vertex shader: %w", err)
	}
	f, err := os.ReadFile(filepath.Join(dir, SceneFragmentFile))
	if err != nil {
		return "", "", fmt.Errorf("read fragment shader: %w", err)
	}
	return string(v), string(f), nil
}
