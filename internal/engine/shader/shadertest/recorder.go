// Package shadertest provides an in-memory shader.Uniforms for tests and
// headless tools.
package shadertest

import (
	"sort"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Call is one recorded uniform write.
type Call struct {
	Name  string
	Value any
}

// Recorder records every uniform write and keeps the latest value per name.
// The zero value is ready to use.
type Recorder struct {
	Calls []Call

	values   map[string]any
	useCount int
}

var _ shader.Uniforms = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.values[name] = v
	r.Calls = append(r.Calls, Call{Name: name, Value: v})
}

func (r *Recorder) Use() { r.useCount++ }

func (r *Recorder) SetBool(name string, v bool)        { r.set(name, v) }
func (r *Recorder) SetInt(name string, v int32)        { r.set(name, v) }
func (r *Recorder) SetFloat(name string, v float32)    { r.set(name, v) }
func (r *Recorder) SetVec2(name string, v math.Vec2)   { r.set(name, v) }
func (r *Recorder) SetVec3(name string, v math.Vec3)   { r.set(name, v) }
func (r *Recorder) SetVec4(name string, v math.Vec4)   { r.set(name, v) }
func (r *Recorder) SetMat4(name string, m math.Mat4)   { r.set(name, m) }
func (r *Recorder) SetSampler(name string, unit int32) { r.set(name, unit) }

// UseCount reports how many times Use was called.
func (r *Recorder) UseCount() int { return r.useCount }

// Has reports whether name was ever written.
func (r *Recorder) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Value returns the latest value written to name.
func (r *Recorder) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Recorder) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

func (r *Recorder) Int(name string) int32 {
	v, _ := r.values[name].(int32)
	return v
}

func (r *Recorder) Float(name string) float32 {
	v, _ := r.values[name].(float32)
	return v
}

func (r *Recorder) Vec2(name string) math.Vec2 {
	v, _ := r.values[name].(math.Vec2)
	return v
}

func (r *Recorder) Vec3(name string) math.Vec3 {
	v, _ := r.values[name].(math.Vec3)
	return v
}

func (r *Recorder) Vec4(name string) math.Vec4 {
	v, _ := r.values[name].(math.Vec4)
	return v
}

func (r *Recorder) Mat4(name string) math.Mat4 {
	v, _ := r.values[name].(math.Mat4)
	return v
}

// Count returns how many times name was written.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the sorted set of names written so far.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reset forgets all recorded writes.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.values = nil
	r.useCount = 0
}
