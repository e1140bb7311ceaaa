// Package shadertest provides an in-memory shader.Uniforms for tests.
package shadertest

import (
	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Call is one recorded uniform write.
type Call struct {
	Name  string
	Value any
}

// Recorder records uniform writes in order and keeps the latest value per name,
// the same sticky behavior a GL program has.
//
// Values are stored as math.Mat4, [2]float32, [3]float32, [4]float32,
// float32, int32 or bool depending on the setter used.
type Recorder struct {
	Calls  []Call
	values map[string]any
}

var _ shader.Uniforms = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{values: make(map[string]any)}
}

func (r *Recorder) set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.Calls = append(r.Calls, Call{Name: name, Value: v})
	r.values[name] = v
}

// SetMat4 records a matrix write.
func (r *Recorder) SetMat4(name string, m math.Mat4) { r.set(name, m) }

// SetVec2 records a vec2 write.
func (r *Recorder) SetVec2(name string, x, y float32) { r.set(name, [2]float32{x, y}) }

// SetVec3 records a vec3 write.
func (r *Recorder) SetVec3(name string, x, y, z float32) { r.set(name, [3]float32{x, y, z}) }

// SetVec4 records a vec4 write.
func (r *Recorder) SetVec4(name string, x, y, z, w float32) { r.set(name, [4]float32{x, y, z, w}) }

// SetFloat records a float write.
func (r *Recorder) SetFloat(name string, v float32) { r.set(name, v) }

// SetInt records an int write.
func (r *Recorder) SetInt(name string, v int32) { r.set(name, v) }

// SetBool records a bool write.
func (r *Recorder) SetBool(name string, v bool) { r.set(name, v) }

// SetSampler2D records a sampler write as an int32 unit.
func (r *Recorder) SetSampler2D(name string, unit int32) { r.set(name, unit) }

// Value returns the latest value written to name.
func (r *Recorder) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
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

// Names returns the uniform names in write order, with repeats.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets all calls and values.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.values = make(map[string]any)
}
