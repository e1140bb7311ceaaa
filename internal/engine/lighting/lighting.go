// Package lighting configures the scene shader's light sources.
package lighting

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/pkg/math"
)

// MaxPointLights is the number of point lights the scene shader supports.
const MaxPointLights = shader.MaxPointLights

// UniformUseLighting switches the shader between lit and unlit output.
const UniformUseLighting = "bUseLighting"

// Attenuation is the constant/linear/quadratic distance falloff. All zero
// means no falloff.
type Attenuation struct {
	Constant  float32 `yaml:"constant"`
	Linear    float32 `yaml:"linear"`
	Quadratic float32 `yaml:"quadratic"`
}

// DirectionalLight lights every fragment from one direction, like sunlight.
type DirectionalLight struct {
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Active    bool       `yaml:"active"`
}

// PointLight radiates from a position in every direction.
type PointLight struct {
	Position    [3]float32 `yaml:"position"`
	Ambient     [3]float32 `yaml:"ambient"`
	Diffuse     [3]float32 `yaml:"diffuse"`
	Specular    [3]float32 `yaml:"specular"`
	Attenuation `yaml:",inline"`
	Active      bool `yaml:"active"`
}

// SpotLight is a cone of light. CutOff and OuterCutOff are half-angles in
// degrees; intensity fades between them. A FollowCamera spot is re-aimed
// from the eye every frame, like a flashlight.
type SpotLight struct {
	Position     [3]float32 `yaml:"position"`
	Direction    [3]float32 `yaml:"direction"`
	Ambient      [3]float32 `yaml:"ambient"`
	Diffuse      [3]float32 `yaml:"diffuse"`
	Specular     [3]float32 `yaml:"specular"`
	Attenuation  `yaml:",inline"`
	CutOff       float32 `yaml:"cutoff"`
	OuterCutOff  float32 `yaml:"outer_cutoff"`
	FollowCamera bool    `yaml:"follow_camera"`
	Active       bool    `yaml:"active"`
}

// Setup is the complete, fixed light configuration of a scene.
type Setup struct {
	Enabled     bool             `yaml:"enabled"`
	Directional DirectionalLight `yaml:"directional"`
	Points      []PointLight     `yaml:"points"`
	Spot        SpotLight        `yaml:"spot"`
}

// Validate checks the setup fits the shader.
func (s Setup) Validate() error {
	if len(s.Points) > MaxPointLights {
		return fmt.Errorf("%d point lights, shader supports %d", len(s.Points), MaxPointLights)
	}
	if s.Spot.Active && s.Spot.OuterCutOff < s.Spot.CutOff {
		return fmt.Errorf("spot outer cutoff %.1f is inside cutoff %.1f", s.Spot.OuterCutOff, s.Spot.CutOff)
	}
	return nil
}

// Apply writes the whole configuration to u. Point light slots past
// len(Points) are written inactive, so applying twice, or after a different
// setup, always leaves the same state.
func (s Setup) Apply(u shader.Uniforms) {
	if u == nil {
		return
	}

	u.SetBool(UniformUseLighting, s.Enabled)

	d := s.Directional
	setVec3(u, "directionalLight.direction", d.Direction)
	setVec3(u, "directionalLight.ambient", d.Ambient)
	setVec3(u, "directionalLight.diffuse", d.Diffuse)
	setVec3(u, "directionalLight.specular", d.Specular)
	u.SetBool("directionalLight.bActive", d.Active)

	for i := 0; i < MaxPointLights; i++ {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		if i >= len(s.Points) {
			u.SetBool(prefix+"bActive", false)
			continue
		}
		p := s.Points[i]
		setVec3(u, prefix+"position", p.Position)
		setVec3(u, prefix+"ambient", p.Ambient)
		setVec3(u, prefix+"diffuse", p.Diffuse)
		setVec3(u, prefix+"specular", p.Specular)
		setAttenuation(u, prefix, p.Attenuation)
		u.SetBool(prefix+"bActive", p.Active)
	}

	sp := s.Spot
	setVec3(u, "spotLight.position", sp.Position)
	setVec3(u, "spotLight.direction", sp.Direction)
	setVec3(u, "spotLight.ambient", sp.Ambient)
	setVec3(u, "spotLight.diffuse", sp.Diffuse)
	setVec3(u, "spotLight.specular", sp.Specular)
	setAttenuation(u, "spotLight.", sp.Attenuation)
	u.SetFloat("spotLight.cutOff", CosDegrees(sp.CutOff))
	u.SetFloat("spotLight.outerCutOff", CosDegrees(sp.OuterCutOff))
	u.SetBool("spotLight.bActive", sp.Active)
}

// AimSpot moves a camera-following spot to eye, pointing along forward.
// It reports whether anything was written.
func (s Setup) AimSpot(u shader.Uniforms, eye, forward math.Vec3) bool {
	if u == nil || !s.Spot.FollowCamera {
		return false
	}
	u.SetVec3("spotLight.position", eye.X, eye.Y, eye.Z)
	u.SetVec3("spotLight.direction", forward.X, forward.Y, forward.Z)
	return true
}

// CosDegrees returns the cosine of an angle in degrees, the form the shader
// compares cone angles in.
func CosDegrees(deg float32) float32 {
	return float32(gomath.Cos(float64(math.Radians(deg))))
}

func setVec3(u shader.Uniforms, name string, v [3]float32) {
	u.SetVec3(name, v[0], v[1], v[2])
}

func setAttenuation(u shader.Uniforms, prefix string, a Attenuation) {
	u.SetFloat(prefix+"constant", a.Constant)
	u.SetFloat(prefix+"linear", a.Linear)
	u.SetFloat(prefix+"quadratic", a.Quadratic)
}
