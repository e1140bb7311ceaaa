// Package draw submits per-object shader state ahead of each draw call.
package draw

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/material"
	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Uniform names the scene shader exposes for per-object state.
const (
	UniformModel            = "model"
	UniformObjectColor      = "objectColor"
	UniformObjectTexture    = "objectTexture"
	UniformUseTexture       = "bUseTexture"
	UniformUVScale          = "UVscale"
	UniformMaterialDiffuse  = "material.diffuseColor"
	UniformMaterialSpecular = "material.specularColor"
	UniformMaterialShine    = "material.shininess"
)

// Submitter writes transforms, colors, texture bindings and materials to a
// shader program. State written through the Set methods is sticky: it stays
// on the program until overwritten, so a skipped call reuses the previous
// object's value. Apply writes a complete Binding instead.
//
// A nil Uniforms turns every submission into a no-op.
type Submitter struct {
	uniforms  shader.Uniforms
	textures  *texture.Registry
	materials *material.Registry

	reported map[string]bool
}

// NewSubmitter creates a submitter resolving tags through the given registries.
func NewSubmitter(u shader.Uniforms, textures *texture.Registry, materials *material.Registry) *Submitter {
	return &Submitter{
		uniforms:  u,
		textures:  textures,
		materials: materials,
		reported:  make(map[string]bool),
	}
}

// SetTransform submits the model matrix T * Rz * Ry * Rx * S built from a
// scale, rotations in degrees (X applied first) and a position.
func (s *Submitter) SetTransform(scale math.Vec3, rotX, rotY, rotZ float32, position math.Vec3) {
	if s.uniforms == nil {
		return
	}
	s.uniforms.SetMat4(UniformModel, math.Model(scale, rotX, rotY, rotZ, position))
}

// SetColor switches the object to flat color mode.
func (s *Submitter) SetColor(r, g, b, a float32) {
	if s.uniforms == nil {
		return
	}
	s.uniforms.SetBool(UniformUseTexture, false)
	s.uniforms.SetVec4(UniformObjectColor, r, g, b, a)
}

// SetTexture switches the object to texture mode and points the sampler at
// the unit holding tag. An unknown tag submits texture.NotFound and reports
// false.
func (s *Submitter) SetTexture(tag string) bool {
	slot, ok := texture.NotFound, false
	if s.textures != nil {
		slot, ok = s.textures.SlotOf(tag)
	}
	if !ok {
		s.reportOnce("texture", tag)
	}

	if s.uniforms == nil {
		return ok
	}
	s.uniforms.SetBool(UniformUseTexture, true)
	s.uniforms.SetSampler2D(UniformObjectTexture, int32(slot))
	return ok
}

// SetUVScale submits the texture coordinate scale.
func (s *Submitter) SetUVScale(u, v float32) {
	if s.uniforms == nil {
		return
	}
	s.uniforms.SetVec2(UniformUVScale, u, v)
}

// SetMaterial submits the material defined under tag. Unknown tags submit
// nothing and report false.
func (s *Submitter) SetMaterial(tag string) bool {
	var m material.Material
	ok := false
	if s.materials != nil {
		m, ok = s.materials.Find(tag)
	}
	if !ok {
		s.reportOnce("material", tag)
		return false
	}
	s.submitMaterial(m)
	return true
}

func (s *Submitter) submitMaterial(m material.Material) {
	if s.uniforms == nil {
		return
	}
	s.uniforms.SetVec3(UniformMaterialDiffuse, m.DiffuseColor[0], m.DiffuseColor[1], m.DiffuseColor[2])
	s.uniforms.SetVec3(UniformMaterialSpecular, m.SpecularColor[0], m.SpecularColor[1], m.SpecularColor[2])
	s.uniforms.SetFloat(UniformMaterialShine, m.Shininess)
}

// Apply submits every per-object uniform from b, so nothing carries over
// from the previous draw. Unresolved tags are returned as errors after the
// fallback state (NotFound sampler, neutral material) has been submitted.
func (s *Submitter) Apply(b Binding) error {
	var err error

	if b.Texture != "" {
		if !s.SetTexture(b.Texture) {
			err = multierr.Append(err, fmt.Errorf("unknown texture %q", b.Texture))
		}
	} else {
		s.SetColor(b.Color[0], b.Color[1], b.Color[2], b.Color[3])
	}

	uv := b.UVScale
	if uv == ([2]float32{}) {
		uv = [2]float32{1, 1}
	}
	s.SetUVScale(uv[0], uv[1])

	switch {
	case b.Material == "":
		s.submitMaterial(material.Neutral)
	case !s.SetMaterial(b.Material):
		s.submitMaterial(material.Neutral)
		err = multierr.Append(err, fmt.Errorf("unknown material %q", b.Material))
	}

	return err
}

func (s *Submitter) reportOnce(kind, tag string) {
	key := kind + ":" + tag
	if s.reported[key] {
		return
	}
	s.reported[key] = true
	logger.Debug("unresolved tag", zap.String("kind", kind), zap.String("tag", tag))
}
