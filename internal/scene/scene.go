package scene

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/draw"
	"github.com/Faultbox/stilllife/internal/engine/material"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/internal/logger"
)

// Meshes uploads and draws primitives. *mesh.Library is the GL
// implementation.
type Meshes interface {
	Load(kind mesh.Kind) error
	Draw(kind mesh.Kind, caps mesh.Caps)
	Release()
}

// Scene owns the registries for one script and renders it.
type Scene struct {
	script    *Script
	uniforms  shader.Uniforms
	textures  *texture.Registry
	materials *material.Registry
	submitter *draw.Submitter
	meshes    Meshes
}

// New creates a scene for script. Nothing is loaded until Prepare.
func New(script *Script, u shader.Uniforms, device texture.Device, meshes Meshes) *Scene {
	textures := texture.NewRegistry(device, texture.DefaultDecodeOptions())
	materials := material.NewRegistry()
	return &Scene{
		script:    script,
		uniforms:  u,
		textures:  textures,
		materials: materials,
		submitter: draw.NewSubmitter(u, textures, materials),
		meshes:    meshes,
	}
}

// Script returns the script the scene renders.
func (s *Scene) Script() *Script { return s.script }

// Textures returns the scene's texture registry.
func (s *Scene) Textures() *texture.Registry { return s.textures }

// Materials returns the scene's material registry.
func (s *Scene) Materials() *material.Registry { return s.materials }

// Prepare loads everything the script needs: textures from textureDir
// (relative paths are joined to it), materials, primitives and lights, then
// binds the textures to their units. It keeps going past failed loads; the
// returned error aggregates them, and the scene still renders with the
// affected objects falling back to the not-found sampler.
func (s *Scene) Prepare(textureDir string) error {
	var err error

	for _, src := range s.script.Textures {
		err = multierr.Append(err, s.textures.Load(TexturePath(textureDir, src), src.Tag))
	}
	s.textures.BindAll()

	s.materials.DefineAll(s.script.Materials)

	for _, kind := range s.script.Primitives() {
		err = multierr.Append(err, s.meshes.Load(kind))
	}

	s.script.Lights.Apply(s.uniforms)

	logger.Info("scene prepared",
		zap.Int("textures", s.textures.Len()),
		zap.Int("materials", s.materials.Len()),
		zap.Int("steps", len(s.script.Steps)),
		zap.Int("failures", len(multierr.Errors(err))),
	)
	return err
}

// Render draws every step in order. Each step writes its full transform and
// surface state, so no state carries over from the step before.
func (s *Scene) Render() {
	for _, st := range s.script.Steps {
		s.submitter.SetTransform(st.scale(), st.Rotation[0], st.Rotation[1], st.Rotation[2], st.position())
		// Unresolved tags are logged once by the submitter and drawn with
		// fallback state.
		_ = s.submitter.Apply(st.Binding())
		s.meshes.Draw(st.Primitive, st.DrawCaps())
	}
}

// Close releases the GPU textures and meshes and forgets the materials. The
// scene must be prepared again before it can render.
func (s *Scene) Close() {
	s.textures.ReleaseAll()
	s.materials.Reset()
	s.meshes.Release()
}
