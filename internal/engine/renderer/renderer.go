// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Uniform names for the per-frame camera state.
const (
	UniformView         = "view"
	UniformProjection   = "projection"
	UniformViewPosition = "viewPosition"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// Aspect returns width/height, or 1 for a degenerate size.
func (c Config) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Renderer owns the GL state and the scene program.
type Renderer struct {
	config  Config
	program *shader.Program
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Translucent objects (the cup, the lid) blend over what is behind them.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(shader.SceneVertexShader, shader.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene program: %w", err)
	}
	r.program.Use()

	return r, nil
}

// Program returns the scene program. It is current between Begin and End.
func (r *Renderer) Program() *shader.Program {
	return r.program
}

// Config returns the current configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// SetCamera submits the frame's view and projection to the scene program.
func (r *Renderer) SetCamera(view, projection math.Mat4, eye math.Vec3) {
	SubmitCamera(r.program, view, projection, eye)
}

// SubmitCamera writes the per-frame camera uniforms to u.
func SubmitCamera(u shader.Uniforms, view, projection math.Mat4, eye math.Vec3) {
	u.SetMat4(UniformView, view)
	u.SetMat4(UniformProjection, projection)
	u.SetVec3(UniformViewPosition, eye.X, eye.Y, eye.Z)
}
