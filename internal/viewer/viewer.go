// Package viewer hosts a scene in a window: it owns the render loop, the
// orbit camera and screenshot capture.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/config"
	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/debug"
	"github.com/Faultbox/stilllife/internal/engine/input"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/engine/renderer"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/internal/engine/window"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/internal/scene"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Viewer is the interactive still-life viewer.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	controls *Controls
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	shots    *debug.ScreenshotCapture
}

// New loads and validates the scene script, opens the window and prepares
// the scene. Missing textures are logged and do not stop the viewer.
func New(cfg *config.Config) (*Viewer, error) {
	script, err := scene.Load(cfg.Scene.Script)
	if err != nil {
		return nil, err
	}
	if err := scene.Validate(script); err != nil {
		return nil, err
	}

	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("steps", len(script.Steps)),
	)

	v := &Viewer{
		config:   cfg,
		input:    input.New(),
		controls: NewControls(),
		shots:    debug.NewScreenshotCapture(cfg.Capture.Dir, "stilllife"),
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Scene.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scene = scene.New(script, v.renderer.Program(), texture.GLDevice{}, mesh.NewLibrary())
	if err := v.scene.Prepare(cfg.Scene.TextureDir); err != nil {
		logger.Warn("scene prepared with missing resources",
			zap.String("texture_dir", cfg.Scene.TextureDir),
			zap.Errors("problems", multierr.Errors(err)),
		)
	}

	c := cfg.Camera
	v.camera = camera.NewOrbitCamera(camera.Placement{
		Target:   math.V3(c.Target[0], c.Target[1], c.Target[2]),
		Distance: c.Distance,
		Pitch:    c.Pitch,
		Yaw:      c.Yaw,
		FOV:      c.FOV,
		Near:     c.Near,
		Far:      c.Far,
	})

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the render loop. With a one-shot capture configured it renders
// a single frame, saves it and returns.
func (v *Viewer) Run() error {
	if v.config.Capture.Once != "" {
		v.renderFrame()
		return v.saveFrame(v.config.Capture.Once)
	}

	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		action := v.controls.Handle(v.input.Events(), v.camera)
		if action.Quit {
			v.running = false
			break
		}
		if action.Resize {
			v.renderer.Resize(v.window.DrawableSize())
		}

		// 2. Render
		v.renderFrame()

		// Read back before the swap invalidates the back buffer
		if action.Screenshot {
			if err := v.screenshot(); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) renderFrame() {
	v.renderer.Begin()

	eye := v.camera.Position()
	aspect := v.renderer.Config().Aspect()
	v.renderer.SetCamera(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(aspect), eye)
	v.scene.Script().Lights.AimSpot(v.renderer.Program(), eye, v.camera.Forward())

	v.scene.Render()
	v.renderer.End()
}

func (v *Viewer) screenshot() error {
	rc := v.renderer.Config()
	path, err := v.shots.CaptureFromPixels(debug.ReadFramebuffer(rc.Width, rc.Height), rc.Width, rc.Height)
	if err != nil {
		return err
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return nil
}

func (v *Viewer) saveFrame(path string) error {
	rc := v.renderer.Config()
	if err := debug.WritePNG(path, debug.ReadFramebuffer(rc.Width, rc.Height), rc.Width, rc.Height); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	logger.Info("frame saved", zap.String("path", path))
	return nil
}

// Close releases the scene, the renderer and the window, in that order.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.scene != nil {
		v.scene.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
