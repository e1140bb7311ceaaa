package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/input"
)

// Action is what the frame's input asks the viewer to do beyond moving the
// camera.
type Action struct {
	Quit       bool
	Screenshot bool
	Resize     bool
	Width      int
	Height     int
}

// Controls maps input events to camera motion: left-drag orbits, the wheel
// zooms, WASD pans and Q/E move the target down and up.
type Controls struct {
	dragging bool
	held     map[sdl.Scancode]bool
}

// NewControls returns controls with nothing held.
func NewControls() *Controls {
	return &Controls{held: make(map[sdl.Scancode]bool)}
}

// Handle applies one frame of events to cam.
func (c *Controls) Handle(events []input.Event, cam *camera.OrbitCamera) Action {
	var a Action
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			a.Quit = true
		case input.EventWindowResize:
			a.Resize, a.Width, a.Height = true, e.Width, e.Height
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.Quit = true
			case sdl.SCANCODE_F12:
				a.Screenshot = true
			}
			c.held[e.Key] = true
		case input.EventKeyUp:
			delete(c.held, e.Key)
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				c.dragging = true
			}
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				c.dragging = false
			}
		case input.EventMouseMove:
			if c.dragging {
				cam.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseWheel:
			cam.HandleZoom(float32(e.DeltaY))
		}
	}
	c.pan(cam)
	return a
}

func (c *Controls) pan(cam *camera.OrbitCamera) {
	var forward, right, up float32
	if c.held[sdl.SCANCODE_W] {
		forward++
	}
	if c.held[sdl.SCANCODE_S] {
		forward--
	}
	if c.held[sdl.SCANCODE_D] {
		right++
	}
	if c.held[sdl.SCANCODE_A] {
		right--
	}
	if c.held[sdl.SCANCODE_E] {
		up++
	}
	if c.held[sdl.SCANCODE_Q] {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		cam.HandleMovement(forward, right, up)
	}
}
