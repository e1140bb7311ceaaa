package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/input"
)

func testCamera() *camera.OrbitCamera {
	return camera.NewOrbitCamera(camera.Placement{Distance: 10, Pitch: 20, FOV: 45, Near: 0.1, Far: 100})
}

func TestHandleActions(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		want   Action
	}{
		{"nothing", nil, Action{}},
		{"quit event", []input.Event{{Type: input.EventQuit}}, Action{Quit: true}},
		{"escape", []input.Event{{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE}}, Action{Quit: true}},
		{"screenshot", []input.Event{{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12}}, Action{Screenshot: true}},
		{
			"resize",
			[]input.Event{{Type: input.EventWindowResize, Width: 640, Height: 480}},
			Action{Resize: true, Width: 640, Height: 480},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewControls().Handle(tt.events, testCamera())
			if got != tt.want {
				t.Errorf("Handle() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragOrbitsOnlyWhileHeld(t *testing.T) {
	c, cam := NewControls(), testCamera()
	yaw := cam.Yaw

	c.Handle([]input.Event{{Type: input.EventMouseMove, DeltaX: 50}}, cam)
	if cam.Yaw != yaw {
		t.Fatalf("mouse move without a button changed yaw to %v", cam.Yaw)
	}

	c.Handle([]input.Event{
		{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT},
		{Type: input.EventMouseMove, DeltaX: 50},
	}, cam)
	if cam.Yaw == yaw {
		t.Fatal("drag did not change yaw")
	}

	yaw = cam.Yaw
	c.Handle([]input.Event{
		{Type: input.EventMouseUp, Button: sdl.BUTTON_LEFT},
		{Type: input.EventMouseMove, DeltaX: 50},
	}, cam)
	if cam.Yaw != yaw {
		t.Errorf("move after release changed yaw to %v", cam.Yaw)
	}
}

func TestWheelZooms(t *testing.T) {
	cam := testCamera()
	NewControls().Handle([]input.Event{{Type: input.EventMouseWheel, DeltaY: 1}}, cam)
	if cam.Distance >= 10 {
		t.Errorf("Distance = %v, want closer than 10", cam.Distance)
	}
}

func TestHeldKeysPanEveryFrame(t *testing.T) {
	c, cam := NewControls(), testCamera()

	c.Handle([]input.Event{{Type: input.EventKeyDown, Key: sdl.SCANCODE_W}}, cam)
	z1 := cam.Target.Z
	c.Handle(nil, cam)
	z2 := cam.Target.Z
	if !(z1 < 0 && z2 < z1) {
		t.Fatalf("held W should keep moving forward: z = %v then %v", z1, z2)
	}

	c.Handle([]input.Event{{Type: input.EventKeyUp, Key: sdl.SCANCODE_W}}, cam)
	z3 := cam.Target.Z
	c.Handle(nil, cam)
	if cam.Target.Z != z3 {
		t.Errorf("released W still moves: z = %v then %v", z3, cam.Target.Z)
	}
}
