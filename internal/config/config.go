// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig selects the scene script and where its textures live.
type SceneConfig struct {
	Script     string     `yaml:"script"`      // empty uses the built-in kitchen scene
	TextureDir string     `yaml:"texture_dir"` // base for relative texture paths
	Background [3]float32 `yaml:"background"`
}

// CameraConfig holds the initial orbit camera placement. Angles are in
// degrees.
type CameraConfig struct {
	Target   [3]float32 `yaml:"target"`
	Distance float32    `yaml:"distance"`
	Pitch    float32    `yaml:"pitch"`
	Yaw      float32    `yaml:"yaw"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir string `yaml:"dir"` // where F12 screenshots are written

	// Once, when set, renders a single frame to this PNG path and exits.
	Once string `yaml:"-"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Still Life",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Script:     "",
			TextureDir: "textures",
			Background: [3]float32{0.1, 0.1, 0.15},
		},
		Camera: CameraConfig{
			Target:   [3]float32{0, 1, 0},
			Distance: 18,
			Pitch:    30,
			Yaw:      0,
			FOV:      45,
			Near:     0.1,
			Far:      100,
		},
		Capture: CaptureConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
