// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Viewer   ViewerConfig  `yaml:"viewer"`
	Textures TextureConfig `yaml:"textures"`
	Logging  LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // samples, 0 disables
}

// ViewerConfig holds scene and mesh building settings.
type ViewerConfig struct {
	FOV             float32    `yaml:"fov"` // vertical, degrees
	Background      [3]float32 `yaml:"background"`
	GenerateNormals bool       `yaml:"generate_normals"`
	Wireframe       bool       `yaml:"wireframe"`
	ShowBounds      bool       `yaml:"show_bounds"`
	OrbitSpeed      float32    `yaml:"orbit_speed"` // radians per pixel of drag
	ZoomSpeed       float32    `yaml:"zoom_speed"`

	// Light direction relative to the camera, in degrees.
	LightAzimuth   float32 `yaml:"light_azimuth"`
	LightElevation float32 `yaml:"light_elevation"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// TextureConfig holds texture decoding and sampling settings.
type TextureConfig struct {
	MaxSize int  `yaml:"max_size"` // 0 keeps full resolution
	Mipmaps bool `yaml:"mipmaps"`
	Linear  bool `yaml:"linear"`
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
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   4,
		},
		Viewer: ViewerConfig{
			FOV:            45,
			Background:     [3]float32{0.12, 0.12, 0.14},
			OrbitSpeed:     0.01,
			ZoomSpeed:      0.1,
			LightAzimuth:   25,
			LightElevation: 35,
			ScreenshotDir:  "screenshots",
		},
		Textures: TextureConfig{
			MaxSize: 4096,
			Mipmaps: true,
			Linear:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
