// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Camera      CameraConfig     `yaml:"camera"`
	Shadows     ShadowConfig     `yaml:"shadows"`
	Lighting    LightingConfig   `yaml:"lighting"`
	Assets      AssetsConfig     `yaml:"assets"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Dev         DevConfig        `yaml:"dev"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// CameraConfig holds free-fly camera tuning.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"` // degrees
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	OrthoSize   float32 `yaml:"ortho_size"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Enabled    bool  `yaml:"enabled"`
	Resolution int32 `yaml:"resolution"`
}

// LightingConfig holds lighting rig overrides.
type LightingConfig struct {
	GlobalAmbient float32 `yaml:"global_ambient"`
	DeskLamp      bool    `yaml:"desk_lamp"`
}

// AssetsConfig holds texture search paths.
type AssetsConfig struct {
	Roots         []string `yaml:"roots"` // searched in order, "~" expanded
	DecodeWorkers int      `yaml:"decode_workers"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "webp"
}

// DevConfig holds developer conveniences.
type DevConfig struct {
	WatchShaders bool   `yaml:"watch_shaders"`
	ShaderDir    string `yaml:"shader_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1000,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOV:         80,
			Speed:       20,
			Sensitivity: 0.1,
			Near:        0.1,
			Far:         100,
			OrthoSize:   10,
		},
		Shadows: ShadowConfig{
			Enabled:    true,
			Resolution: 2048,
		},
		Lighting: LightingConfig{
			GlobalAmbient: 0.05,
		},
		Assets: AssetsConfig{
			Roots:         []string{"textures", "~/.local/share/attic3d/textures"},
			DecodeWorkers: 4,
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Dev: DevConfig{
			ShaderDir: "internal/engine/shader/shaders",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
