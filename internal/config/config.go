// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Controls ControlsConfig `yaml:"controls"`
	XR       XRConfig       `yaml:"xr"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ControlsConfig holds pointer/keyboard navigation settings.
type ControlsConfig struct {
	MoveSpeed        float32 `yaml:"move_speed"`        // units per second
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // radians per pixel
	InvertY          bool    `yaml:"invert_y"`
}

// XRConfig holds XR session settings.
type XRConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "immersive" or "magicwindow"
}

// AudioConfig holds ambience playback settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	StartRoom string `yaml:"start_room"` // route path of the first room
	AssetDir  string `yaml:"asset_dir"`
	ShowFPS   bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Controls: ControlsConfig{
			MoveSpeed:        2.5,
			MouseSensitivity: 0.002,
			InvertY:          false,
		},
		XR: XRConfig{
			Enabled: false,
			Mode:    "immersive",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			Muted:        false,
		},
		Game: GameConfig{
			StartRoom: "/",
			AssetDir:  "assets",
			ShowFPS:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
