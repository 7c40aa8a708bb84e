// Package config loads server settings from the environment and an
// optional TOML file, and carries the viewer settings shared with the
// browser build.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

const envPrefix = "WALLPLAN"

type Config struct {
	Port       int    `envconfig:"PORT" default:"8080"`
	WebDir     string `envconfig:"WEB_DIR" default:"./web"`
	Reload     bool   `envconfig:"RELOAD" default:"false"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ConfigFile string `envconfig:"CONFIG_FILE"`

	Viewer Viewer `envconfig:"VIEWER"`
}

// Viewer holds camera and wall defaults. It is sent to the page as JSON.
type Viewer struct {
	FOV     float64 `json:"fov" toml:"fov" envconfig:"FOV" default:"75"`
	Near    float64 `json:"near" toml:"near" envconfig:"NEAR" default:"0.1"`
	Far     float64 `json:"far" toml:"far" envconfig:"FAR" default:"1000"`
	CameraZ float64 `json:"cameraZ" toml:"camera_z" envconfig:"CAMERA_Z" default:"5"`

	WallHeight float64 `json:"wallHeight" toml:"wall_height" envconfig:"WALL_HEIGHT" default:"1"`
	WallWidth  float64 `json:"wallWidth" toml:"wall_width" envconfig:"WALL_WIDTH" default:"0.2"`
	WallColor  string  `json:"wallColor" toml:"wall_color" envconfig:"WALL_COLOR" default:"#00ff00"`
}

type fileConfig struct {
	Viewer Viewer `toml:"viewer"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}

	if cfg.ConfigFile != "" {
		if err := cfg.overlayFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Viewer.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overlayFile decodes the [viewer] table of a TOML file over the current
// viewer settings. Keys absent from the file keep their values.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := fileConfig{Viewer: c.Viewer}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	c.Viewer = fc.Viewer
	return nil
}

// DefaultViewer returns the built-in viewer settings.
func DefaultViewer() Viewer {
	return Viewer{
		FOV:        75,
		Near:       0.1,
		Far:        1000,
		CameraZ:    5,
		WallHeight: 1,
		WallWidth:  0.2,
		WallColor:  "#00ff00",
	}
}

// DecodeViewer decodes JSON over the defaults. Empty input yields the
// defaults.
func DecodeViewer(data []byte) (Viewer, error) {
	v := DefaultViewer()
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return DefaultViewer(), fmt.Errorf("decode viewer config: %w", err)
	}
	if err := v.Validate(); err != nil {
		return DefaultViewer(), err
	}
	return v, nil
}

func (v Viewer) Validate() error {
	var errs []error
	if v.FOV <= 0 || v.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", v.FOV))
	}
	if v.Near <= 0 {
		errs = append(errs, fmt.Errorf("near must be positive, got %v", v.Near))
	}
	if v.Far <= v.Near {
		errs = append(errs, fmt.Errorf("far (%v) must exceed near (%v)", v.Far, v.Near))
	}
	if v.WallHeight <= 0 {
		errs = append(errs, fmt.Errorf("wall height must be positive, got %v", v.WallHeight))
	}
	if v.WallWidth <= 0 {
		errs = append(errs, fmt.Errorf("wall width must be positive, got %v", v.WallWidth))
	}
	return errors.Join(errs...)
}

// JSON returns the viewer settings as a JSON object.
func (v Viewer) JSON() string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
