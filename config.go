package mandel

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything fixed at startup.
type Config struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Tiles      int          `yaml:"tiles"`       // row bands per frame, must divide Height
	Hue        float32      `yaml:"hue"`         // palette hue in degrees
	Speed      float64      `yaml:"speed"`       // pan speed in pixels per second
	ZoomFactor float64      `yaml:"zoom_factor"` // extent multiplier per zoom-in frame
	IterStep   int32        `yaml:"iter_step"`   // iterations added or removed per key press
	Camera     CameraConfig `yaml:"camera"`
	Server     ServerConfig `yaml:"server"`
}

// CameraConfig is the startup camera.
type CameraConfig struct {
	Region     string `yaml:"region"` // see Regions
	Iterations int32  `yaml:"iterations"`
}

// ServerConfig is used by the streaming server only.
type ServerConfig struct {
	HTTPPort  int    `yaml:"http_port"`
	RPCPort   int    `yaml:"rpc_port"` // irpc frame snapshots over tcp
	StaticDir string `yaml:"static_dir"`
	FPS       int    `yaml:"fps"`
}

// DefaultConfig returns the stock 1280×960 setup.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     960,
		Tiles:      64,
		Hue:        252,
		Speed:      200,
		ZoomFactor: 0.9,
		IterStep:   64,
		Camera: CameraConfig{
			Region:     "overview",
			Iterations: 64,
		},
		Server: ServerConfig{
			HTTPPort:  8080,
			RPCPort:   8081,
			StaticDir: "./static",
			FPS:       30,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// An empty path returns the validated defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the scheduler and controller rely on.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if err := checkTiles(c.Height, c.Tiles); err != nil {
		return err
	}
	if !(c.ZoomFactor > 0 && c.ZoomFactor < 1) {
		return fmt.Errorf("%w: zoom_factor must be in (0,1), got %v", ErrInvalidConfig, c.ZoomFactor)
	}
	if c.Speed < 0 || math.IsInf(c.Speed, 0) || math.IsNaN(c.Speed) {
		return fmt.Errorf("%w: speed must be finite and >= 0, got %v", ErrInvalidConfig, c.Speed)
	}
	if c.IterStep < 0 {
		return fmt.Errorf("%w: iter_step must be >= 0, got %d", ErrInvalidConfig, c.IterStep)
	}
	if c.Camera.Iterations < 0 {
		return fmt.Errorf("%w: camera.iterations must be >= 0, got %d", ErrInvalidConfig, c.Camera.Iterations)
	}
	if _, err := LookupRegion(c.Camera.Region); err != nil {
		return fmt.Errorf("%w: camera.region: %w", ErrInvalidConfig, err)
	}
	for _, p := range []int{c.Server.HTTPPort, c.Server.RPCPort} {
		if p < 0 || p > 65535 {
			return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, p)
		}
	}
	if c.Server.FPS <= 0 {
		return fmt.Errorf("%w: server.fps must be > 0, got %d", ErrInvalidConfig, c.Server.FPS)
	}
	return nil
}

// InitialCamera returns the startup camera described by c.Camera.
func (c Config) InitialCamera() (Camera, error) {
	r, err := LookupRegion(c.Camera.Region)
	if err != nil {
		return Camera{}, err
	}
	return r.Camera(c.Camera.Iterations), nil
}

// checkTiles rejects partitions that would leave rows uncomputed.
func checkTiles(height, tiles int) error {
	if tiles <= 0 {
		return fmt.Errorf("%w: tiles must be > 0, got %d", ErrInvalidConfig, tiles)
	}
	if height%tiles != 0 {
		return fmt.Errorf("%w: height %d is not divisible by tiles %d", ErrInvalidConfig, height, tiles)
	}
	return nil
}
