// Package config holds the game tuning configuration. All tuning constants
// live in one immutable GameConfig loaded once at startup and passed to the
// components that need them; nothing reads ambient global state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// GameConfig represents the tuning parameters for a session. Fields are
// pointer-typed so a partial JSON file only overrides what it names; the
// Get* accessors supply the canonical defaults for everything else.
type GameConfig struct {
	// Physics params
	PlayerSpeed        *float64 `json:"player_speed,omitempty"`
	PlayerAcceleration *float64 `json:"player_acceleration,omitempty"` // lerp smoothing factor per frame
	PlayerBounciness   *float64 `json:"player_bounciness,omitempty"`
	MaxFrameSeconds    *float64 `json:"max_frame_seconds,omitempty"`
	TargetFrameRate    *int     `json:"target_frame_rate,omitempty"`

	// Hardware params
	SerialPort      *string  `json:"serial_port,omitempty"`
	TiltSensitivity *float64 `json:"tilt_sensitivity,omitempty"`
	FSRThreshold    *float64 `json:"fsr_threshold,omitempty"`
	MaxFSRValue     *float64 `json:"max_fsr_value,omitempty"`

	// Level params
	TileSize      *float64 `json:"tile_size,omitempty"`
	BallSize      *float64 `json:"ball_size,omitempty"`
	CaptureRadius *float64 `json:"capture_radius,omitempty"`

	// Shortest-path heuristic factor applied to the straight-line
	// start-to-goal distance.
	PathSlackFactor *float64 `json:"path_slack_factor,omitempty"`
}

// DefaultGameConfig returns a config with all fields unset, so every
// accessor yields its default.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{}
}

// LoadGameConfig loads a GameConfig from a JSON file. Fields omitted from
// the JSON retain their defaults, so partial configs are safe.
func LoadGameConfig(path string) (*GameConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultGameConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set values are usable.
func (c *GameConfig) Validate() error {
	if c.PlayerAcceleration != nil {
		if *c.PlayerAcceleration <= 0 || *c.PlayerAcceleration > 1 {
			return fmt.Errorf("player_acceleration must be in (0, 1], got %f", *c.PlayerAcceleration)
		}
	}
	if c.PlayerBounciness != nil {
		if *c.PlayerBounciness < 0 || *c.PlayerBounciness > 1 {
			return fmt.Errorf("player_bounciness must be in [0, 1], got %f", *c.PlayerBounciness)
		}
	}
	if c.PlayerSpeed != nil && *c.PlayerSpeed <= 0 {
		return fmt.Errorf("player_speed must be positive, got %f", *c.PlayerSpeed)
	}
	if c.TiltSensitivity != nil && *c.TiltSensitivity <= 0 {
		return fmt.Errorf("tilt_sensitivity must be positive, got %f", *c.TiltSensitivity)
	}
	if c.FSRThreshold != nil && c.MaxFSRValue != nil && *c.FSRThreshold >= *c.MaxFSRValue {
		return fmt.Errorf("fsr_threshold %f must be below max_fsr_value %f", *c.FSRThreshold, *c.MaxFSRValue)
	}
	if c.TileSize != nil && *c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %f", *c.TileSize)
	}
	if c.CaptureRadius != nil && *c.CaptureRadius <= 0 {
		return fmt.Errorf("capture_radius must be positive, got %f", *c.CaptureRadius)
	}
	if c.TargetFrameRate != nil && *c.TargetFrameRate <= 0 {
		return fmt.Errorf("target_frame_rate must be positive, got %d", *c.TargetFrameRate)
	}
	return nil
}

// GetPlayerSpeed returns the maximum ball speed in units per second.
func (c *GameConfig) GetPlayerSpeed() float64 {
	if c.PlayerSpeed == nil {
		return 260
	}
	return *c.PlayerSpeed
}

// GetPlayerAcceleration returns the per-frame velocity smoothing factor.
func (c *GameConfig) GetPlayerAcceleration() float64 {
	if c.PlayerAcceleration == nil {
		return 0.1
	}
	return *c.PlayerAcceleration
}

// GetPlayerBounciness returns the velocity fraction retained after a wall hit.
func (c *GameConfig) GetPlayerBounciness() float64 {
	if c.PlayerBounciness == nil {
		return 0.4
	}
	return *c.PlayerBounciness
}

// GetMaxFrameSeconds returns the dt clamp guarding against frame-time spikes.
func (c *GameConfig) GetMaxFrameSeconds() float64 {
	if c.MaxFrameSeconds == nil {
		return 0.1
	}
	return *c.MaxFrameSeconds
}

// GetTargetFrameRate returns the frame pacing rate in Hz.
func (c *GameConfig) GetTargetFrameRate() int {
	if c.TargetFrameRate == nil {
		return 60
	}
	return *c.TargetFrameRate
}

// GetSerialPort returns the device path for the grip-ball sensor.
func (c *GameConfig) GetSerialPort() string {
	if c.SerialPort == nil {
		return "/dev/ttyUSB0"
	}
	return *c.SerialPort
}

// GetTiltSensitivity returns the accelerometer count per full deflection.
func (c *GameConfig) GetTiltSensitivity() float64 {
	if c.TiltSensitivity == nil {
		return 5000
	}
	return *c.TiltSensitivity
}

// GetFSRThreshold returns the ADC value needed to register a grip.
func (c *GameConfig) GetFSRThreshold() float64 {
	if c.FSRThreshold == nil {
		return 500
	}
	return *c.FSRThreshold
}

// GetMaxFSRValue returns the ADC value of maximum grip.
func (c *GameConfig) GetMaxFSRValue() float64 {
	if c.MaxFSRValue == nil {
		return 4095
	}
	return *c.MaxFSRValue
}

// GetTileSize returns the layout tile edge length in world units.
func (c *GameConfig) GetTileSize() float64 {
	if c.TileSize == nil {
		return 40
	}
	return *c.TileSize
}

// GetBallSize returns the ball bounding-box edge length.
func (c *GameConfig) GetBallSize() float64 {
	if c.BallSize == nil {
		return 20
	}
	return *c.BallSize
}

// GetCaptureRadius returns the goal capture distance.
func (c *GameConfig) GetCaptureRadius() float64 {
	if c.CaptureRadius == nil {
		return 15
	}
	return *c.CaptureRadius
}

// GetPathSlackFactor returns the shortest-path heuristic multiplier.
func (c *GameConfig) GetPathSlackFactor() float64 {
	if c.PathSlackFactor == nil {
		return 1.5
	}
	return *c.PathSlackFactor
}
