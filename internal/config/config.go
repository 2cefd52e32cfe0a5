package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer and presenter configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	World      WorldConfig      `yaml:"world"`
	Camera     CameraConfig     `yaml:"camera"`
	Movement   MovementConfig   `yaml:"movement"`
	Raycast    RaycastConfig    `yaml:"raycast"`
	Projection ProjectionConfig `yaml:"projection"`
	Sprites    SpriteConfig     `yaml:"sprites"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Minimap    MinimapConfig    `yaml:"minimap"`
	Colors     ColorsConfig     `yaml:"colors"`
	Textures   TexturesConfig   `yaml:"textures"`
	Perf       PerfConfig       `yaml:"perf"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	BlockSize int    `yaml:"block_size"`
	MapFile   string `yaml:"map_file"`
	TilesFile string `yaml:"tiles_file"`
}

type CameraConfig struct {
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	StartAngle  float64 `yaml:"start_angle"`
	FieldOfView float64 `yaml:"field_of_view"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	CollisionRadius  float64 `yaml:"collision_radius"`
}

// RaycastConfig selects the traversal algorithm and its bounds.
type RaycastConfig struct {
	Mode     string  `yaml:"mode"` // "dda" or "march"
	Step     float64 `yaml:"step"`
	MaxRange float64 `yaml:"max_range"`
	Workers  int     `yaml:"workers"` // <= 1 renders columns on the calling goroutine
}

type ProjectionConfig struct {
	WallScale   float64 `yaml:"wall_scale"`
	TextureSize int     `yaml:"texture_size"`
	MinDistance float64 `yaml:"min_distance"`
}

type SpriteConfig struct {
	NearPlane float64 `yaml:"near_plane"`
	FarPlane  float64 `yaml:"far_plane"`
	Scale     float64 `yaml:"scale"`
}

type LightingConfig struct {
	FalloffDistance float64 `yaml:"falloff_distance"` // 0 disables shading
	MinBrightness   float64 `yaml:"min_brightness"`
}

type MinimapConfig struct {
	Size       int  `yaml:"size"`
	Margin     int  `yaml:"margin"`
	SampleRays int  `yaml:"sample_rays"`
	Enabled    bool `yaml:"enabled"`
}

type ColorsConfig struct {
	Background [3]int `yaml:"background"`
	Sky        [3]int `yaml:"sky"`
	Floor      [3]int `yaml:"floor"`
	FarPlane   [3]int `yaml:"far_plane"`
	// DrawFarPlane paints columns whose ray hit nothing; otherwise they keep sky/floor.
	DrawFarPlane bool `yaml:"draw_far_plane"`
}

// TexturesConfig lists texture files by key. Missing files fall back to
// procedural placeholders.
type TexturesConfig struct {
	Dir   string            `yaml:"dir"`
	Files map[string]string `yaml:"files"`
}

type PerfConfig struct {
	LogEnabled     bool    `yaml:"log_enabled"`
	LowFPSWarning  float64 `yaml:"low_fps_warning"`
	LogIntervalSec int     `yaml:"log_interval_sec"`
}

// TileConfig is the on-disk shape of the tile table (assets/tiles.yaml).
type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

// TileData describes one wall variant.
type TileData struct {
	Name         string `yaml:"name"`
	Letter       string `yaml:"letter"`
	Texture      string `yaml:"texture"`
	MinimapColor [3]int `yaml:"minimap_color"`
}

var GlobalConfig *Config

// Default returns the configuration matching the reference renderer's
// built-in constants.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads the configuration from a yaml file. Keys missing from the
// file receive their default value.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes yaml bytes into a config and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Display.ScreenWidth, 1300)
	setInt(&c.Display.ScreenHeight, 900)
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "Raycaster"
	}
	setInt(&c.Display.TPS, 60)

	setInt(&c.World.BlockSize, 100)
	if c.World.MapFile == "" {
		c.World.MapFile = "assets/maze.txt"
	}
	if c.World.TilesFile == "" {
		c.World.TilesFile = "assets/tiles.yaml"
	}

	setFloat(&c.Camera.StartX, 150)
	setFloat(&c.Camera.StartY, 150)
	setFloat(&c.Camera.StartAngle, math.Pi/2)
	setFloat(&c.Camera.FieldOfView, math.Pi/3)

	setFloat(&c.Movement.MoveSpeed, 8)
	setFloat(&c.Movement.RotationSpeed, math.Pi/40)
	setFloat(&c.Movement.MouseSensitivity, 0.002)
	setFloat(&c.Movement.CollisionRadius, 10)

	if c.Raycast.Mode == "" {
		c.Raycast.Mode = "dda"
	}
	setFloat(&c.Raycast.Step, 1)
	setFloat(&c.Raycast.MaxRange, 3000)

	setFloat(&c.Projection.WallScale, 100)
	setInt(&c.Projection.TextureSize, 128)
	setFloat(&c.Projection.MinDistance, 0.1)

	setFloat(&c.Sprites.NearPlane, 50)
	setFloat(&c.Sprites.FarPlane, 1000)
	setFloat(&c.Sprites.Scale, 70)

	setInt(&c.Minimap.Size, 150)
	setInt(&c.Minimap.Margin, 20)
	setInt(&c.Minimap.SampleRays, 20)

	setColor(&c.Colors.Background, [3]int{80, 80, 200})
	setColor(&c.Colors.Sky, [3]int{135, 206, 235})
	setColor(&c.Colors.Floor, [3]int{168, 168, 168})
	setColor(&c.Colors.FarPlane, [3]int{20, 20, 40})

	if c.Textures.Dir == "" {
		c.Textures.Dir = "assets/textures"
	}

	setFloat(&c.Perf.LowFPSWarning, 45)
	setInt(&c.Perf.LogIntervalSec, 3)
}

// Validate reports configuration values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.World.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("world.block_size %d must be positive", c.World.BlockSize))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= math.Pi {
		errs = append(errs, fmt.Errorf("camera.field_of_view %.3f must be in (0, pi)", c.Camera.FieldOfView))
	}
	if c.Raycast.Mode != "dda" && c.Raycast.Mode != "march" {
		errs = append(errs, fmt.Errorf("raycast.mode %q must be \"dda\" or \"march\"", c.Raycast.Mode))
	}
	if c.Raycast.Step <= 0 || c.Raycast.MaxRange <= 0 {
		errs = append(errs, fmt.Errorf("raycast step %.3f and max_range %.3f must be positive", c.Raycast.Step, c.Raycast.MaxRange))
	}
	if c.Projection.TextureSize <= 0 {
		errs = append(errs, fmt.Errorf("projection.texture_size %d must be positive", c.Projection.TextureSize))
	}
	if c.Sprites.NearPlane < 0 || c.Sprites.FarPlane <= c.Sprites.NearPlane {
		errs = append(errs, fmt.Errorf("sprites near %.1f / far %.1f planes are inverted", c.Sprites.NearPlane, c.Sprites.FarPlane))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setColor(v *[3]int, def [3]int) {
	if *v == [3]int{} {
		*v = def
	}
}

// RGBA converts a yaml color triple to an opaque color.
func RGBA(c [3]int) color.RGBA {
	return color.RGBA{R: clampByte(c[0]), G: clampByte(c[1]), B: clampByte(c[2]), A: 255}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetBlockSize() float64 {
	return float64(c.World.BlockSize)
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetTextureSize() int {
	return c.Projection.TextureSize
}

func (c *Config) GetSkyColor() color.RGBA {
	return RGBA(c.Colors.Sky)
}

func (c *Config) GetFloorColor() color.RGBA {
	return RGBA(c.Colors.Floor)
}

func (c *Config) GetBackgroundColor() color.RGBA {
	return RGBA(c.Colors.Background)
}

func (c *Config) GetFarPlaneColor() color.RGBA {
	return RGBA(c.Colors.FarPlane)
}
