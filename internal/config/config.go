// Package config holds every gameplay tuning value with its default and loads
// overrides from a YAML file.
package config

import (
	"os"

	"portalgun/internal/player"
	"portalgun/internal/portal"
	"portalgun/internal/render"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vec3 is written as a three element sequence.
type Vec3 [3]float32

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type PhysicsConfig struct {
	Gravity       float32 `yaml:"gravity"`
	MoveSpeed     float32 `yaml:"move_speed"`
	JumpStrength  float32 `yaml:"jump_strength"`
	GroundDrag    float32 `yaml:"ground_drag"`
	AirDrag       float32 `yaml:"air_drag"`
	StopThreshold float32 `yaml:"stop_threshold"`
	ProbeHeight   float32 `yaml:"probe_height"`
	ProbeDistance float32 `yaml:"probe_distance"`
	ProbeMargin   float32 `yaml:"probe_margin"`
	KillHeight    float32 `yaml:"kill_height"`
	Respawn       Vec3    `yaml:"respawn"`
	StepDistance  float32 `yaml:"step_distance"`
	MaxDelta      float32 `yaml:"max_delta"`
}

type CollisionConfig struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	StepHeight float32 `yaml:"step_height"`
}

type PortalConfig struct {
	MinSeparation float32 `yaml:"min_separation"`
	Radius        float32 `yaml:"teleport_radius"`
	ChestHeight   float32 `yaml:"chest_height"`
	ExitOffset    float32 `yaml:"exit_offset"`
	Cooldown      float32 `yaml:"cooldown"`
	SafetyMargin  float32 `yaml:"cooldown_margin"`
	MinExitSpeed  float32 `yaml:"min_exit_speed"`
	ExitKick      float32 `yaml:"exit_kick"`
	AimDistance   float32 `yaml:"aim_distance"`
}

type RenderConfig struct {
	TargetSize    int     `yaml:"target_size"`
	Brightness    float32 `yaml:"brightness"`
	FOV           float32 `yaml:"fov"`
	MaskOffset    float32 `yaml:"mask_offset"`
	SurfaceOffset float32 `yaml:"surface_offset"`
	Clipping      bool    `yaml:"clipping"`
}

type LookConfig struct {
	Sensitivity float32 `yaml:"mouse_sensitivity"` // radians per pixel
	PitchLimit  float32 `yaml:"pitch_limit"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Collision CollisionConfig `yaml:"collision"`
	Portal    PortalConfig    `yaml:"portal"`
	Render    RenderConfig    `yaml:"render"`
	Look      LookConfig      `yaml:"look"`
	Audio     AudioConfig     `yaml:"audio"`
}

func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:       -30,
			MoveSpeed:     8,
			JumpStrength:  10,
			GroundDrag:    5.0,
			AirDrag:       0.5,
			StopThreshold: 0.1,
			ProbeHeight:   1.0,
			ProbeDistance: 1.0,
			ProbeMargin:   0.2,
			KillHeight:    -50,
			Respawn:       Vec3{0, 5, 0},
			StepDistance:  2.0,
			MaxDelta:      0.05,
		},
		Collision: CollisionConfig{
			Width:      1.0,
			Height:     1.8,
			StepHeight: 0.4,
		},
		Portal: PortalConfig{
			MinSeparation: 2.5,
			Radius:        2.0,
			ChestHeight:   1.0,
			ExitOffset:    1.5,
			Cooldown:      0.5,
			SafetyMargin:  0.2,
			MinExitSpeed:  1.0,
			ExitKick:      2.0,
			AimDistance:   50,
		},
		Render: RenderConfig{
			TargetSize:    512,
			Brightness:    1.0,
			FOV:           75,
			MaskOffset:    0.005,
			SurfaceOffset: 0.02,
			Clipping:      true,
		},
		Look: LookConfig{
			Sensitivity: 0.003,
			PitchLimit:  math32.Pi/2 - 0.05,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  1.0,
		},
	}
}

// Load reads path over the defaults. Fields absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: load %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "config: unmarshal %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "config: marshal")
}

func (c Config) Validate() error {
	switch {
	case c.Physics.MaxDelta <= 0:
		return errors.Errorf("physics.max_delta must be positive, got %v", c.Physics.MaxDelta)
	case c.Physics.MoveSpeed < 0:
		return errors.Errorf("physics.move_speed must not be negative, got %v", c.Physics.MoveSpeed)
	case c.Collision.Width <= 0 || c.Collision.Height <= 0:
		return errors.Errorf("collision box must have positive size, got %vx%v", c.Collision.Width, c.Collision.Height)
	case c.Collision.StepHeight < 0 || c.Collision.StepHeight >= c.Collision.Height:
		return errors.Errorf("collision.step_height must be in [0, height), got %v", c.Collision.StepHeight)
	case c.Portal.MinSeparation < 0:
		return errors.Errorf("portal.min_separation must not be negative, got %v", c.Portal.MinSeparation)
	case c.Portal.Radius <= 0:
		return errors.Errorf("portal.teleport_radius must be positive, got %v", c.Portal.Radius)
	case c.Portal.Cooldown < 0 || c.Portal.SafetyMargin < 0:
		return errors.Errorf("portal cooldowns must not be negative")
	case c.Render.TargetSize <= 0 || c.Render.TargetSize > 4096:
		return errors.Errorf("render.target_size must be in (0, 4096], got %d", c.Render.TargetSize)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return errors.Errorf("render.fov must be in (0, 180), got %v", c.Render.FOV)
	case c.Look.PitchLimit <= 0 || c.Look.PitchLimit >= math32.Pi/2:
		return errors.Errorf("look.pitch_limit must be in (0, pi/2), got %v", c.Look.PitchLimit)
	}
	return nil
}

// ApplyController copies physics tuning onto a controller.
func (c Config) ApplyController(ctl *player.Controller) {
	p := c.Physics
	ctl.Gravity = p.Gravity
	ctl.MoveSpeed = p.MoveSpeed
	ctl.JumpStrength = p.JumpStrength
	ctl.GroundDrag = p.GroundDrag
	ctl.AirDrag = p.AirDrag
	ctl.StopThreshold = p.StopThreshold
	ctl.ProbeHeight = p.ProbeHeight
	ctl.ProbeDistance = p.ProbeDistance
	ctl.ProbeMargin = p.ProbeMargin
	ctl.KillHeight = p.KillHeight
	ctl.Respawn = p.Respawn.Vector3()
	ctl.StepDistance = p.StepDistance
	ctl.PitchLimit = c.Look.PitchLimit
}

func (c Config) ApplyCollision(r *player.CollisionResolver) {
	r.Width = c.Collision.Width
	r.Height = c.Collision.Height
	r.StepHeight = c.Collision.StepHeight
}

func (c Config) ApplyPortal(pair *portal.Pair, t *portal.Teleporter) {
	pair.MinSeparation = c.Portal.MinSeparation

	t.Radius = c.Portal.Radius
	t.ChestHeight = c.Portal.ChestHeight
	t.ExitOffset = c.Portal.ExitOffset
	t.Cooldown = c.Portal.Cooldown
	t.SafetyMargin = c.Portal.SafetyMargin
	t.MinExitSpeed = c.Portal.MinExitSpeed
	t.ExitKick = c.Portal.ExitKick
	t.PitchLimit = c.Look.PitchLimit
}

// ApplyPipeline copies render tuning. Offsets take effect on the next
// placement; target size only at construction.
func (c Config) ApplyPipeline(p *render.Pipeline) {
	p.FOV = c.Render.FOV
	p.MaskOffset = c.Render.MaskOffset
	p.SurfaceOffset = c.Render.SurfaceOffset
	p.SetClipping(c.Render.Clipping)
}
