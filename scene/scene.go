// Package scene loads a walkthrough scene description: the gallery boundary,
// the spawn pose, controller tuning, key bindings and the models whose
// geometry the camera collides with.
package scene

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/braheezy/virtulouvre/camera"
)

// Description is the YAML scene document.
type Description struct {
	Name       string            `yaml:"name"`
	Boundary   *Boundary         `yaml:"boundary"`
	Spawn      Spawn             `yaml:"spawn"`
	Projection ProjectionConfig  `yaml:"projection"`
	Controller ControllerConfig  `yaml:"controller"`
	Obstacles  []Box             `yaml:"obstacles"`
	Models     []Model           `yaml:"models"`
	Bindings   map[string]string `yaml:"bindings"`
}

type Boundary struct {
	MinX float32 `yaml:"min_x"`
	MaxX float32 `yaml:"max_x"`
	MinZ float32 `yaml:"min_z"`
	MaxZ float32 `yaml:"max_z"`
}

// Spawn is where the visitor starts. A nil position means the controller's
// default: the origin at eye height.
type Spawn struct {
	Position *[3]float32 `yaml:"position"`
	Yaw      *float32    `yaml:"yaw"`
	Pitch    float32     `yaml:"pitch"`
	Flying   bool        `yaml:"flying"`
}

type ProjectionConfig struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// ControllerConfig overrides camera.DefaultConfig field by field. Absent
// keys keep the default.
type ControllerConfig struct {
	BaseSpeed        *float32 `yaml:"base_speed"`
	SprintMultiplier *float32 `yaml:"sprint_multiplier"`
	MaxVelocity      *float32 `yaml:"max_velocity"`
	Gravity          *float32 `yaml:"gravity"`
	FlySpeed         *float32 `yaml:"fly_speed"`
	DecelerationRate *float32 `yaml:"deceleration_rate"`
	GroundLevel      *float32 `yaml:"ground_level"`
	InitialHeight    *float32 `yaml:"initial_height"`
	MouseSensitivity *float32 `yaml:"mouse_sensitivity"`
	PitchLimit       *float32 `yaml:"pitch_limit"`
	CollisionRadius  *float32 `yaml:"collision_radius"`
	MaxDeltaTime     *float32 `yaml:"max_delta_time"`
}

// Box is an explicit obstacle.
type Box struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// Model is an OBJ placed in the scene. Collide marks it as collision geometry.
type Model struct {
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
	Collide  bool       `yaml:"collide"`
}

// Load reads and parses a scene file.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scene %q", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", path)
	}
	return d, nil
}

// Parse decodes and validates a scene document. Unknown keys are errors; an
// empty document is the default scene.
func Parse(data []byte) (*Description, error) {
	var d Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode scene")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the parts of the description a controller cannot recover from.
func (d *Description) Validate() error {
	if b := d.Boundary; b != nil {
		if b.MinX >= b.MaxX || b.MinZ >= b.MaxZ {
			return errors.Errorf("boundary is empty: x [%v, %v] z [%v, %v]", b.MinX, b.MaxX, b.MinZ, b.MaxZ)
		}
	}
	p := d.Projection
	if p.FOV < 0 || (p.Near != 0 || p.Far != 0) && p.Near >= p.Far {
		return errors.Errorf("invalid projection: fov %v near %v far %v", p.FOV, p.Near, p.Far)
	}
	for i, b := range d.Obstacles {
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] > b.Max[axis] {
				return errors.Errorf("obstacle %d is inverted on axis %d", i, axis)
			}
		}
	}
	for i, m := range d.Models {
		if m.Path == "" {
			return errors.Errorf("model %d has no path", i)
		}
		if m.Scale < 0 {
			return errors.Errorf("model %q has negative scale", m.Path)
		}
	}
	for action := range d.Bindings {
		if _, ok := ParseAction(action); !ok {
			return errors.Errorf("unknown binding action %q", action)
		}
	}
	return nil
}

// Config merges the controller overrides onto camera.DefaultConfig.
func (d *Description) Config() camera.Config {
	cfg := camera.DefaultConfig()
	o := d.Controller
	set := func(dst *float32, src *float32) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.BaseSpeed, o.BaseSpeed)
	set(&cfg.SprintMultiplier, o.SprintMultiplier)
	set(&cfg.MaxVelocity, o.MaxVelocity)
	set(&cfg.Gravity, o.Gravity)
	set(&cfg.FlySpeed, o.FlySpeed)
	set(&cfg.DecelerationRate, o.DecelerationRate)
	set(&cfg.GroundLevel, o.GroundLevel)
	set(&cfg.InitialHeight, o.InitialHeight)
	set(&cfg.MouseSensitivity, o.MouseSensitivity)
	set(&cfg.PitchLimit, o.PitchLimit)
	set(&cfg.CollisionRadius, o.CollisionRadius)
	set(&cfg.MaxDeltaTime, o.MaxDeltaTime)

	if b := d.Boundary; b != nil {
		cfg.Boundary = camera.Rect{MinX: b.MinX, MaxX: b.MaxX, MinZ: b.MinZ, MaxZ: b.MaxZ}
	}
	return cfg
}

// CameraProjection fills in the perspective parameters, using the camera defaults
// for anything left at zero.
func (d *Description) CameraProjection(aspect float32) camera.Projection {
	p := camera.Projection{
		FOV:    camera.DefaultFOV,
		Aspect: aspect,
		Near:   camera.DefaultNear,
		Far:    camera.DefaultFar,
	}
	if d.Projection.FOV > 0 {
		p.FOV = d.Projection.FOV
	}
	if d.Projection.Near > 0 || d.Projection.Far > 0 {
		p.Near = d.Projection.Near
		p.Far = d.Projection.Far
	}
	return p
}

// CollisionBoxes returns the explicit boxes followed by the boxes of every
// colliding model. Relative model paths are resolved against root.
func (d *Description) CollisionBoxes(root string) ([]camera.AABB, error) {
	boxes := make([]camera.AABB, 0, len(d.Obstacles))
	for _, b := range d.Obstacles {
		boxes = append(boxes, camera.AABB{Min: mgl32.Vec3(b.Min), Max: mgl32.Vec3(b.Max)})
	}
	for _, m := range d.Models {
		if !m.Collide {
			continue
		}
		modelBoxes, err := LoadObstacles(d.ModelPath(root, m), mgl32.Vec3(m.Position), m.EffectiveScale())
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, modelBoxes...)
	}
	return boxes, nil
}

// ModelPath resolves a model's path against root.
func (d *Description) ModelPath(root string, m Model) string {
	if filepath.IsAbs(m.Path) {
		return m.Path
	}
	return filepath.Join(root, m.Path)
}

// NewController builds the camera for this scene and places it at the spawn.
// The spawn must be a position the camera is allowed to occupy.
func (d *Description) NewController(root string, aspect float32) (*camera.Controller, error) {
	obstacles, err := d.CollisionBoxes(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", d.Name)
	}

	c := camera.NewController(d.CameraProjection(aspect), d.Config(), obstacles...)
	if p := d.Spawn.Position; p != nil {
		c.SetPosition(mgl32.Vec3(*p))
	}
	yaw := float32(camera.DefaultYaw)
	if d.Spawn.Yaw != nil {
		yaw = *d.Spawn.Yaw
	}
	c.SetOrientation(yaw, d.Spawn.Pitch)
	c.SetFlying(d.Spawn.Flying)

	// a blocked spawn would become the last valid position and pin the camera
	if c.CheckCollision(c.Position()) {
		return nil, errors.Errorf("scene %q: spawn %v is outside the boundary or too close to an obstacle", d.Name, c.Position())
	}
	return c, nil
}

// EffectiveScale is Scale, with zero meaning unscaled.
func (m Model) EffectiveScale() float32 {
	if m.Scale == 0 {
		return 1
	}
	return m.Scale
}
