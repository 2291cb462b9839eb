package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default orientation and tuning for the museum walkthrough.
const (
	DefaultYaw   = -90.0 // facing -Z
	DefaultPitch = 0.0

	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 200.0
)

// Config carries every tunable of the controller. Speeds are in world units
// per second, accelerations in units per second squared and rates per second.
type Config struct {
	// BaseSpeed is the horizontal acceleration applied while a direction key is held.
	BaseSpeed        float32
	SprintMultiplier float32
	MaxVelocity      float32
	Gravity          float32
	// FlySpeed is the vertical nudge applied directly to the position while
	// flying and ascend or descend is held.
	FlySpeed         float32
	DecelerationRate float32

	GroundLevel   float32
	InitialHeight float32

	MouseSensitivity float32
	PitchLimit       float32

	// CollisionRadius is the clearance kept from every obstacle box.
	CollisionRadius float32
	Boundary        Rect

	// MaxDeltaTime caps a single step so a frame hitch cannot tunnel through geometry.
	MaxDeltaTime float32
}

// DefaultConfig returns the gallery tuning: walking settles at
// BaseSpeed/DecelerationRate = 5 u/s, sprinting at 10 u/s.
func DefaultConfig() Config {
	return Config{
		BaseSpeed:        40,
		SprintMultiplier: 2,
		MaxVelocity:      12,
		Gravity:          20,
		FlySpeed:         4,
		DecelerationRate: 8,
		GroundLevel:      0,
		InitialHeight:    1.7,
		MouseSensitivity: 0.1,
		PitchLimit:       89,
		CollisionRadius:  0.3,
		Boundary:         Rect{MinX: -30, MaxX: 30, MinZ: -30, MaxZ: 30},
		MaxDeltaTime:     0.1,
	}
}

// FloorHeight is the eye height the grounded camera rests at.
func (c Config) FloorHeight() float32 {
	return c.GroundLevel + c.InitialHeight
}

// Rect is an axis-aligned extent on the X/Z plane.
type Rect struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// Contains reports whether (x, z) lies inside the rectangle, edges included.
func (r Rect) Contains(x, z float32) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Projection is what the renderer needs to build a perspective transform.
// FOV is in degrees.
type Projection struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

// Matrix returns the perspective projection matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.Aspect, p.Near, p.Far)
}

// Pose is the eye position, the point looked at and the camera up vector.
type Pose struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// ViewMatrix returns the look-at matrix for the pose.
func (p Pose) ViewMatrix() mgl32.Mat4 {
	return lookAt(p.Eye, p.Target, p.Up)
}

func lookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	forward, ok := normalize(target.Sub(eye))
	if !ok {
		return mgl32.Ident4()
	}
	worldUp, ok := normalize(up)
	if !ok {
		worldUp = mgl32.Vec3{0, 1, 0}
	}
	right, ok := normalize(forward.Cross(worldUp))
	if !ok {
		return mgl32.Ident4()
	}
	camUp := right.Cross(forward)
	rotation := mgl32.Mat4{
		right.X(), camUp.X(), -forward.X(), 0,
		right.Y(), camUp.Y(), -forward.Y(), 0,
		right.Z(), camUp.Z(), -forward.Z(), 0,
		0, 0, 0, 1,
	}
	translation := mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z())

	return rotation.Mul4(translation)
}
