// Package camera implements the first-person walkthrough camera: mouse look,
// walking and flying movement, gravity, and collision against the gallery
// boundary and obstacle boxes.
//
// A Controller is owned by the render loop. Each frame the loop applies the
// mouse delta, then the held keys, then integrates, and finally reads back
// ViewPose and Projection for drawing. Frame does all four steps in order.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Controller is the camera's whole mutable state. It is not safe for
// concurrent use; the obstacle list is never modified after construction.
type Controller struct {
	cfg        Config
	projection Projection
	obstacles  []AABB

	// kinematics
	position          mgl32.Vec3
	velocity          mgl32.Vec3
	lastValidPosition mgl32.Vec3

	// euler angles, degrees, yaw stored unwrapped
	yaw, pitch float32
	// derived basis
	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3

	flying    bool
	sprinting bool
	flyHeld   bool
}

// NewController creates a grounded camera at the origin, standing at the
// configured eye height and facing -Z. The obstacle slice is copied.
func NewController(proj Projection, cfg Config, obstacles ...AABB) *Controller {
	start := mgl32.Vec3{0, cfg.FloorHeight(), 0}
	c := &Controller{
		cfg:               cfg,
		projection:        proj,
		obstacles:         append([]AABB(nil), obstacles...),
		position:          start,
		lastValidPosition: start,
		yaw:               DefaultYaw,
		pitch:             DefaultPitch,
		front:             mgl32.Vec3{0, 0, -1},
		right:             mgl32.Vec3{1, 0, 0},
		up:                worldUp,
	}
	c.updateVectors()
	return c
}

// ProcessMouseMovement turns the camera. The caller passes yOffset with
// pointer-up positive so that moving the pointer up looks up.
func (c *Controller) ProcessMouseMovement(xOffset, yOffset float32) {
	c.yaw += xOffset * c.cfg.MouseSensitivity
	c.pitch += yOffset * c.cfg.MouseSensitivity
	c.pitch = clamp(c.pitch, -c.cfg.PitchLimit, c.cfg.PitchLimit)

	c.updateVectors()
}

// ProcessKeyboard applies one frame of held keys: sprint and flight flags,
// direct vertical nudges while flying, and horizontal acceleration. The
// resulting speed never exceeds MaxVelocity. The flags follow the keys even
// when deltaTime is skipped.
func (c *Controller) ProcessKeyboard(keys KeySet, deltaTime float32) {
	c.sprinting = keys.Held(Sprint)

	// land wins over fly; fly engages on the press edge only
	flyHeld := keys.Held(Fly)
	if keys.Held(Land) {
		c.flying = false
	} else if flyHeld && !c.flyHeld {
		c.flying = true
	}
	c.flyHeld = flyHeld

	dt, ok := c.step(deltaTime)
	if !ok {
		return
	}

	if c.flying {
		if keys.Held(Ascend) {
			c.position[1] += c.cfg.FlySpeed * dt
		}
		if keys.Held(Descend) {
			c.position[1] -= c.cfg.FlySpeed * dt
		}
	}

	// Sum the held directions first and normalize once, so diagonal
	// movement is no faster than a single key.
	forward, right := c.heading()
	var wish mgl32.Vec3
	if keys.Held(Forward) {
		wish = wish.Add(forward)
	}
	if keys.Held(Backward) {
		wish = wish.Sub(forward)
	}
	if keys.Held(Right) {
		wish = wish.Add(right)
	}
	if keys.Held(Left) {
		wish = wish.Sub(right)
	}
	if dir, ok := normalize(wish); ok {
		c.velocity = c.velocity.Add(dir.Mul(c.currentSpeed() * dt))
	}

	if speed := c.velocity.Len(); speed > c.cfg.MaxVelocity && speed > epsilon {
		c.velocity = c.velocity.Mul(c.cfg.MaxVelocity / speed)
	}
}

// Update integrates one step: gravity when grounded, the floor clamp, the
// collision test and damping. A colliding step is rejected entirely: the
// camera returns to its last valid position and all velocity is dropped.
func (c *Controller) Update(deltaTime float32) {
	dt, ok := c.step(deltaTime)
	if !ok {
		return
	}

	if !c.flying {
		c.velocity[1] -= c.cfg.Gravity * dt
	}

	candidate := c.position.Add(c.velocity.Mul(dt))

	if !c.flying {
		if floor := c.cfg.FloorHeight(); candidate.Y() < floor {
			candidate[1] = floor
			c.velocity[1] = 0
		}
	}

	if c.CheckCollision(candidate) {
		c.position = c.lastValidPosition
		c.velocity = mgl32.Vec3{}
	} else {
		c.lastValidPosition = candidate
		c.position = candidate
	}

	damping := 1 - c.cfg.DecelerationRate*dt
	if damping < 0 {
		damping = 0
	}
	c.velocity = c.velocity.Mul(damping)
}

// Frame runs one full frame in order: mouse, keyboard, integration.
func (c *Controller) Frame(xOffset, yOffset float32, keys KeySet, deltaTime float32) {
	c.ProcessMouseMovement(xOffset, yOffset)
	c.ProcessKeyboard(keys, deltaTime)
	c.Update(deltaTime)
}

// ViewPose returns the eye, the point one unit ahead of it, and the up vector.
func (c *Controller) ViewPose() Pose {
	return Pose{
		Eye:    c.position,
		Target: c.position.Add(c.front),
		Up:     c.up,
	}
}

// Projection returns the current projection parameters.
func (c *Controller) Projection() Projection {
	return c.projection
}

// SetFOV stores the field of view as given. Range limits are the caller's.
func (c *Controller) SetFOV(fov float32) {
	c.projection.FOV = fov
}

// SetAspect updates the aspect ratio, usually after a framebuffer resize.
func (c *Controller) SetAspect(aspect float32) {
	c.projection.Aspect = aspect
}

// Position is the eye position.
func (c *Controller) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition teleports the camera. The new position becomes the last valid
// one and velocity is cleared.
func (c *Controller) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.lastValidPosition = p
	c.velocity = mgl32.Vec3{}
}

// Velocity is in world units per second.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.velocity
}

// LastValidPosition is where a rejected step reverts to.
func (c *Controller) LastValidPosition() mgl32.Vec3 {
	return c.lastValidPosition
}

// Yaw in degrees, unwrapped.
func (c *Controller) Yaw() float32 {
	return c.yaw
}

// Pitch in degrees, within PitchLimit.
func (c *Controller) Pitch() float32 {
	return c.pitch
}

// SetOrientation sets yaw and pitch directly, clamping pitch.
func (c *Controller) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = clamp(pitch, -c.cfg.PitchLimit, c.cfg.PitchLimit)
	c.updateVectors()
}

// Front is the unit view direction.
func (c *Controller) Front() mgl32.Vec3 {
	return c.front
}

// Right is the unit vector to the camera's right.
func (c *Controller) Right() mgl32.Vec3 {
	return c.right
}

// Up is the camera's unit up vector.
func (c *Controller) Up() mgl32.Vec3 {
	return c.up
}

// Flying reports whether gravity and the floor clamp are off.
func (c *Controller) Flying() bool {
	return c.flying
}

// SetFlying switches flight mode without going through the keys.
func (c *Controller) SetFlying(flying bool) {
	c.flying = flying
}

// Sprinting reports whether sprint was held on the last keyboard update.
func (c *Controller) Sprinting() bool {
	return c.sprinting
}

// Config returns the tuning the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Obstacles returns the collision boxes the controller was built with.
func (c *Controller) Obstacles() []AABB {
	return c.obstacles
}

func (c *Controller) currentSpeed() float32 {
	if c.sprinting {
		return c.cfg.BaseSpeed * c.cfg.SprintMultiplier
	}
	return c.cfg.BaseSpeed
}

// step clamps deltaTime to MaxDeltaTime. Non-positive steps are skipped.
func (c *Controller) step(deltaTime float32) (float32, bool) {
	if deltaTime <= 0 || math.IsNaN(float64(deltaTime)) {
		return 0, false
	}
	if c.cfg.MaxDeltaTime > 0 && deltaTime > c.cfg.MaxDeltaTime {
		deltaTime = c.cfg.MaxDeltaTime
	}
	return deltaTime, true
}

// heading returns the horizontal forward and right directions for the
// current yaw. Both stay defined when looking straight up or down.
func (c *Controller) heading() (forward, right mgl32.Vec3) {
	sin, cos := math.Sincos(float64(mgl32.DegToRad(c.yaw)))
	return mgl32.Vec3{float32(cos), 0, float32(sin)}, mgl32.Vec3{float32(-sin), 0, float32(cos)}
}

// updateVectors recalculates front, right and up from the euler angles.
// When front is vertical, right comes from yaw alone.
func (c *Controller) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	if f, ok := normalize(front); ok {
		c.front = f
	}
	if r, ok := normalize(c.front.Cross(worldUp)); ok {
		c.right = r
	} else {
		_, c.right = c.heading()
	}
	if u, ok := normalize(c.right.Cross(c.front)); ok {
		c.up = u
	}
}
