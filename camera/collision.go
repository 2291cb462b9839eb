package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned obstacle box in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsOf returns the smallest box containing every point. ok is false when
// points is empty.
func BoundsOf(points []mgl32.Vec3) (box AABB, ok bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box.Min = points[0]
	box.Max = points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			box.Min[i] = float32(math.Min(float64(box.Min[i]), float64(p[i])))
			box.Max[i] = float32(math.Max(float64(box.Max[i]), float64(p[i])))
		}
	}
	return box, true
}

// Translate returns the box moved by offset.
func (b AABB) Translate(offset mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// SpanDistanceSq is the squared distance from the box to the vertical
// segment at p's X/Z running from height below p up to p. It is zero when
// the segment touches the box.
func (b AABB) SpanDistanceSq(p mgl32.Vec3, height float32) float32 {
	if height < 0 {
		height = 0
	}
	dx := p.X() - clamp(p.X(), b.Min.X(), b.Max.X())
	dz := p.Z() - clamp(p.Z(), b.Min.Z(), b.Max.Z())
	var dy float32
	if bottom := p.Y() - height; bottom > b.Max.Y() {
		dy = bottom - b.Max.Y()
	} else if p.Y() < b.Min.Y() {
		dy = b.Min.Y() - p.Y()
	}
	return dx*dx + dy*dy + dz*dz
}

// CheckCollision reports whether the camera may not occupy candidate: it is
// outside the X/Z boundary, or the visitor's body comes closer than
// CollisionRadius to an obstacle. The body is the vertical span from the feet,
// InitialHeight below the eye, up to the eye at candidate. With a zero radius
// the body collides only when it touches a box.
func (c *Controller) CheckCollision(candidate mgl32.Vec3) bool {
	if !c.cfg.Boundary.Contains(candidate.X(), candidate.Z()) {
		return true
	}

	r := c.cfg.CollisionRadius
	if r < 0 {
		r = 0
	}
	for _, box := range c.obstacles {
		d := box.SpanDistanceSq(candidate, c.cfg.InitialHeight)
		if d == 0 || d < r*r {
			return true
		}
	}
	return false
}
