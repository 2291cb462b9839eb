package camera

import "github.com/go-gl/mathgl/mgl32"

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-6

var worldUp = mgl32.Vec3{0, 1, 0}

// normalize returns v scaled to unit length. ok is false, and the zero vector
// is returned, when v is too short to carry a direction.
func normalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l < epsilon {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
