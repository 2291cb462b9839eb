package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/udhos/gwob"

	"github.com/braheezy/virtulouvre/camera"
)

// ObstaclesFromOBJ returns one box per OBJ group, around the positions the
// group indexes, scaled and then moved by offset.
func ObstaclesFromOBJ(obj *gwob.Obj, offset mgl32.Vec3, scale float32) []camera.AABB {
	var boxes []camera.AABB
	for _, group := range obj.Groups {
		points := groupPositions(obj, group)
		box, ok := camera.BoundsOf(points)
		if !ok {
			continue
		}
		boxes = append(boxes, camera.AABB{
			Min: box.Min.Mul(scale).Add(offset),
			Max: box.Max.Mul(scale).Add(offset),
		})
	}
	return boxes
}

// LoadObstacles parses the OBJ at path and returns its group boxes.
func LoadObstacles(path string, offset mgl32.Vec3, scale float32) ([]camera.AABB, error) {
	obj, err := gwob.NewObjFromFile(path, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load collision model %q", path)
	}
	return ObstaclesFromOBJ(obj, offset, scale), nil
}

// groupPositions reads the vertex positions a group indexes out of the
// interleaved coordinate array. StrideSize and the offsets are in bytes.
func groupPositions(obj *gwob.Obj, group *gwob.Group) []mgl32.Vec3 {
	floatsPerVertex := obj.StrideSize / 4
	posOffset := obj.StrideOffsetPosition / 4

	points := make([]mgl32.Vec3, 0, group.IndexCount)
	for i := group.IndexBegin; i < group.IndexBegin+group.IndexCount; i++ {
		if i < 0 || i >= len(obj.Indices) {
			break
		}
		base := obj.Indices[i]*floatsPerVertex + posOffset
		if base < 0 || base+2 >= len(obj.Coord) {
			continue
		}
		points = append(points, mgl32.Vec3{obj.Coord[base], obj.Coord[base+1], obj.Coord[base+2]})
	}
	return points
}
