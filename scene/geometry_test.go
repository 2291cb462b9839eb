package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/virtulouvre/camera"
)

const galleryOBJ = `# two exhibits
v 0 0 0
v 1 0 0
v 1 2 1
v 0 2 1
v 5 0 -1
v 6 3 -1
v 5 3 -2
g pedestal
f 1 2 3
f 1 3 4
g wall
f 5 6 7
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadObstaclesPerGroup(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gallery.obj", galleryOBJ)

	boxes, err := LoadObstacles(path, mgl32.Vec3{}, 1)
	if err != nil {
		t.Fatalf("LoadObstacles: %v", err)
	}
	want := []camera.AABB{
		{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 1}},
		{Min: mgl32.Vec3{5, 0, -2}, Max: mgl32.Vec3{6, 3, -1}},
	}
	if len(boxes) != len(want) {
		t.Fatalf("expected %d boxes, got %d: %+v", len(want), len(boxes), boxes)
	}
	for i := range want {
		if !boxes[i].Min.ApproxEqual(want[i].Min) || !boxes[i].Max.ApproxEqual(want[i].Max) {
			t.Errorf("box %d: expected %+v, got %+v", i, want[i], boxes[i])
		}
	}
}

func TestLoadObstaclesPlacement(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gallery.obj", galleryOBJ)

	boxes, err := LoadObstacles(path, mgl32.Vec3{10, 0, 0}, 2)
	if err != nil {
		t.Fatalf("LoadObstacles: %v", err)
	}
	if len(boxes) == 0 {
		t.Fatal("no boxes loaded")
	}
	want := camera.AABB{Min: mgl32.Vec3{10, 0, 0}, Max: mgl32.Vec3{12, 4, 2}}
	if !boxes[0].Min.ApproxEqual(want.Min) || !boxes[0].Max.ApproxEqual(want.Max) {
		t.Errorf("placed pedestal: expected %+v, got %+v", want, boxes[0])
	}
}

func TestLoadObstaclesMissingFile(t *testing.T) {
	if _, err := LoadObstacles(filepath.Join(t.TempDir(), "nope.obj"), mgl32.Vec3{}, 1); err == nil {
		t.Fatal("expected an error for a missing model")
	}
}
