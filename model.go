package main

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/udhos/gwob"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Model is a scene OBJ ready to draw, with its placement in the gallery.
type Model struct {
	texturesLoaded map[string]Texture // to avoid loading the same texture more than once
	meshes         []*Mesh
	directory      string
	transform      mgl32.Mat4
}

// LoadModel loads an OBJ and its MTL library (if the OBJ names one) and
// places it at position with a uniform scale.
func LoadModel(path string, position mgl32.Vec3, scale float32) (*Model, error) {
	m := &Model{
		texturesLoaded: make(map[string]Texture),
		directory:      filepath.Dir(path),
		transform:      mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(mgl32.Scale3D(scale, scale, scale)),
	}

	obj, err := gwob.NewObjFromFile(path, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load OBJ model %q", path)
	}

	var mtlLib gwob.MaterialLib
	if obj.Mtllib != "" {
		mtlPath := filepath.Join(m.directory, obj.Mtllib)
		mtlLib, err = gwob.ReadMaterialLibFromFile(mtlPath, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load MTL file %q", mtlPath)
		}
	}

	// Each group in the OBJ becomes one mesh
	for _, group := range obj.Groups {
		mesh, err := m.processMesh(group, obj, mtlLib)
		if err != nil {
			m.Delete()
			return nil, errors.Wrapf(err, "model %q", path)
		}
		if mesh != nil {
			m.meshes = append(m.meshes, mesh)
		}
	}

	return m, nil
}

// processMesh converts one OBJ group into a Mesh. Empty groups yield nil.
func (m *Model) processMesh(group *gwob.Group, obj *gwob.Obj, mtlLib gwob.MaterialLib) (*Mesh, error) {
	if group.IndexCount == 0 {
		return nil, nil
	}

	var vertices []Vertex
	var indices []uint32

	floatsPerVertex := obj.StrideSize / 4
	for i := group.IndexBegin; i < group.IndexBegin+group.IndexCount; i++ {
		base := obj.Indices[i] * floatsPerVertex

		var vertex Vertex
		if off := base + obj.StrideOffsetPosition/4; off+2 < len(obj.Coord) {
			vertex.Position = mgl32.Vec3{obj.Coord[off], obj.Coord[off+1], obj.Coord[off+2]}
		}
		if off := base + obj.StrideOffsetTexture/4; obj.TextCoordFound && off+1 < len(obj.Coord) {
			vertex.TexCoords = mgl32.Vec2{obj.Coord[off], 1.0 - obj.Coord[off+1]}
		}
		if off := base + obj.StrideOffsetNormal/4; obj.NormCoordFound && off+2 < len(obj.Coord) {
			vertex.Normal = mgl32.Vec3{obj.Coord[off], obj.Coord[off+1], obj.Coord[off+2]}
		}

		vertices = append(vertices, vertex)
		indices = append(indices, uint32(len(vertices)-1))
	}

	diffuse := mgl32.Vec3{0.8, 0.8, 0.8}
	var textures []Texture
	if material, exists := mtlLib.Lib[group.Usemtl]; exists {
		diffuse = mgl32.Vec3{material.Kd[0], material.Kd[1], material.Kd[2]}
		if material.MapKd != "" {
			texture, err := m.loadTexture(material.MapKd, "texture_diffuse")
			if err != nil {
				return nil, err
			}
			textures = append(textures, texture)
		}
	}

	return NewMesh(vertices, indices, textures, diffuse), nil
}

func (m *Model) loadTexture(path, texType string) (Texture, error) {
	if texture, loaded := m.texturesLoaded[path]; loaded {
		return texture, nil
	}
	id, err := TextureFromFile(filepath.Join(m.directory, path))
	if err != nil {
		return Texture{}, err
	}
	texture := Texture{ID: id, Type: texType, Path: path}
	m.texturesLoaded[path] = texture
	return texture, nil
}

// Draw renders every mesh with the model transform.
func (m *Model) Draw(shader *Shader) {
	shader.setMat4("model", m.transform)
	for _, mesh := range m.meshes {
		mesh.Draw(shader)
	}
}

// Delete frees the meshes and textures.
func (m *Model) Delete() {
	for _, mesh := range m.meshes {
		mesh.Delete()
	}
	for _, texture := range m.texturesLoaded {
		gl.DeleteTextures(1, &texture.ID)
	}
	m.meshes = nil
	m.texturesLoaded = map[string]Texture{}
}

// TextureFromFile decodes an image (PNG, JPEG, BMP or TIFF) and uploads it as
// an RGBA texture, flipped so that row 0 is the bottom.
func TextureFromFile(filename string) (uint32, error) {
	textureFile, err := os.Open(filename)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open texture file")
	}
	defer textureFile.Close()

	textureImage, _, err := image.Decode(textureFile)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to decode texture file %q", filename)
	}

	bounds := textureImage.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), textureImage, bounds.Min, draw.Src)

	// OpenGL expects the first row at the bottom
	stride := rgba.Stride
	pixelData := make([]byte, len(rgba.Pix))
	for y := 0; y < height; y++ {
		copy(pixelData[y*stride:(y+1)*stride], rgba.Pix[(height-1-y)*stride:(height-y)*stride])
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixelData))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	return textureID, nil
}
