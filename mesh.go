package main

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
}

type Texture struct {
	ID   uint32
	Type string
	Path string
}

// Mesh is one OBJ group uploaded to the GPU.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
	textures []Texture
	diffuse  mgl32.Vec3
	VAO      uint32
	VBO      uint32
	EBO      uint32
}

func NewMesh(vertices []Vertex, indices []uint32, textures []Texture, diffuse mgl32.Vec3) *Mesh {
	mesh := &Mesh{
		vertices: vertices,
		indices:  indices,
		textures: textures,
		diffuse:  diffuse,
	}
	mesh.setupMesh()
	return mesh
}

func (mesh *Mesh) Draw(shader *Shader) {
	// Bind appropriate textures
	var diffuseNr uint32 = 1
	for i, texture := range mesh.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		if texture.Type == "texture_diffuse" {
			shader.setInt(fmt.Sprintf("%s%d", texture.Type, diffuseNr), int32(i))
			diffuseNr++
		}
		gl.BindTexture(gl.TEXTURE_2D, texture.ID)
	}
	// untextured exhibits fall back to the material colour
	shader.setBool("useTexture", diffuseNr > 1)
	shader.setVec3("diffuseColor", mesh.diffuse)

	gl.BindVertexArray(mesh.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(mesh.indices)), gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)

	// Set everything back to defaults
	gl.ActiveTexture(gl.TEXTURE0)
}

// Delete frees the GPU buffers.
func (mesh *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
	gl.DeleteBuffers(1, &mesh.EBO)
}

func (mesh *Mesh) setupMesh() {
	if len(mesh.vertices) == 0 || len(mesh.indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &mesh.VAO)
	gl.GenBuffers(1, &mesh.VBO)
	gl.GenBuffers(1, &mesh.EBO)

	gl.BindVertexArray(mesh.VAO)

	// Load data into vertex buffers
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.vertices)*int(unsafe.Sizeof(Vertex{})), unsafe.Pointer(&mesh.vertices[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.indices)*int(unsafe.Sizeof(uint32(0))), unsafe.Pointer(&mesh.indices[0]), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(Vertex{}))
	// Vertex Positions
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.Ptr(nil))
	// Vertex Normals
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Normal))
	// Vertex Texture Coords
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.TexCoords))

	gl.BindVertexArray(0)
}
