package main

import (
	"flag"
	"log"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/braheezy/virtulouvre/camera"
	"github.com/braheezy/virtulouvre/scene"
)

// Field of view range the settings allow; the camera itself does not clamp.
const (
	minFOV = 60.0
	maxFOV = 150.0
)

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "scenes/louvre.yaml", "Scene description to walk through")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	flag.Parse()

	desc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatal(err)
	}
	root := filepath.Dir(*scenePath)

	/*
	 * GLFW init and configure
	 */
	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(*width, *height, "VirtuLouvre - "+desc.Name, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatal(err)
	}
	gl.Enable(gl.DEPTH_TEST)

	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	player, err := desc.NewController(root, aspectRatio(fbWidth, fbHeight))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("scene %q: %d collision boxes, boundary %+v", desc.Name, len(player.Obstacles()), player.Config().Boundary)

	// Keep the projection in step with the framebuffer.
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width int, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if height > 0 {
			player.SetAspect(aspectRatio(width, height))
		}
	})

	input, err := NewInput(window, desc.ResolveBindings())
	if err != nil {
		log.Fatal(err)
	}
	input.SetCaptured(true)

	shader, err := NewShader(filepath.Join("shaders", "museum.vs"), filepath.Join("shaders", "museum.fs"))
	if err != nil {
		log.Fatal(err)
	}
	models, err := loadModels(desc, root)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		for _, m := range models {
			m.Delete()
		}
	}()

	lastFrame := glfw.GetTime()
	for !window.ShouldClose() {
		currentFrame := glfw.GetTime()
		deltaTime := float32(currentFrame - lastFrame)
		lastFrame = currentFrame
		glfw.PollEvents()

		wasCaptured := input.Captured()
		keys, dx, dy := input.Poll()
		if input.Captured() != wasCaptured {
			log.Printf("mouse capture: %v", input.Captured())
		}
		if scroll := input.Scroll(); scroll != 0 {
			fov := mgl32.Clamp(player.Projection().FOV-float32(scroll)*5, minFOV, maxFOV)
			player.SetFOV(fov)
		}

		// mouse, keyboard, physics, then read back the pose
		player.Frame(dx, dy, keys, deltaTime)

		render(shader, models, player)
		window.SwapBuffers()
	}
}

func render(shader *Shader, models []*Model, player *camera.Controller) {
	gl.ClearColor(0.08, 0.08, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	pose := player.ViewPose()
	shader.use()
	shader.setMat4("projection", player.Projection().Matrix())
	shader.setMat4("view", pose.ViewMatrix())
	shader.setVec3("viewPos", pose.Eye)
	shader.setInt("texture_diffuse1", 0)

	for _, m := range models {
		m.Draw(shader)
	}
}

func loadModels(desc *scene.Description, root string) ([]*Model, error) {
	var models []*Model
	for _, m := range desc.Models {
		model, err := LoadModel(desc.ModelPath(root, m), mgl32.Vec3(m.Position), m.EffectiveScale())
		if err != nil {
			for _, loaded := range models {
				loaded.Delete()
			}
			return nil, errors.Wrapf(err, "scene %q", desc.Name)
		}
		models = append(models, model)
	}
	return models, nil
}

func aspectRatio(width, height int) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}
