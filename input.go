package main

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/braheezy/virtulouvre/camera"
	"github.com/braheezy/virtulouvre/scene"
)

var keyNames = map[string]glfw.Key{
	"space":        glfw.KeySpace,
	"escape":       glfw.KeyEscape,
	"tab":          glfw.KeyTab,
	"enter":        glfw.KeyEnter,
	"up":           glfw.KeyUp,
	"down":         glfw.KeyDown,
	"left":         glfw.KeyLeft,
	"right":        glfw.KeyRight,
	"leftshift":    glfw.KeyLeftShift,
	"rightshift":   glfw.KeyRightShift,
	"leftcontrol":  glfw.KeyLeftControl,
	"rightcontrol": glfw.KeyRightControl,
	"leftalt":      glfw.KeyLeftAlt,
	"rightalt":     glfw.KeyRightAlt,
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[strings.ToLower(string(c))] = glfw.KeyA + glfw.Key(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
}

func parseKey(name string) (glfw.Key, error) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return glfw.KeyUnknown, errors.Errorf("unknown key %q", name)
	}
	return key, nil
}

type boundKey struct {
	key    glfw.Key
	action scene.Action
}

// Input turns glfw state into the per-frame snapshot the camera consumes:
// held movement keys and the cursor delta since the previous frame.
type Input struct {
	window   *glfw.Window
	bindings []boundKey

	firstMouse   bool
	lastX, lastY float64

	captured     bool
	captureHeld  bool
	scrollOffset float64
}

func NewInput(window *glfw.Window, bindings []scene.Binding) (*Input, error) {
	in := &Input{window: window, firstMouse: true}
	for _, b := range bindings {
		key, err := parseKey(b.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "binding for %+v", b.Action)
		}
		in.bindings = append(in.bindings, boundKey{key: key, action: b.Action})
	}
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		in.scrollOffset += yoff
	})
	return in, nil
}

// Poll reads the held keys and handles window actions. It returns the
// movement snapshot and the cursor delta, y inverted so up is positive.
// The cursor only turns the camera while it is captured.
func (in *Input) Poll() (keys camera.KeySet, dx, dy float32) {
	captureDown := false
	for _, b := range in.bindings {
		if in.window.GetKey(b.key) != glfw.Press {
			continue
		}
		switch b.action.Window {
		case scene.NoWindowAction:
			keys.Press(b.action.Movement)
		case scene.ToggleCapture:
			captureDown = true
		case scene.Quit:
			in.window.SetShouldClose(true)
		}
	}
	if captureDown && !in.captureHeld {
		in.SetCaptured(!in.captured)
	}
	in.captureHeld = captureDown

	xpos, ypos := in.window.GetCursorPos()
	if in.firstMouse {
		in.lastX, in.lastY = xpos, ypos
		in.firstMouse = false
	}
	dx = float32(xpos - in.lastX)
	dy = float32(in.lastY - ypos) // reversed since y-coordinates go from bottom to top
	in.lastX, in.lastY = xpos, ypos

	if !in.captured {
		return keys, 0, 0
	}
	return keys, dx, dy
}

// Scroll returns the wheel movement since the last call.
func (in *Input) Scroll() float64 {
	s := in.scrollOffset
	in.scrollOffset = 0
	return s
}

func (in *Input) SetCaptured(captured bool) {
	in.captured = captured
	if captured {
		in.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		in.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	// the cursor jumps when the mode changes
	in.firstMouse = true
}

func (in *Input) Captured() bool {
	return in.captured
}
