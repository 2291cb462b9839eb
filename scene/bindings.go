package scene

import (
	"sort"
	"strings"

	"github.com/braheezy/virtulouvre/camera"
)

// Action is a bindable input. When Window is NoWindowAction the binding
// drives Movement; otherwise Movement is ignored.
type Action struct {
	Movement camera.Movement
	Window   WindowAction
}

// WindowAction is an input the window handles itself rather than the camera.
type WindowAction int

const (
	NoWindowAction WindowAction = iota
	ToggleCapture
	Quit
)

var windowActionNames = map[string]WindowAction{
	"capture": ToggleCapture,
	"quit":    Quit,
}

// ParseAction resolves a binding name. Movement names are those of
// camera.Movement; "capture" and "quit" are window actions.
func ParseAction(name string) (Action, bool) {
	if m, ok := camera.ParseMovement(name); ok {
		return Action{Movement: m}, true
	}
	if w, ok := windowActionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return Action{Window: w}, true
	}
	return Action{}, false
}

// DefaultBindings is the stock key table, action name to key name.
// Fly and ascend share Space so that the first press takes off.
func DefaultBindings() map[string]string {
	return map[string]string{
		"forward":  "W",
		"backward": "S",
		"left":     "A",
		"right":    "D",
		"sprint":   "LeftShift",
		"fly":      "Space",
		"ascend":   "Space",
		"descend":  "LeftControl",
		"land":     "L",
		"capture":  "Tab",
		"quit":     "Escape",
	}
}

// Binding pairs a key name with the action it triggers.
type Binding struct {
	Key    string
	Action Action
}

// ResolveBindings merges the scene's bindings over DefaultBindings and
// returns them sorted by action name. Names are validated by Parse.
func (d *Description) ResolveBindings() []Binding {
	table := DefaultBindings()
	for action, key := range d.Bindings {
		table[strings.ToLower(strings.TrimSpace(action))] = key
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Binding, 0, len(names))
	for _, name := range names {
		action, ok := ParseAction(name)
		if !ok {
			continue
		}
		out = append(out, Binding{Key: table[name], Action: action})
	}
	return out
}
