package camera

import "strings"

// Movement is a logical key the controller reacts to. Physical bindings live
// with the input source.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Sprint
	Ascend
	Descend
	Land
	Fly

	numMovements
)

var movementNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
	Left:     "left",
	Right:    "right",
	Sprint:   "sprint",
	Ascend:   "ascend",
	Descend:  "descend",
	Land:     "land",
	Fly:      "fly",
}

func (m Movement) String() string {
	if m < 0 || m >= numMovements {
		return "unknown"
	}
	return movementNames[m]
}

// ParseMovement maps a binding name such as "forward" back to its Movement.
func ParseMovement(name string) (Movement, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range movementNames {
		if n == name {
			return Movement(i), true
		}
	}
	return 0, false
}

// Movements lists every logical key in declaration order.
func Movements() []Movement {
	out := make([]Movement, 0, numMovements)
	for m := Forward; m < numMovements; m++ {
		out = append(out, m)
	}
	return out
}

// KeySet is the snapshot of movement keys held during one frame.
type KeySet uint16

// Keys builds a KeySet with the given movements held.
func Keys(held ...Movement) KeySet {
	var k KeySet
	for _, m := range held {
		k.Press(m)
	}
	return k
}

// Held reports whether m is down.
func (k KeySet) Held(m Movement) bool {
	return k&(1<<uint(m)) != 0
}

func (k *KeySet) Press(m Movement) {
	*k |= 1 << uint(m)
}

func (k *KeySet) Release(m Movement) {
	*k &^= 1 << uint(m)
}
