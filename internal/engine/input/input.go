// Package input aggregates keyboard and mouse events into per-frame camera
// input. Events come from a platform layer or from a replayed script.
package input

import (
	"slices"
	"strings"

	"github.com/Faultbox/meshcam/internal/engine/camera"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
// Mouse motion is relative: MouseX and MouseY are the pointer delta.
type Event struct {
	Type   EventType
	Key    string
	MouseX int
	MouseY int
}

// Bindings maps movement actions to key names. Key names are case-insensitive.
type Bindings struct {
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
}

// DefaultBindings returns WASD plus the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: []string{"w", "up"},
		Back:    []string{"s", "down"},
		Left:    []string{"a", "left"},
		Right:   []string{"d", "right"},
	}
}

// Frame is the input consumed by one camera update.
type Frame struct {
	Mouse camera.MouseDelta
	Keys  camera.KeyState
	Quit  bool
}

// Input handles all input processing.
type Input struct {
	queue    []Event
	events   []Event
	held     map[string]bool
	bindings Bindings
}

// New creates a new input handler.
func New(b Bindings) *Input {
	return &Input{
		queue:    make([]Event, 0, 16),
		events:   make([]Event, 0, 16),
		held:     make(map[string]bool),
		bindings: b,
	}
}

// Push queues an event for the next Frame.
func (i *Input) Push(e Event) {
	e.Key = normalizeKey(e.Key)
	i.queue = append(i.queue, e)
}

// Frame drains the queue. Mouse deltas are summed; keys stay held until a
// key-up event arrives.
func (i *Input) Frame() Frame {
	i.events, i.queue = i.queue, i.events[:0]

	var f Frame
	for _, e := range i.events {
		switch e.Type {
		case EventQuit:
			f.Quit = true
		case EventKeyDown:
			i.held[e.Key] = true
		case EventKeyUp:
			delete(i.held, e.Key)
		case EventMouseMove:
			f.Mouse.X += e.MouseX
			f.Mouse.Y += e.MouseY
		}
	}

	f.Keys = camera.KeyState{
		Forward: i.anyHeld(i.bindings.Forward),
		Back:    i.anyHeld(i.bindings.Back),
		Left:    i.anyHeld(i.bindings.Left),
		Right:   i.anyHeld(i.bindings.Right),
	}
	return f
}

// Events returns the events drained by the last Frame.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down during the last Frame.
func (i *Input) IsKeyPressed(key string) bool {
	key = normalizeKey(key)
	return slices.ContainsFunc(i.events, func(e Event) bool {
		return e.Type == EventKeyDown && e.Key == key
	})
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(key string) bool {
	return i.held[normalizeKey(key)]
}

func (i *Input) anyHeld(keys []string) bool {
	for _, k := range keys {
		if i.held[normalizeKey(k)] {
			return true
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
