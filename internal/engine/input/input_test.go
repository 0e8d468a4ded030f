package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshcam/internal/engine/camera"
)

func TestFrame_MouseSummed(t *testing.T) {
	in := New(DefaultBindings())
	in.Push(Event{Type: EventMouseMove, MouseX: 3, MouseY: -1})
	in.Push(Event{Type: EventMouseMove, MouseX: 4, MouseY: 6})

	f := in.Frame()
	if f.Mouse != (camera.MouseDelta{X: 7, Y: 5}) {
		t.Errorf("Mouse = %+v, want {7 5}", f.Mouse)
	}

	// Drained
	if f := in.Frame(); f.Mouse != (camera.MouseDelta{}) {
		t.Errorf("second frame Mouse = %+v, want zero", f.Mouse)
	}
}

func TestFrame_KeysHeldUntilReleased(t *testing.T) {
	in := New(DefaultBindings())

	in.Push(Event{Type: EventKeyDown, Key: "W"})
	in.Push(Event{Type: EventKeyDown, Key: "left"})
	f := in.Frame()
	want := camera.KeyState{Forward: true, Left: true}
	if f.Keys != want {
		t.Errorf("Keys = %+v, want %+v", f.Keys, want)
	}
	if !in.IsKeyPressed("w") {
		t.Error("IsKeyPressed(w) = false after key down")
	}

	f = in.Frame()
	if f.Keys != want {
		t.Errorf("held Keys = %+v, want %+v", f.Keys, want)
	}
	if in.IsKeyPressed("w") {
		t.Error("IsKeyPressed(w) = true without a new key down")
	}
	if !in.IsKeyHeld("w") {
		t.Error("IsKeyHeld(w) = false")
	}

	in.Push(Event{Type: EventKeyUp, Key: "w"})
	f = in.Frame()
	if f.Keys != (camera.KeyState{Left: true}) {
		t.Errorf("Keys after release = %+v", f.Keys)
	}
}

func TestFrame_Bindings(t *testing.T) {
	tests := []struct {
		key  string
		want camera.KeyState
	}{
		{"w", camera.KeyState{Forward: true}},
		{"up", camera.KeyState{Forward: true}},
		{"s", camera.KeyState{Back: true}},
		{"down", camera.KeyState{Back: true}},
		{"a", camera.KeyState{Left: true}},
		{"d", camera.KeyState{Right: true}},
		{"right", camera.KeyState{Right: true}},
		{"space", camera.KeyState{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			in := New(DefaultBindings())
			in.Push(Event{Type: EventKeyDown, Key: tt.key})
			if got := in.Frame().Keys; got != tt.want {
				t.Errorf("Keys = %+v, want %+v", got, tt.want)
			}
		})
	}

	// Custom bindings replace the defaults.
	in := New(Bindings{Forward: []string{"i"}})
	in.Push(Event{Type: EventKeyDown, Key: "w"})
	in.Push(Event{Type: EventKeyDown, Key: "i"})
	if got := in.Frame().Keys; got != (camera.KeyState{Forward: true}) {
		t.Errorf("custom Keys = %+v", got)
	}
}

func TestFrame_Quit(t *testing.T) {
	in := New(DefaultBindings())
	in.Push(Event{Type: EventQuit})
	if !in.Frame().Quit {
		t.Error("Quit = false")
	}
	if in.Frame().Quit {
		t.Error("Quit should not persist")
	}
}

const testScript = `
frames:
  - press: [w]
    repeat: 3
  - mouse: [10, -2]
    repeat: 2
  - release: [w]
    press: [d]
  - quit: true
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	if len(s.Frames) != 4 {
		t.Fatalf("len(Frames) = %d, want 4", len(s.Frames))
	}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}
	if s.Frames[1].Mouse != [2]int{10, -2} {
		t.Errorf("Frames[1].Mouse = %v", s.Frames[1].Mouse)
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "frames:\n  - jump: true\n"},
		{"bad mouse", "frames:\n  - mouse: fast\n"},
		{"negative repeat", "frames:\n  - repeat: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	_, err := ParseScript(strings.NewReader("frames:\n  - repeat: -2\n"))
	if !errors.Is(err, ErrInvalidScript) {
		t.Errorf("error = %v, want ErrInvalidScript", err)
	}
}

func TestParseScript_Empty(t *testing.T) {
	s, err := ParseScript(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestScript_Play(t *testing.T) {
	s, err := ParseScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatal(err)
	}

	var frames []Frame
	s.Play(New(DefaultBindings()), func(f Frame) bool {
		frames = append(frames, f)
		return true
	})

	if len(frames) != 7 {
		t.Fatalf("played %d frames, want 7", len(frames))
	}
	for i := 0; i < 5; i++ {
		if !frames[i].Keys.Forward {
			t.Errorf("frame %d: forward not held", i)
		}
	}
	for _, i := range []int{3, 4} {
		if frames[i].Mouse != (camera.MouseDelta{X: 10, Y: -2}) {
			t.Errorf("frame %d Mouse = %+v", i, frames[i].Mouse)
		}
	}
	if frames[5].Keys != (camera.KeyState{Right: true}) {
		t.Errorf("frame 5 Keys = %+v", frames[5].Keys)
	}
	if !frames[6].Quit || !frames[6].Keys.Right {
		t.Errorf("frame 6 = %+v", frames[6])
	}
}

func TestScript_PlayStops(t *testing.T) {
	s, err := ParseScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	s.Play(New(DefaultBindings()), func(Frame) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("played %d frames, want 2", n)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing script error = %v", err)
	}
}
