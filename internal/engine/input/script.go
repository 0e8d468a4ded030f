package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned for scripts that decode but make no sense.
var ErrInvalidScript = errors.New("invalid input script")

// ScriptFrame describes one or more identical frames of scripted input.
// Press and Release apply on the first of the repeated frames; Mouse applies
// on every one.
type ScriptFrame struct {
	Repeat  int      `yaml:"repeat"`
	Mouse   [2]int   `yaml:"mouse"`
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
	Quit    bool     `yaml:"quit"`
}

// Script is a recorded input sequence.
//
//	frames:
//	  - press: [w]
//	    repeat: 30
//	  - mouse: [12, -4]
//	    release: [w]
type Script struct {
	Frames []ScriptFrame `yaml:"frames"`
}

// LoadScript reads a YAML input script from disk.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes a YAML input script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return nil, fmt.Errorf("%w: frame %d has negative repeat %d", ErrInvalidScript, i+1, f.Repeat)
		}
	}
	return &s, nil
}

// Len returns the number of frames the script expands to.
func (s *Script) Len() int {
	n := 0
	for _, f := range s.Frames {
		n += max(f.Repeat, 1)
	}
	return n
}

// Play feeds the script through in and calls fn with every resulting frame.
// It stops early when fn returns false.
func (s *Script) Play(in *Input, fn func(Frame) bool) {
	for _, sf := range s.Frames {
		for r := 0; r < max(sf.Repeat, 1); r++ {
			if r == 0 {
				for _, k := range sf.Press {
					in.Push(Event{Type: EventKeyDown, Key: k})
				}
				for _, k := range sf.Release {
					in.Push(Event{Type: EventKeyUp, Key: k})
				}
				if sf.Quit {
					in.Push(Event{Type: EventQuit})
				}
			}
			if sf.Mouse != [2]int{} {
				in.Push(Event{Type: EventMouseMove, MouseX: sf.Mouse[0], MouseY: sf.Mouse[1]})
			}
			if !fn(in.Frame()) {
				return
			}
		}
	}
}
