// MTL (material library) parser.

package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/meshcam/pkg/math"
)

// Material is one "newmtl" block of a material library.
type Material struct {
	Name        string
	Ambient     math.Vec3 // Ka
	Diffuse     math.Vec3 // Kd
	Specular    math.Vec3 // Ks
	Shininess   float32   // Ns
	Dissolve    float32   // d (1 = opaque)
	DiffuseMap  string    // map_Kd, as written in the file
	SpecularMap string    // map_Ks
	NormalMap   string    // norm / map_Bump / bump
}

// MTL holds the materials of a library in definition order.
type MTL struct {
	Materials []Material
}

// Find returns the material with the given name.
func (m *MTL) Find(name string) (*Material, bool) {
	for i := range m.Materials {
		if m.Materials[i].Name == name {
			return &m.Materials[i], true
		}
	}
	return nil, false
}

// ParseMTL reads a material library. name is used in error messages.
func ParseMTL(r io.Reader, name string) (*MTL, error) {
	lib := &MTL{}
	var cur *Material

	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		directive := fields[0]
		args := fields[1:]
		fail := func(err error) error {
			return &ParseError{File: name, Line: lineNo, Directive: directive, Err: err}
		}

		if directive == "newmtl" {
			if len(args) == 0 {
				return nil, fail(fmt.Errorf("%w: missing material name", ErrFieldCount))
			}
			lib.Materials = append(lib.Materials, Material{Name: strings.Join(args, " "), Dissolve: 1})
			cur = &lib.Materials[len(lib.Materials)-1]
			continue
		}
		if cur == nil {
			// Statements before the first newmtl have nothing to apply to.
			continue
		}

		switch directive {
		case "Ka", "Kd", "Ks":
			if len(args) != 3 {
				return nil, fail(fmt.Errorf("%w: want 3, got %d", ErrFieldCount, len(args)))
			}
			v, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			c := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
			switch directive {
			case "Ka":
				cur.Ambient = c
			case "Kd":
				cur.Diffuse = c
			default:
				cur.Specular = c
			}

		case "Ns", "d":
			if len(args) != 1 {
				return nil, fail(fmt.Errorf("%w: want 1, got %d", ErrFieldCount, len(args)))
			}
			v, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			if directive == "Ns" {
				cur.Shininess = v[0]
			} else {
				cur.Dissolve = v[0]
			}

		case "map_Kd", "map_Ks", "norm", "map_Bump", "bump":
			path, err := mapPath(args)
			if err != nil {
				return nil, fail(err)
			}
			switch directive {
			case "map_Kd":
				cur.DiffuseMap = path
			case "map_Ks":
				cur.SpecularMap = path
			default:
				cur.NormalMap = path
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, scanError(err, name, lineNo, "mtl")
	}

	return lib, nil
}

// mapPath extracts the file name from a texture map statement. Options such
// as "-bm 1.0" precede the name; the name is the trailing field.
func mapPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: missing texture file", ErrFieldCount)
	}
	return args[len(args)-1], nil
}
