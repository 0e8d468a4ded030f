// OBJ (Wavefront object) line grammar parser.

package formats

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"

	"github.com/Faultbox/meshcam/pkg/math"
)

// OBJFace is one triangle. Indices are 0-based and not yet range-checked:
// a zero or negative index in the source shows up here as a negative value.
type OBJFace [3]int

// OBJ holds the raw content of an OBJ file in file order.
type OBJ struct {
	Name         string      // First "o" directive, if any
	Positions    []math.Vec3 // "v" lines
	Normals      []math.Vec3 // "vn" lines
	TexCoords    []math.Vec2 // "vt" lines
	Faces        []OBJFace   // "f" lines, position indices only
	MaterialLibs []string    // "mtllib" file names, in order
	Materials    []string    // "usemtl" names, in order of first use
	Skipped      int         // Lines with unrecognised directives
}

// ParseOBJ reads an OBJ stream.
//
// Only triangles are accepted. Grouped face vertices (p/t/n, p//n, p/t) keep
// the position index; texcoord and normal indices are syntax-checked and
// dropped. The attribute arrays are expected to be aligned one-to-one with
// the positions, so there is no separate attribute index space.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	return parseOBJ(r, "")
}

// ParseOBJNamed is ParseOBJ with a source name used in error messages.
func ParseOBJNamed(r io.Reader, name string) (*OBJ, error) {
	return parseOBJ(r, name)
}

func parseOBJ(r io.Reader, name string) (*OBJ, error) {
	obj := &OBJ{}
	seenMaterial := make(map[string]bool)

	scanner := newScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		fail := func(err error) error {
			return &ParseError{File: name, Line: lineNo, Directive: fields[0], Err: err}
		}

		args := fields[1:]
		switch fields[0] {
		case "v":
			if len(args) != 3 && len(args) != 4 {
				return nil, fail(fmt.Errorf("%w: want 3 or 4, got %d", ErrFieldCount, len(args)))
			}
			v, err := parseFloats(args[:3])
			if err != nil {
				return nil, fail(err)
			}
			obj.Positions = append(obj.Positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

		case "vn":
			if len(args) != 3 {
				return nil, fail(fmt.Errorf("%w: want 3, got %d", ErrFieldCount, len(args)))
			}
			v, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			obj.Normals = append(obj.Normals, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

		case "vt":
			if len(args) < 1 || len(args) > 3 {
				return nil, fail(fmt.Errorf("%w: want 1 to 3, got %d", ErrFieldCount, len(args)))
			}
			v, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			tc := math.Vec2{X: v[0]}
			if len(v) > 1 {
				tc.Y = v[1]
			}
			obj.TexCoords = append(obj.TexCoords, tc)

		case "f":
			if len(args) != 3 {
				return nil, fail(fmt.Errorf("%w: got %d", ErrFaceArity, len(args)))
			}
			var face OBJFace
			for i, group := range args {
				idx, err := parseFaceVertex(group)
				if err != nil {
					return nil, fail(err)
				}
				face[i] = idx - 1
			}
			obj.Faces = append(obj.Faces, face)

		case "mtllib":
			if len(args) == 0 {
				return nil, fail(fmt.Errorf("%w: missing library name", ErrFieldCount))
			}
			// Library names may contain spaces.
			obj.MaterialLibs = append(obj.MaterialLibs, strings.Join(args, " "))

		case "usemtl":
			if len(args) == 0 {
				return nil, fail(fmt.Errorf("%w: missing material name", ErrFieldCount))
			}
			m := strings.Join(args, " ")
			if !seenMaterial[m] {
				seenMaterial[m] = true
				obj.Materials = append(obj.Materials, m)
			}

		case "o":
			if obj.Name == "" && len(args) > 0 {
				obj.Name = strings.Join(args, " ")
			}

		default:
			// g, s, l, p and vendor extensions
			obj.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, scanError(err, name, lineNo, "obj")
	}

	return obj, nil
}

// parseFaceVertex returns the 1-based position index of a face group.
func parseFaceVertex(group string) (int, error) {
	parts := strings.Split(group, "/")
	if len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("%w: bad face vertex %q", ErrFieldCount, group)
	}

	pos, err := strconv.Atoi(parts[0])
	if errors.Is(err, strconv.ErrRange) {
		// Well-formed but out of range: keep it for validation to reject.
		if strings.HasPrefix(parts[0], "-") {
			return gomath.MinInt + 1, nil
		}
		return gomath.MaxInt, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, parts[0])
	}

	// Attribute indices must still be integers when present ("p//n" leaves an empty texcoord).
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, p)
		}
	}
	return pos, nil
}
