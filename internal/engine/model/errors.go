package model

import (
	"fmt"

	"github.com/Faultbox/meshcam/pkg/formats"
)

// Invariants checked after parsing. They name the violated rule in a StructuralError.
const (
	InvariantFaceIndex     = "face-index-range"
	InvariantNormalCount   = "normal-count"
	InvariantTexCoordCount = "texcoord-count"
	InvariantMaterialRef   = "material-reference"
)

// IOError reports a mesh or material file that could not be opened or read.
type IOError struct {
	Op   string // "open" or "read"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed directive line in a mesh or material file.
type ParseError = formats.ParseError

// StructuralError reports a parsed mesh that breaks one of the mesh invariants.
type StructuralError struct {
	Source    string
	Invariant string
	Detail    string
}

func (e *StructuralError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s violated: %s", e.Source, e.Invariant, e.Detail)
	}
	return fmt.Sprintf("%s violated: %s", e.Invariant, e.Detail)
}
