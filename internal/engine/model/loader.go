package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcam/internal/logger"
	"github.com/Faultbox/meshcam/pkg/formats"
)

type loadConfig struct {
	materials   bool
	materialDir string
	name        string
	log         *zap.Logger
}

// LoadOption configures Load and Parse.
type LoadOption func(*loadConfig)

// WithoutMaterials skips mtllib lookup. The mesh then has no texture path.
func WithoutMaterials() LoadOption {
	return func(c *loadConfig) {
		c.materials = false
	}
}

// WithMaterialDir sets the directory mtllib names are relative to.
// Load defaults it to the directory of the OBJ file; Parse has no default
// and skips materials unless this option is given.
func WithMaterialDir(dir string) LoadOption {
	return func(c *loadConfig) {
		c.materialDir = dir
	}
}

// WithName sets the source name used in errors and as the fallback mesh name.
func WithName(name string) LoadOption {
	return func(c *loadConfig) {
		c.name = name
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *zap.Logger) LoadOption {
	return func(c *loadConfig) {
		c.log = l
	}
}

// Load reads and validates the OBJ file at path.
//
// Errors are *IOError when a file cannot be opened or read, *ParseError for
// malformed directive lines and *StructuralError when the parsed mesh breaks
// an invariant. No mesh is returned with an error.
func Load(path string, opts ...LoadOption) (*Mesh, error) {
	cfg := loadConfig{
		materials:   true,
		materialDir: filepath.Dir(path),
		name:        path,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return parse(f, cfg)
}

// Parse reads and validates an OBJ stream. See Load for the error types.
func Parse(r io.Reader, opts ...LoadOption) (*Mesh, error) {
	cfg := loadConfig{materials: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return parse(r, cfg)
}

func parse(r io.Reader, cfg loadConfig) (*Mesh, error) {
	log := cfg.log
	if log == nil {
		log = logger.Named("model")
	}

	obj, err := formats.ParseOBJNamed(r, cfg.name)
	if err != nil {
		var pe *formats.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &IOError{Op: "read", Path: cfg.name, Err: err}
	}

	faces, err := validate(obj, cfg.name)
	if err != nil {
		return nil, err
	}

	mesh := &Mesh{
		name:      obj.Name,
		positions: obj.Positions,
		normals:   obj.Normals,
		texCoords: obj.TexCoords,
		faces:     faces,
	}
	if mesh.name == "" && cfg.name != "" {
		mesh.name = strings.TrimSuffix(filepath.Base(cfg.name), filepath.Ext(cfg.name))
	}

	if cfg.materials && cfg.materialDir != "" && len(obj.MaterialLibs) > 0 {
		mat, err := selectMaterial(obj, cfg.materialDir, cfg.name)
		if err != nil {
			return nil, err
		}
		if mat != nil {
			mesh.material = *mat
			mesh.hasMaterial = true
			mesh.texturePath = mat.DiffuseMap
		}
	}

	log.Debug("mesh loaded",
		zap.String("source", cfg.name),
		zap.Int("vertices", len(mesh.positions)),
		zap.Int("faces", len(mesh.faces)),
		zap.Bool("normals", mesh.HasNormals()),
		zap.Bool("texcoords", mesh.HasTexCoords()),
		zap.Int("skipped_lines", obj.Skipped),
		zap.String("texture", mesh.texturePath))

	return mesh, nil
}

// validate checks the parsed data against the mesh invariants and converts
// face indices to unsigned form.
func validate(obj *formats.OBJ, source string) ([]Face, error) {
	n := len(obj.Positions)

	faces := make([]Face, len(obj.Faces))
	for i, f := range obj.Faces {
		for j, idx := range f {
			if idx < 0 || idx >= n {
				return nil, &StructuralError{
					Source:    source,
					Invariant: InvariantFaceIndex,
					Detail:    fmt.Sprintf("face %d references vertex %d, mesh has %d", i+1, idx+1, n),
				}
			}
			faces[i][j] = uint32(idx)
		}
	}

	if len(obj.Normals) != 0 && len(obj.Normals) != n {
		return nil, &StructuralError{
			Source:    source,
			Invariant: InvariantNormalCount,
			Detail:    fmt.Sprintf("%d normals for %d positions", len(obj.Normals), n),
		}
	}
	if len(obj.TexCoords) != 0 && len(obj.TexCoords) != n {
		return nil, &StructuralError{
			Source:    source,
			Invariant: InvariantTexCoordCount,
			Detail:    fmt.Sprintf("%d texture coordinates for %d positions", len(obj.TexCoords), n),
		}
	}

	return faces, nil
}

// selectMaterial reads the referenced libraries and returns the material used
// first by the mesh, or the first material defined when the mesh uses none.
func selectMaterial(obj *formats.OBJ, dir, source string) (*formats.Material, error) {
	var libs []*formats.MTL
	for _, name := range obj.MaterialLibs {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}
		lib, err := loadMTL(path)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}

	if len(obj.Materials) == 0 {
		for _, lib := range libs {
			if len(lib.Materials) > 0 {
				return &lib.Materials[0], nil
			}
		}
		return nil, nil
	}

	want := obj.Materials[0]
	for _, lib := range libs {
		if m, ok := lib.Find(want); ok {
			return m, nil
		}
	}
	return nil, &StructuralError{
		Source:    source,
		Invariant: InvariantMaterialRef,
		Detail:    fmt.Sprintf("material %q is not defined in %s", want, strings.Join(obj.MaterialLibs, ", ")),
	}
}

func loadMTL(path string) (*formats.MTL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	lib, err := formats.ParseMTL(f, path)
	if err != nil {
		var pe *formats.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return lib, nil
}
