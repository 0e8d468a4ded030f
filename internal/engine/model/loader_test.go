package model

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshcam/pkg/formats"
	"github.com/Faultbox/meshcam/pkg/math"
)

// writeFiles creates files in a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad_Triangle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"tri.obj": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
	})

	mesh, err := Load(filepath.Join(dir, "tri.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	got := mesh.Positions()
	if len(got) != len(want) {
		t.Fatalf("position count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	faces := mesh.Faces()
	if len(faces) != 1 || faces[0] != (Face{0, 1, 2}) {
		t.Errorf("Faces() = %v, want [[0 1 2]]", faces)
	}

	if mesh.Name() != "tri" {
		t.Errorf("Name() = %q, want %q", mesh.Name(), "tri")
	}
	if mesh.HasNormals() || mesh.HasTexCoords() {
		t.Error("triangle should have no normals or texcoords")
	}
	if _, ok := mesh.TexturePath(); ok {
		t.Error("triangle should have no texture")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error %T is not *IOError", err)
	}
	if ioErr.Op != "open" {
		t.Errorf("Op = %q, want open", ioErr.Op)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		invariant string
	}{
		{
			name:      "face index beyond vertex count",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "zero face index",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "negative face index",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -1 -2 -3\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "face before vertices is checked after parsing",
			src:       "f 1 2 3\nv 0 0 0\nv 1 0 0\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "face index overflows int",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 99999999999999999999\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "negative face index overflows int",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 -99999999999999999999\n",
			invariant: InvariantFaceIndex,
		},
		{
			name:      "normal count mismatch",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nvn 0 0 1\nf 1 2 3\n",
			invariant: InvariantNormalCount,
		},
		{
			name:      "texcoord count mismatch",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1 2 3\n",
			invariant: InvariantTexCoordCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Parse(strings.NewReader(tt.src), WithName("bad.obj"))
			if mesh != nil {
				t.Error("expected nil mesh with error")
			}
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v (%T), want *StructuralError", err, err)
			}
			if se.Invariant != tt.invariant {
				t.Errorf("Invariant = %q, want %q", se.Invariant, tt.invariant)
			}
			if !strings.Contains(se.Error(), "bad.obj") {
				t.Errorf("Error() = %q, want source name", se.Error())
			}
		})
	}
}

func TestParse_ParseError(t *testing.T) {
	_, err := Parse(strings.NewReader("v 0 0 0\nv 1 zero 0\n"), WithName("broken.obj"))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v (%T), want *ParseError", err, err)
	}
	if pe.Line != 2 || pe.File != "broken.obj" {
		t.Errorf("ParseError location = %s:%d, want broken.obj:2", pe.File, pe.Line)
	}
	if !errors.Is(err, formats.ErrMalformedNumber) {
		t.Errorf("expected ErrMalformedNumber, got %v", err)
	}
}

func TestParse_AlignedAttributes(t *testing.T) {
	src := `o Quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/2 3/3/3
f 1/1/1 3/3/3 4/4/4
`
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if mesh.Name() != "Quad" {
		t.Errorf("Name() = %q, want Quad", mesh.Name())
	}
	if mesh.VertexCount() != 4 || mesh.FaceCount() != 2 {
		t.Errorf("counts = %d vertices, %d faces, want 4 and 2", mesh.VertexCount(), mesh.FaceCount())
	}
	if len(mesh.Normals()) != 4 || len(mesh.TexCoords()) != 4 {
		t.Errorf("attribute counts = %d normals, %d texcoords", len(mesh.Normals()), len(mesh.TexCoords()))
	}
	if got := mesh.Faces()[1]; got != (Face{0, 2, 3}) {
		t.Errorf("Faces()[1] = %v, want [0 2 3]", got)
	}

	b := mesh.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -1, Z: 0}) || b.Max != (math.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestMesh_AccessorsReturnCopies(t *testing.T) {
	mesh, err := Parse(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	p := mesh.Positions()
	p[0] = math.Vec3{X: 9, Y: 9, Z: 9}
	f := mesh.Faces()
	f[0] = Face{2, 2, 2}

	if mesh.Positions()[0] != (math.Vec3{}) {
		t.Error("mutating Positions() result changed the mesh")
	}
	if mesh.Faces()[0] != (Face{0, 1, 2}) {
		t.Error("mutating Faces() result changed the mesh")
	}
}

const texturedOBJ = `mtllib cube.mtl
o Cube
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
usemtl Textured
f 1/1 2/2 3/3
`

const cubeMTL = `newmtl Plain
Kd 1 0 0

newmtl Textured
Ka 0.2 0.2 0.2
Kd 0.8 0.8 0.8
Ks 0.5 0.5 0.5
Ns 16
map_Kd cube_texture.png
`

func TestLoad_TexturePathFromMaterial(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"cube.obj": texturedOBJ,
		"cube.mtl": cubeMTL,
	})

	mesh, err := Load(filepath.Join(dir, "cube.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path, ok := mesh.TexturePath()
	if !ok || path != "cube_texture.png" {
		t.Errorf("TexturePath() = %q, %v, want cube_texture.png", path, ok)
	}
	mat, ok := mesh.Material()
	if !ok || mat.Name != "Textured" || mat.Shininess != 16 {
		t.Errorf("Material() = %+v, %v", mat, ok)
	}
}

func TestLoad_FirstMaterialWithoutUsemtl(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"cube.obj": "mtllib cube.mtl\nv 0 0 0\n",
		"cube.mtl": cubeMTL,
	})

	mesh, err := Load(filepath.Join(dir, "cube.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	mat, ok := mesh.Material()
	if !ok || mat.Name != "Plain" {
		t.Errorf("Material() = %q, %v, want Plain", mat.Name, ok)
	}
	if _, ok := mesh.TexturePath(); ok {
		t.Error("Plain has no diffuse map")
	}
}

func TestLoad_MaterialErrors(t *testing.T) {
	t.Run("missing library", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"cube.obj": texturedOBJ})
		_, err := Load(filepath.Join(dir, "cube.obj"))
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("error = %v, want *IOError", err)
		}
		if filepath.Base(ioErr.Path) != "cube.mtl" {
			t.Errorf("Path = %q, want cube.mtl", ioErr.Path)
		}
	})

	t.Run("malformed library", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"cube.obj": texturedOBJ,
			"cube.mtl": "newmtl Textured\nKd 1 x 1\n",
		})
		_, err := Load(filepath.Join(dir, "cube.obj"))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
	})

	t.Run("undefined material", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"cube.obj": texturedOBJ,
			"cube.mtl": "newmtl Other\n",
		})
		_, err := Load(filepath.Join(dir, "cube.obj"))
		var se *StructuralError
		if !errors.As(err, &se) || se.Invariant != InvariantMaterialRef {
			t.Fatalf("error = %v, want material-reference StructuralError", err)
		}
	})

	t.Run("skipped", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"cube.obj": texturedOBJ})
		mesh, err := Load(filepath.Join(dir, "cube.obj"), WithoutMaterials())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, ok := mesh.Material(); ok {
			t.Error("materials should be skipped")
		}
	})
}

func TestParse_MaterialDirOption(t *testing.T) {
	dir := writeFiles(t, map[string]string{"cube.mtl": cubeMTL})

	mesh, err := Parse(strings.NewReader(texturedOBJ), WithMaterialDir(dir))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if path, _ := mesh.TexturePath(); path != "cube_texture.png" {
		t.Errorf("TexturePath() = %q", path)
	}

	// Without a directory, streams do not look up materials.
	mesh, err = Parse(strings.NewReader(texturedOBJ))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := mesh.Material(); ok {
		t.Error("Parse without WithMaterialDir should not read materials")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestParse_ReadFailureIsIOError(t *testing.T) {
	_, err := Parse(failingReader{}, WithName("stream"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" {
		t.Fatalf("error = %v, want read *IOError", err)
	}
}

func TestParse_LongLineIsParseError(t *testing.T) {
	src := "v 0 0 0\n# " + strings.Repeat("x", 2*1024*1024) + "\n"

	_, err := Parse(strings.NewReader(src), WithName("long.obj"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %T %v, want *ParseError", err, err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		t.Errorf("long line reported as IOError: %v", err)
	}
}

func TestLoad_BundledCube(t *testing.T) {
	mesh, err := Load(filepath.Join("..", "..", "..", "assets", "cube.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if mesh.Name() != "Cube" {
		t.Errorf("Name() = %q, want Cube", mesh.Name())
	}
	if mesh.VertexCount() != 24 || mesh.FaceCount() != 12 {
		t.Errorf("counts = %d vertices, %d faces, want 24 and 12", mesh.VertexCount(), mesh.FaceCount())
	}
	if !mesh.HasNormals() || !mesh.HasTexCoords() {
		t.Error("cube should have normals and texcoords")
	}
	if path, _ := mesh.TexturePath(); path != "cube_texture.tga" {
		t.Errorf("TexturePath() = %q, want cube_texture.tga", path)
	}

	b := mesh.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -1, Z: -1}) || b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Bounds() = %+v", b)
	}
}
