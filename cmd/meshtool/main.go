// meshtool is a CLI utility for inspecting and packing OBJ meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshcam/internal/assets"
	"github.com/Faultbox/meshcam/internal/engine/debug"
	"github.com/Faultbox/meshcam/internal/engine/model"
	"github.com/Faultbox/meshcam/internal/engine/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "pack":
		cmdPack(args)
	case "texture", "tex":
		cmdTexture(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - OBJ mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>                     Show mesh information
  validate <file.obj>...              Load meshes and report errors
  pack [-normals] [-flipv] <file.obj>... <out.bin>
                                      Pack meshes into one vertex/index buffer
  texture [-mips] [-o out.png] [-dump dir] <file>
                                      Decode a texture and show its size

Examples:
  meshtool info cube.obj
  meshtool validate models/*.obj
  meshtool pack -normals cube.obj sphere.obj scene.bin
  meshtool texture -assets assets cube_texture.tga
  meshtool texture -dump mips assets/cube_texture.tga`)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	noMtl := fs.Bool("nomtl", false, "Skip material libraries")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file.obj>")
		os.Exit(1)
	}

	mesh, err := load(fs.Arg(0), *noMtl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := mesh.Bounds()
	size := b.Size()
	fmt.Printf("Mesh:      %s\n", mesh.Name())
	fmt.Printf("File:      %s\n", fs.Arg(0))
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.FaceCount())
	fmt.Printf("Normals:   %s\n", yesNo(mesh.HasNormals()))
	fmt.Printf("TexCoords: %s\n", yesNo(mesh.HasTexCoords()))
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)

	if mat, ok := mesh.Material(); ok {
		fmt.Println()
		fmt.Printf("Material:  %s\n", mat.Name)
		fmt.Printf("  Kd       %.3f %.3f %.3f\n", mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z)
		fmt.Printf("  Ns       %.1f\n", mat.Shininess)
	}
	if path, ok := mesh.TexturePath(); ok {
		fmt.Printf("Texture:   %s\n", path)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	noMtl := fs.Bool("nomtl", false, "Skip material libraries")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool validate <file.obj>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range fs.Args() {
		mesh, err := load(path, *noMtl)
		if err != nil {
			fmt.Printf("FAIL  %s [%s] %v\n", path, errorKind(err), err)
			failed++
			continue
		}
		fmt.Printf("OK    %s (%d vertices, %d triangles)\n", path, mesh.VertexCount(), mesh.FaceCount())
	}

	fmt.Fprintf(os.Stderr, "\n(%d of %d files failed)\n", failed, fs.NArg())
	if failed > 0 {
		os.Exit(1)
	}
}

// errorKind names the loader error category.
func errorKind(err error) string {
	var (
		ioErr     *model.IOError
		parseErr  *model.ParseError
		structErr *model.StructuralError
	)
	switch {
	case errors.As(err, &ioErr):
		return "io"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &structErr):
		return structErr.Invariant
	default:
		return "error"
	}
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	normals := fs.Bool("normals", false, "Generate normals for meshes without them")
	flipV := fs.Bool("flipv", false, "Flip texture V coordinates")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool pack [-normals] [-flipv] <file.obj>... <out.bin>")
		os.Exit(1)
	}

	inputs := fs.Args()[:fs.NArg()-1]
	output := fs.Arg(fs.NArg() - 1)

	meshes := make([]*model.Mesh, 0, len(inputs))
	for _, path := range inputs {
		mesh, err := load(path, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		meshes = append(meshes, mesh)
	}

	buf := model.BuildBuffers(model.BuildOptions{GenerateNormals: *normals, FlipV: *flipV}, meshes...)

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n, err := buf.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}

	for i, r := range buf.Ranges {
		fmt.Printf("  %-24s base %6d  start %7d  count %7d\n", meshes[i].Name(), r.BaseVertex, r.StartIndex, r.IndexCount)
	}
	fmt.Printf("Packed: %s (%d vertices, %d indices, %d bytes)\n", output, len(buf.Vertices), len(buf.Indices), n)
}

func cmdTexture(args []string) {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	mips := fs.Bool("mips", false, "Show the mip chain")
	out := fs.String("o", "", "Write the decoded image as PNG")
	dumpDir := fs.String("dump", "", "Write every mip level as PNG into this directory")
	searchPaths := fs.String("assets", "", "Comma-separated search paths")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool texture [-mips] [-o out.png] [-dump dir] [-assets dirs] <file>")
		os.Exit(1)
	}

	path := fs.Arg(0)
	if *searchPaths != "" {
		m := assets.NewManager(strings.Split(*searchPaths, ",")...)
		resolved, err := m.Resolve(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		path = resolved
	}

	img, err := texture.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Texture: %s\n", path)
	fmt.Printf("Size:    %dx%d\n", img.Width, img.Height)
	fmt.Printf("Bytes:   %d (BGRA)\n", len(img.Pix))

	if *mips {
		for i, level := range texture.MipChain(img) {
			fmt.Printf("  level %-2d %dx%d\n", i, level.Width, level.Height)
		}
	}

	if *dumpDir != "" {
		prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		names, err := debug.NewTextureDumper(*dumpDir, prefix).DumpChain(texture.MipChain(img))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Printf("Dumped:  %s\n", n)
		}
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := png.Encode(f, img.ToNRGBA()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote:   %s\n", *out)
	}
}

func load(path string, noMtl bool) (*model.Mesh, error) {
	var opts []model.LoadOption
	if noMtl {
		opts = append(opts, model.WithoutMaterials())
	}
	return model.Load(path, opts...)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
