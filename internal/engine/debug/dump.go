// Package debug writes intermediate pipeline data to disk for inspection.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/meshcam/internal/engine/texture"
)

// TextureDumper writes decoded textures as PNG files.
type TextureDumper struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewTextureDumper creates a dumper writing into outputDir. An empty
// outputDir means the working directory.
func NewTextureDumper(outputDir, prefix string) *TextureDumper {
	return &TextureDumper{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Dump writes one texture level and returns the file name.
func (d *TextureDumper) Dump(img *texture.Image, level int) (string, error) {
	if len(img.Pix) != img.Width*img.Height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", img.Width*img.Height*4, len(img.Pix))
	}
	return d.write(d.Filename(level), img.ToNRGBA())
}

// DumpChain writes every level of a mip chain.
func (d *TextureDumper) DumpChain(levels []*texture.Image) ([]string, error) {
	names := make([]string, 0, len(levels))
	for i, l := range levels {
		name, err := d.Dump(l, i)
		if err != nil {
			return names, fmt.Errorf("level %d: %w", i, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// Filename returns the file name used for a level.
func (d *TextureDumper) Filename(level int) string {
	timestamp := d.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_mip%d.png", d.prefix, timestamp, level)
	if d.outputDir != "" {
		filename = filepath.Join(d.outputDir, filename)
	}
	return filename
}

func (d *TextureDumper) write(filename string, img image.Image) (string, error) {
	if d.outputDir != "" {
		if err := os.MkdirAll(d.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
