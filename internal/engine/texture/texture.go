// Package texture decodes image files into CPU pixel buffers ready for
// upload by a renderer.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// ErrEmpty is returned for images with no pixels.
var ErrEmpty = errors.New("texture: empty image")

// Image is a decoded texture. Pix holds B, G, R, A bytes per pixel,
// rows top to bottom, with a stride of 4*Width.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Stride returns the byte length of one row.
func (img *Image) Stride() int {
	return img.Width * 4
}

// At returns the B, G, R, A bytes of the pixel at (x, y).
func (img *Image) At(x, y int) (b, g, r, a byte) {
	i := y*img.Stride() + x*4
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
}

// Load reads and decodes the image file at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}

	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image data. TGA has no signature, so it is selected by the
// ".tga" extension; every other format is detected from its content.
func Decode(data []byte, ext string) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(ext, ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return FromImage(src)
}

// FromImage converts any image to BGRA. Straight alpha is kept.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	out := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, len(nrgba.Pix)),
	}
	for i := 0; i < len(nrgba.Pix); i += 4 {
		out.Pix[i+0] = nrgba.Pix[i+2]
		out.Pix[i+1] = nrgba.Pix[i+1]
		out.Pix[i+2] = nrgba.Pix[i+0]
		out.Pix[i+3] = nrgba.Pix[i+3]
	}
	return out, nil
}

// ToNRGBA converts the texture back to a standard library image.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		out.Pix[i+0] = img.Pix[i+2]
		out.Pix[i+1] = img.Pix[i+1]
		out.Pix[i+2] = img.Pix[i+0]
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// MipChain returns the texture followed by successively halved levels down
// to 1x1, filtered bilinearly.
func MipChain(img *Image) []*Image {
	levels := []*Image{img}
	src := img.ToNRGBA()
	w, h := img.Width, img.Height

	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)

		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

		level, _ := FromImage(dst)
		levels = append(levels, level)
		src = dst
	}
	return levels
}
