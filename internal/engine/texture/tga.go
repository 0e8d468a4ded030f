package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// TGA decode errors.
var (
	ErrTGATruncated   = errors.New("tga: data truncated")
	ErrTGAUnsupported = errors.New("tga: unsupported format")
)

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
}

func readTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("%w: header is %d bytes", ErrTGATruncated, len(data))
	}

	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		// bytes 3-11: color map spec and origin, unused
		width:  int(data[12]) | int(data[13])<<8,
		height: int(data[14]) | int(data[15])<<8,
		bpp:    int(data[16]),
		// descriptor bit 5: first row is the top row
		topToBottom: data[17]&0x20 != 0,
	}

	if h.colorMapType != 0 {
		return h, fmt.Errorf("%w: color-mapped image", ErrTGAUnsupported)
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("%w: image type %d", ErrTGAUnsupported, h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("%w: %d bits per pixel", ErrTGAUnsupported, h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes a true-color TGA image, uncompressed or RLE, 24 or 32 bpp.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := readTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: image id", ErrTGATruncated)
	}

	d := &tgaDecoder{
		img:  image.NewNRGBA(image.Rect(0, 0, h.width, h.height)),
		hdr:  h,
		src:  data[offset:],
		size: h.bpp / 8,
	}

	if h.imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img  *image.NRGBA
	hdr  tgaHeader
	src  []byte
	pos  int
	size int // bytes per pixel
	n    int // pixels written
}

// pixel reads one BGR(A) pixel from the source.
func (d *tgaDecoder) pixel() (color.NRGBA, error) {
	if d.pos+d.size > len(d.src) {
		return color.NRGBA{}, fmt.Errorf("%w: pixel %d", ErrTGATruncated, d.n)
	}
	p := d.src[d.pos : d.pos+d.size]
	d.pos += d.size

	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.size == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel in file order.
func (d *tgaDecoder) put(c color.NRGBA) {
	w := d.hdr.width
	x := d.n % w
	y := d.n / w
	if !d.hdr.topToBottom {
		y = d.hdr.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
	d.n++
}

func (d *tgaDecoder) total() int {
	return d.hdr.width * d.hdr.height
}

func (d *tgaDecoder) decodeRaw() error {
	for d.n < d.total() {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	for d.n < d.total() {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: packet header at pixel %d", ErrTGATruncated, d.n)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel repeated
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.n < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.n < d.total(); i++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
