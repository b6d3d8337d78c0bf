package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
)

// Format identifies the element layout of a raw buffer file.
type Format int

const (
	// FormatRGBA8 is 4 interleaved uint8 channels per pixel.
	FormatRGBA8 Format = iota
	// FormatFloat32 is one little-endian float32 per pixel.
	FormatFloat32
	// FormatPackedDepth is RGBA8 carrying a 24-bit depth in R,G,B and A=255.
	FormatPackedDepth
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatFloat32:
		return "float32"
	case FormatPackedDepth:
		return "packed-depth"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// PixelSize returns bytes per pixel. Every format happens to be 4 bytes wide.
func (f Format) PixelSize() int {
	return 4
}

// Size returns the exact byte length of a w×h buffer in this format.
func (f Format) Size(w, h int) int {
	return w * h * f.PixelSize()
}

// RGBA8 holds an 8-bit RGBA frame as a flat slice, row-major, top row first.
type RGBA8 struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewRGBA8 allocates a zeroed w×h buffer.
func NewRGBA8(w, h int) *RGBA8 {
	return &RGBA8{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// Fill sets every channel of every pixel to v.
func (b *RGBA8) Fill(v uint8) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

func (b *RGBA8) offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// Set writes one pixel.
func (b *RGBA8) Set(x, y int, r, g, bl, a uint8) {
	i := b.offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// At reads one pixel.
func (b *RGBA8) At(x, y int) (r, g, bl, a uint8) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// FlipVertical reverses the row order in place.
func (b *RGBA8) FlipVertical() {
	flipRows(b.Pix, b.Width*4, b.Height)
}

// Bytes returns the raw file contents. The slice aliases Pix.
func (b *RGBA8) Bytes() []byte {
	return b.Pix
}

// NRGBA wraps the buffer as an image without copying.
func (b *RGBA8) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// DecodeRGBA8 wraps raw file contents, checking the length.
func DecodeRGBA8(data []byte, w, h int) (*RGBA8, error) {
	if want := FormatRGBA8.Size(w, h); len(data) != want {
		return nil, fmt.Errorf("raster: rgba8 %dx%d needs %d bytes, got %d", w, h, want, len(data))
	}
	return &RGBA8{Width: w, Height: h, Pix: data}, nil
}

// Depth32 holds one float32 depth value per pixel, row-major.
type Depth32 struct {
	Width  int
	Height int
	Z      []float32 // len = W*H
}

// NewDepth32 allocates a w×h depth buffer filled with v.
func NewDepth32(w, h int, v float32) *Depth32 {
	z := make([]float32, w*h)
	if v != 0 {
		for i := range z {
			z[i] = v
		}
	}
	return &Depth32{Width: w, Height: h, Z: z}
}

// At returns the depth at (x, y).
func (d *Depth32) At(x, y int) float32 {
	return d.Z[y*d.Width+x]
}

// Set writes the depth at (x, y).
func (d *Depth32) Set(x, y int, z float32) {
	d.Z[y*d.Width+x] = z
}

// FlipVertical reverses the row order in place.
func (d *Depth32) FlipVertical() {
	w := d.Width
	for top, bot := 0, d.Height-1; top < bot; top, bot = top+1, bot-1 {
		a := d.Z[top*w : (top+1)*w]
		c := d.Z[bot*w : (bot+1)*w]
		for i := range a {
			a[i], c[i] = c[i], a[i]
		}
	}
}

// MinMax returns the smallest and largest depth.
func (d *Depth32) MinMax() (lo, hi float32) {
	if len(d.Z) == 0 {
		return 0, 0
	}
	lo, hi = d.Z[0], d.Z[0]
	for _, z := range d.Z[1:] {
		if z < lo {
			lo = z
		}
		if z > hi {
			hi = z
		}
	}
	return lo, hi
}

// Bytes encodes the buffer as little-endian float32, the layout the
// renderer reads.
func (d *Depth32) Bytes() []byte {
	out := make([]byte, len(d.Z)*4)
	for i, z := range d.Z {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(z))
	}
	return out
}

// DecodeDepth32 parses raw little-endian float32 contents.
func DecodeDepth32(data []byte, w, h int) (*Depth32, error) {
	if want := FormatFloat32.Size(w, h); len(data) != want {
		return nil, fmt.Errorf("raster: float32 %dx%d needs %d bytes, got %d", w, h, want, len(data))
	}
	d := &Depth32{Width: w, Height: h, Z: make([]float32, w*h)}
	for i := range d.Z {
		d.Z[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return d, nil
}

func flipRows(pix []uint8, stride, rows int) {
	tmp := make([]uint8, stride)
	for top, bot := 0, rows-1; top < bot; top, bot = top+1, bot-1 {
		a := pix[top*stride : (top+1)*stride]
		c := pix[bot*stride : (bot+1)*stride]
		copy(tmp, a)
		copy(a, c)
		copy(c, tmp)
	}
}
