// Package source loads and resamples the photographs the panning generator
// crops from.
package source

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

type decodeFunc func(io.Reader) (image.Image, error)

// The TGA package registers itself with an empty magic string, which makes
// image.Decode hand it every file. Decoders are picked by extension instead.
var decoders = map[string]decodeFunc{
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// Load decodes an image file and converts it to non-premultiplied RGBA.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// Decode decodes r using the decoder registered for ext (".jpg", ".png", ...).
// Unknown extensions fall back to sniffing the stream.
func Decode(r io.Reader, ext string) (image.Image, error) {
	if dec, ok := decoders[strings.ToLower(ext)]; ok {
		return dec(bufio.NewReader(r))
	}
	img, _, err := image.Decode(r)
	return img, err
}

// ToNRGBA converts any image to an NRGBA with its origin at (0, 0).
// Opaque sources such as JPEG end up with alpha 255 everywhere.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
