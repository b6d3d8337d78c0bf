package source

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(16, 8)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 127, G: 127, B: 128, A: 255}, img.NRGBAAt(8, 4))
}

func TestLoadJPEGOpaque(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Lenna.JPG")
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(32, 16), &jpeg.Options{Quality: 90}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	img, err := Load(path)
	require.NoError(t, err)
	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(255), img.Pix[i])
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestToNRGBAShiftsOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 7))
	src.Set(5, 5, color.RGBA{R: 200, A: 255})
	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), dst.Bounds())
	assert.Equal(t, uint8(200), dst.NRGBAAt(0, 0).R)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, Lanczos3, f)

	f, err = ParseFilter("CatmullRom")
	require.NoError(t, err)
	assert.Equal(t, CatmullRom, f)

	_, err = ParseFilter("nearest")
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	src := gradient(40, 20)
	for _, f := range []Filter{Lanczos3, CatmullRom, Bilinear} {
		t.Run(string(f), func(t *testing.T) {
			out := Resize(src, 25, 10, f)
			assert.Equal(t, image.Rect(0, 0, 25, 10), out.Bounds())
			// Opaque in, opaque out; horizontal gradient stays increasing.
			assert.Equal(t, uint8(255), out.NRGBAAt(12, 5).A)
			assert.Less(t, out.NRGBAAt(2, 5).R, out.NRGBAAt(22, 5).R)
		})
	}
}

func TestResizeSameSize(t *testing.T) {
	src := gradient(4, 4)
	assert.Same(t, src, Resize(src, 4, 4, Lanczos3))
}
