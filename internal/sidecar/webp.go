package sidecar

import (
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"rawframes/internal/raster"
	"rawframes/internal/scene"
)

// PreviewImage returns a viewable image of a rendered buffer. Color buffers
// are shown as-is; depth (float or packed) becomes grayscale with the nearest
// value white and the farthest black.
func PreviewImage(out scene.Output) *image.NRGBA {
	switch out.Format {
	case raster.FormatFloat32:
		return DepthImage(out.Depth)
	case raster.FormatPackedDepth:
		return DepthImage(raster.UnpackDepth(out.RGBA))
	default:
		return out.RGBA.NRGBA()
	}
}

// DepthImage normalizes d by its own min/max. A flat buffer renders mid-gray.
func DepthImage(d *raster.Depth32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	lo, hi := d.MinMax()
	span := float64(hi - lo)

	for i, z := range d.Z {
		v := uint8(128)
		if span > 0 {
			v = uint8((float64(hi-z)/span)*255 + 0.5)
		}
		j := i * 4
		img.Pix[j] = v
		img.Pix[j+1] = v
		img.Pix[j+2] = v
		img.Pix[j+3] = 255
	}
	return img
}

// WritePreview encodes the preview of out as lossless WebP at path.
func WritePreview(path string, out scene.Output) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sidecar: create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, PreviewImage(out), nil); err != nil {
		f.Close()
		return fmt.Errorf("sidecar: webp encode %s: %w", path, err)
	}
	return f.Close()
}
