package scene

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"rawframes/internal/logger"
	"rawframes/internal/mathutil"
	"rawframes/internal/raster"
	"rawframes/internal/source"
)

// Pan slides a width-wide window one column per frame across a photograph
// resized to (width+frames)×height, and pairs each crop with a packed depth
// ramp. Both buffers are written bottom row first.
//
// The depth ramp runs 0.001 → 1.0 top to bottom and is the same in every
// column, so its crop is identical for every frame: depth does not pan with
// the color.
type Pan struct {
	width, height, frames int
	src                   *image.NRGBA
	depthRows             []float32 // one value per source row
}

// NewPan resizes img to cover the pan range with the given filter.
func NewPan(img image.Image, w, h, frames int, f source.Filter) (*Pan, error) {
	if w <= 0 || h <= 0 || frames <= 0 {
		return nil, fmt.Errorf("scene: pan needs positive size and frames, got %dx%d, %d frames", w, h, frames)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("scene: pan source image is empty")
	}
	return &Pan{
		width:     w,
		height:    h,
		frames:    frames,
		src:       source.Resize(img, w+frames, h, f),
		depthRows: mathutil.Float32s(mathutil.Linspace(0.001, 1.0, h)),
	}, nil
}

func (p *Pan) Kind() Kind       { return KindPan }
func (p *Pan) Frames() int      { return p.frames }
func (p *Pan) Size() (int, int) { return p.width, p.height }

// Source returns the resized photograph.
func (p *Pan) Source() *image.NRGBA {
	return p.src
}

// DepthBase returns the unflipped depth ramp value at source row y.
func (p *Pan) DepthBase(y int) float32 {
	return p.depthRows[y]
}

// Color returns columns [i, i+width) of the resized source, flipped vertically.
func (p *Pan) Color(i int) *raster.RGBA8 {
	out := raster.NewRGBA8(p.width, p.height)
	stride := p.width * 4
	for y := 0; y < p.height; y++ {
		srcOff := p.src.PixOffset(i, p.height-1-y)
		copy(out.Pix[y*stride:(y+1)*stride], p.src.Pix[srcOff:srcOff+stride])
	}
	return out
}

// Depth returns the same window of the depth ramp, flipped vertically.
func (p *Pan) Depth(i int) *raster.Depth32 {
	d := raster.NewDepth32(p.width, p.height, 0)
	for y := 0; y < p.height; y++ {
		z := p.depthRows[p.height-1-y]
		row := d.Z[y*p.width : (y+1)*p.width]
		for x := range row {
			row[x] = z
		}
	}
	return d
}

func (p *Pan) Render(i int) ([]Output, error) {
	if err := checkFrame(p, i); err != nil {
		return nil, err
	}
	specs, _ := Layout(KindPan, i)
	out := []Output{
		{FileSpec: specs[0], RGBA: p.Color(i)},
		{FileSpec: specs[1], RGBA: raster.PackDepth(p.Depth(i))},
	}
	if i%10 == 0 {
		logger.Info("generated frames for index", zap.Int("index", i))
	}
	return out, nil
}
