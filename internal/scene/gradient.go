package scene

import (
	"math"

	"rawframes/internal/mathutil"
	"rawframes/internal/raster"
)

// Gradient renders a color ramp that scrolls horizontally, wrapping once
// over the frame count: r = (x+t) mod 1, g = y, b = 0.5, a = 1.
type Gradient struct {
	width, height, frames int
	xs, ys                []float64
}

// NewGradient precomputes the [0,1] grids.
func NewGradient(w, h, frames int) *Gradient {
	return &Gradient{
		width:  w,
		height: h,
		frames: frames,
		xs:     mathutil.Linspace(0, 1, w),
		ys:     mathutil.Linspace(0, 1, h),
	}
}

func (g *Gradient) Kind() Kind       { return KindColor }
func (g *Gradient) Frames() int      { return g.frames }
func (g *Gradient) Size() (int, int) { return g.width, g.height }

// to8 scales a unit value to 0..255, truncating toward zero.
func to8(v float64) uint8 {
	return uint8(v * 255)
}

// Color renders frame i.
func (g *Gradient) Color(i int) *raster.RGBA8 {
	t := frameTime(i, g.frames)
	out := raster.NewRGBA8(g.width, g.height)

	reds := make([]uint8, g.width)
	for x, xv := range g.xs {
		reds[x] = to8(math.Mod(xv+t, 1.0))
	}
	b, a := to8(0.5), to8(1.0)

	stride := g.width * 4
	for y, yv := range g.ys {
		gv := to8(yv)
		row := out.Pix[y*stride : (y+1)*stride]
		for x, r := range reds {
			row[x*4] = r
			row[x*4+1] = gv
			row[x*4+2] = b
			row[x*4+3] = a
		}
	}
	return out
}

func (g *Gradient) Render(i int) ([]Output, error) {
	if err := checkFrame(g, i); err != nil {
		return nil, err
	}
	specs, _ := Layout(KindColor, i)
	return []Output{{FileSpec: specs[0], RGBA: g.Color(i)}}, nil
}
