package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawframes/internal/mathutil"
	"rawframes/internal/raster"
	"rawframes/internal/source"
)

const (
	testW = 96
	testH = 48
)

func TestFrameFile(t *testing.T) {
	assert.Equal(t, "depth_input_0_0000.raw", FrameFile(PrefixDepth, 0))
	assert.Equal(t, "albedo_0_0149.raw", FrameFile(PrefixAlbedo, 149))
	assert.Equal(t, "mv_input_0_12345.raw", FrameFile(PrefixMotion, 12345))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("pan")
	require.NoError(t, err)
	assert.Equal(t, KindPan, k)
	_, err = ParseKind("normals")
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	specs, err := Layout(KindPlaceholder, 3)
	require.NoError(t, err)
	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
		assert.Equal(t, raster.FormatRGBA8, s.Format)
	}
	assert.Equal(t, []string{
		"color_input_0_0003.raw",
		"depth_input_0_0003.raw",
		"normal_input_0_0003.raw",
		"albedo_0_0003.raw",
		"mv_input_0_0003.raw",
	}, names)

	specs, err = Layout(KindPan, 0)
	require.NoError(t, err)
	assert.Equal(t, raster.FormatPackedDepth, specs[1].Format)

	_, err = Layout("bogus", 0)
	assert.Error(t, err)
}

// nearest returns the grid pixel closest to (cx, cy).
func nearest(s *Sphere, cx, cy float64) (int, int) {
	bx, by, best := 0, 0, math.Inf(1)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			gx, gy := s.Grid(x, y)
			d := math.Hypot(gx-cx, gy-cy)
			if d < best {
				bx, by, best = x, y, d
			}
		}
	}
	return bx, by
}

func TestSphereFrameZero(t *testing.T) {
	s := NewSphere(testW, testH, 30, DefaultSphereParams())
	cx, cy := s.Center(0)
	assert.Equal(t, 0.5, cx)
	assert.Equal(t, 0.0, cy)

	d := s.Depth(0)
	x, y := nearest(s, cx, cy)
	assert.InDelta(t, 1.6, d.At(x, y), 0.01)
	assert.Equal(t, float32(5.0), d.At(0, 0))
	assert.Equal(t, float32(5.0), d.At(testW-1, testH-1))
}

func TestSphereInvariantsAllFrames(t *testing.T) {
	p := DefaultSphereParams()
	s := NewSphere(testW, testH, 12, p)
	for i := 0; i < s.Frames(); i++ {
		cx, cy := s.Center(i)
		d := s.Depth(i)
		inside := 0
		for y := 0; y < testH; y++ {
			for x := 0; x < testW; x++ {
				gx, gy := s.Grid(x, y)
				dist := math.Sqrt(float64((gx-cx)*(gx-cx)) + float64((gy-cy)*(gy-cy)))
				z := d.At(x, y)
				if dist >= p.Radius {
					require.Equal(t, float32(5.0), z, "frame %d pixel (%d,%d)", i, x, y)
					continue
				}
				inside++
				require.GreaterOrEqual(t, z, float32(p.BaseDepth-p.Radius)-1e-6)
				require.LessOrEqual(t, z, float32(p.BaseDepth))
			}
		}
		assert.Positive(t, inside, "frame %d has no sphere pixels", i)

		x, y := nearest(s, cx, cy)
		assert.InDelta(t, p.BaseDepth-p.Radius, d.At(x, y), 0.01, "frame %d centre", i)
	}
}

func TestSphereRender(t *testing.T) {
	s := NewSphere(testW, testH, 4, DefaultSphereParams())
	out, err := s.Render(2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "depth_input_0_0002.raw", out[0].Name)
	assert.Len(t, out[0].Bytes(), raster.FormatFloat32.Size(testW, testH))

	_, err = s.Render(4)
	assert.Error(t, err)
	_, err = s.Render(-1)
	assert.Error(t, err)
}

func TestGradientFrameZero(t *testing.T) {
	g := NewGradient(testW, testH, 10)
	c := g.Color(0)
	r, gr, b, a := c.At(0, 0)
	assert.Equal(t, []uint8{0, 0, 127, 255}, []uint8{r, gr, b, a})

	// x = 1 wraps to 0 at t = 0; the bottom row is g = 255.
	r, gr, _, _ = c.At(testW-1, testH-1)
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(255), gr)
}

func TestGradientConstantChannels(t *testing.T) {
	g := NewGradient(testW, testH, 10)
	for i := 0; i < g.Frames(); i++ {
		c := g.Color(i)
		for p := 0; p < len(c.Pix); p += 4 {
			require.Equal(t, uint8(127), c.Pix[p+2])
			require.Equal(t, uint8(255), c.Pix[p+3])
		}
	}
}

func TestGradientScrolls(t *testing.T) {
	g := NewGradient(testW, testH, 10)
	xs := mathutil.Linspace(0, 1, testW)
	c := g.Color(3)
	for x := 0; x < testW; x++ {
		r, _, _, _ := c.At(x, 5)
		want := uint8(math.Mod(xs[x]+0.3, 1) * 255)
		require.Equal(t, want, r, "x=%d", x)
	}
}

func TestPlaceholder(t *testing.T) {
	p := NewPlaceholder(testW, testH, 150)
	out, err := p.Render(7)
	require.NoError(t, err)
	require.Len(t, out, 5)

	wantColor := NewGradient(testW, testH, 150).Color(7)
	assert.Equal(t, wantColor.Pix, out[0].RGBA.Pix)

	fills := map[string]uint8{
		"depth_input_0_0007.raw":  128,
		"normal_input_0_0007.raw": 128,
		"albedo_0_0007.raw":       200,
		"mv_input_0_0007.raw":     0,
	}
	for _, o := range out[1:] {
		want, ok := fills[o.Name]
		require.True(t, ok, o.Name)
		require.Len(t, o.Bytes(), raster.FormatRGBA8.Size(testW, testH))
		for _, v := range o.Bytes() {
			require.Equal(t, want, v, o.Name)
		}
	}
}

// stripes makes an image whose column index is readable from R and row from G.
func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 9, A: 255})
		}
	}
	return img
}

func TestPanColorCropAndFlip(t *testing.T) {
	const frames = 5
	// Already the target size, so no resampling touches the values.
	p, err := NewPan(stripes(testW+frames, testH), testW, testH, frames, source.Lanczos3)
	require.NoError(t, err)

	for i := 0; i < frames; i++ {
		c := p.Color(i)
		for _, pt := range [][2]int{{0, 0}, {testW - 1, 0}, {10, testH - 1}, {40, 17}} {
			r, g, b, a := c.At(pt[0], pt[1])
			assert.Equal(t, uint8(pt[0]+i), r)
			assert.Equal(t, uint8(testH-1-pt[1]), g)
			assert.Equal(t, uint8(9), b)
			assert.Equal(t, uint8(255), a)
		}
	}
}

func TestPanDepthReconstructs(t *testing.T) {
	const frames = 4
	p, err := NewPan(stripes(testW+frames, testH), testW, testH, frames, source.Lanczos3)
	require.NoError(t, err)

	for i := 0; i < frames; i++ {
		out, err := p.Render(i)
		require.NoError(t, err)
		require.Len(t, out, 2)
		packed := out[1].RGBA
		require.Len(t, packed.Bytes(), raster.FormatPackedDepth.Size(testW, testH))

		for y := 0; y < testH; y++ {
			want := float64(p.DepthBase(testH - 1 - y))
			for x := 0; x < testW; x += 7 {
				r, g, b, a := packed.At(x, y)
				require.Equal(t, uint8(255), a)
				got := raster.UnpackDepth24(r, g, b)
				require.LessOrEqual(t, math.Abs(got-want), 1.0/raster.DepthScale, "frame %d (%d,%d)", i, x, y)
			}
		}
	}
}

func TestPanDepthRamp(t *testing.T) {
	p, err := NewPan(stripes(10, 10), 8, 5, 2, source.Bilinear)
	require.NoError(t, err)
	assert.Equal(t, float32(0.001), p.DepthBase(0))
	assert.Equal(t, float32(1.0), p.DepthBase(4))

	d := p.Depth(1)
	// Flipped: the top output row holds the bottom of the ramp.
	assert.Equal(t, float32(1.0), d.At(3, 0))
	assert.Equal(t, float32(0.001), d.At(3, 4))
}

func TestPanResizesSource(t *testing.T) {
	p, err := NewPan(stripes(200, 100), 32, 16, 6, source.CatmullRom)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 38, 16), p.Source().Bounds())
}

func TestNewPanErrors(t *testing.T) {
	_, err := NewPan(stripes(4, 4), 0, 4, 1, source.Lanczos3)
	assert.Error(t, err)
	_, err = NewPan(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 4, 4, 1, source.Lanczos3)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	spec := Spec{Width: 16, Height: 8, Frames: 3, Sphere: DefaultSphereParams(), Filter: source.Lanczos3}

	for _, k := range []Kind{KindDepth, KindColor, KindPlaceholder} {
		g, err := Build(k, spec)
		require.NoError(t, err)
		assert.Equal(t, k, g.Kind())
		assert.Equal(t, 3, g.Frames())
		w, h := g.Size()
		assert.Equal(t, [2]int{16, 8}, [2]int{w, h})
	}

	_, err := Build(KindPan, spec)
	assert.Error(t, err, "pan without source")

	spec.Source = filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(spec.Source)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, stripes(40, 20)))
	require.NoError(t, f.Close())

	g, err := Build(KindPan, spec)
	require.NoError(t, err)
	assert.Equal(t, KindPan, g.Kind())

	_, err = Build(KindDepth, Spec{Width: 0, Height: 8, Frames: 1})
	assert.Error(t, err)
}
