package scene

import (
	"math"

	"rawframes/internal/mathutil"
	"rawframes/internal/raster"
)

// SphereParams describes the moving sphere and its backdrop.
type SphereParams struct {
	Radius     float64
	BaseDepth  float64 // cz, depth of the sphere's centre plane
	Background float64
}

// DefaultSphereParams returns radius 0.4 at depth 2.0 in front of a 5.0 wall.
func DefaultSphereParams() SphereParams {
	return SphereParams{Radius: 0.4, BaseDepth: 2.0, Background: 5.0}
}

// Sphere renders a hemisphere circling in front of a flat background as a
// float32 depth map. x spans [-1,1]; y spans ±height/width so pixels are square.
type Sphere struct {
	width, height, frames int
	params                SphereParams
	xs, ys                []float64
}

// NewSphere precomputes the coordinate grid.
func NewSphere(w, h, frames int, p SphereParams) *Sphere {
	aspect := float64(h) / float64(w)
	return &Sphere{
		width:  w,
		height: h,
		frames: frames,
		params: p,
		xs:     mathutil.Linspace(-1, 1, w),
		ys:     mathutil.Linspace(-1*aspect, 1*aspect, h),
	}
}

func (s *Sphere) Kind() Kind       { return KindDepth }
func (s *Sphere) Frames() int      { return s.frames }
func (s *Sphere) Size() (int, int) { return s.width, s.height }

// Center returns the sphere centre for frame i.
func (s *Sphere) Center(i int) (cx, cy float64) {
	t := frameTime(i, s.frames)
	return 0.5 * math.Cos(2*math.Pi*t), 0.3 * math.Sin(2*math.Pi*t)
}

// Grid returns the normalized coordinate of pixel (x, y).
func (s *Sphere) Grid(x, y int) (float64, float64) {
	return s.xs[x], s.ys[y]
}

// Depth renders frame i. The silhouette is a hard dist < radius test.
func (s *Sphere) Depth(i int) *raster.Depth32 {
	cx, cy := s.Center(i)
	r := s.params.Radius
	r2 := r * r
	d := raster.NewDepth32(s.width, s.height, float32(s.params.Background))

	for y, yv := range s.ys {
		dy := yv - cy
		row := d.Z[y*s.width : (y+1)*s.width]
		for x, xv := range s.xs {
			dx := xv - cx
			dist := math.Sqrt(float64(dx*dx) + float64(dy*dy))
			if dist < r {
				row[x] = float32(s.params.BaseDepth - math.Sqrt(math.Max(0, r2-float64(dist*dist))))
			}
		}
	}
	return d
}

func (s *Sphere) Render(i int) ([]Output, error) {
	if err := checkFrame(s, i); err != nil {
		return nil, err
	}
	specs, _ := Layout(KindDepth, i)
	return []Output{{FileSpec: specs[0], Depth: s.Depth(i)}}, nil
}
