// Package scene synthesizes the per-frame buffers of each fixture set.
package scene

import (
	"fmt"

	"rawframes/internal/raster"
)

// Kind names a fixture generator.
type Kind string

const (
	KindDepth       Kind = "depth"
	KindColor       Kind = "color"
	KindPlaceholder Kind = "placeholder"
	KindPan         Kind = "pan"
)

// Kinds lists every generator in the order "all" runs them.
var Kinds = []Kind{KindDepth, KindColor, KindPlaceholder, KindPan}

// ParseKind validates a generator name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("scene: unknown generator %q", s)
}

// File name prefixes the renderer looks for.
const (
	PrefixColor  = "color_input_0_"
	PrefixDepth  = "depth_input_0_"
	PrefixNormal = "normal_input_0_"
	PrefixAlbedo = "albedo_0_"
	PrefixMotion = "mv_input_0_"
)

// Placeholder fill values.
const (
	PlaceholderDepth  = 128
	PlaceholderNormal = 128
	PlaceholderAlbedo = 200
	PlaceholderMotion = 0
)

// FrameFile returns prefix + 4-digit zero-padded index + ".raw".
func FrameFile(prefix string, i int) string {
	return fmt.Sprintf("%s%04d.raw", prefix, i)
}

// FileSpec describes one file a frame produces.
type FileSpec struct {
	Name   string
	Format raster.Format
}

// Layout returns the files frame i of kind produces, without rendering.
func Layout(kind Kind, i int) ([]FileSpec, error) {
	switch kind {
	case KindDepth:
		return []FileSpec{{FrameFile(PrefixDepth, i), raster.FormatFloat32}}, nil
	case KindColor:
		return []FileSpec{{FrameFile(PrefixColor, i), raster.FormatRGBA8}}, nil
	case KindPlaceholder:
		return []FileSpec{
			{FrameFile(PrefixColor, i), raster.FormatRGBA8},
			{FrameFile(PrefixDepth, i), raster.FormatRGBA8},
			{FrameFile(PrefixNormal, i), raster.FormatRGBA8},
			{FrameFile(PrefixAlbedo, i), raster.FormatRGBA8},
			{FrameFile(PrefixMotion, i), raster.FormatRGBA8},
		}, nil
	case KindPan:
		return []FileSpec{
			{FrameFile(PrefixColor, i), raster.FormatRGBA8},
			{FrameFile(PrefixDepth, i), raster.FormatPackedDepth},
		}, nil
	}
	return nil, fmt.Errorf("scene: unknown generator %q", kind)
}

// Output is one rendered file. Exactly one of RGBA and Depth is set.
type Output struct {
	FileSpec
	RGBA  *raster.RGBA8
	Depth *raster.Depth32
}

// Bytes returns the raw file contents.
func (o Output) Bytes() []byte {
	if o.Depth != nil {
		return o.Depth.Bytes()
	}
	return o.RGBA.Bytes()
}

// Generator renders the frames of one fixture set. Render must be safe to
// call from several goroutines for different frames.
type Generator interface {
	Kind() Kind
	Frames() int
	Size() (w, h int)
	Render(i int) ([]Output, error)
}

// frameTime is the time parameter t = i / frames.
func frameTime(i, frames int) float64 {
	return float64(i) / float64(frames)
}

func checkFrame(g Generator, i int) error {
	if i < 0 || i >= g.Frames() {
		return fmt.Errorf("scene: %s frame %d out of range [0,%d)", g.Kind(), i, g.Frames())
	}
	return nil
}
