package scene

import (
	"fmt"

	"rawframes/internal/source"
)

// Spec carries what Build needs to construct any generator.
type Spec struct {
	Width, Height int
	Frames        int
	Sphere        SphereParams
	Source        string // pan only
	Filter        source.Filter
}

// Build constructs the generator for kind. The pan source is decoded and
// resized here, so a bad photograph fails before any frame is written.
func Build(kind Kind, s Spec) (Generator, error) {
	if s.Width <= 0 || s.Height <= 0 || s.Frames <= 0 {
		return nil, fmt.Errorf("scene: %s needs positive size and frames, got %dx%d, %d frames", kind, s.Width, s.Height, s.Frames)
	}
	switch kind {
	case KindDepth:
		return NewSphere(s.Width, s.Height, s.Frames, s.Sphere), nil
	case KindColor:
		return NewGradient(s.Width, s.Height, s.Frames), nil
	case KindPlaceholder:
		return NewPlaceholder(s.Width, s.Height, s.Frames), nil
	case KindPan:
		if s.Source == "" {
			return nil, fmt.Errorf("scene: pan needs a source image")
		}
		img, err := source.Load(s.Source)
		if err != nil {
			return nil, err
		}
		return NewPan(img, s.Width, s.Height, s.Frames, s.Filter)
	}
	return nil, fmt.Errorf("scene: unknown generator %q", kind)
}
