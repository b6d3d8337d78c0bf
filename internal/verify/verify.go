// Package verify checks a fixture directory the way the renderer's loader
// reads it: one file per prefix per frame, each exactly W×H×4 bytes.
package verify

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"rawframes/internal/batch"
	"rawframes/internal/raster"
	"rawframes/internal/scene"
)

// Problem is one file that failed a check.
type Problem struct {
	File   string
	Reason string
}

func (p Problem) String() string {
	return p.File + ": " + p.Reason
}

// Stats summarizes the depth files of a directory.
type Stats struct {
	FloatMin, FloatMax   float32 // float32 depth files
	PackedMin, PackedMax float64 // unpacked 24-bit depth files
	AlphaOpaque          bool    // every packed depth pixel has A=255
	floatSeen, packSeen  bool
}

// Report is the result of Dir.
type Report struct {
	Kind     scene.Kind
	Dir      string
	Checked  int
	Missing  []string
	Problems []Problem
	Stats    Stats

	// ManifestChecked is the number of files whose SHA-256 matched manifest.json.
	ManifestChecked int
}

// OK reports whether every expected file is present and valid.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Problems) == 0
}

// HasFloat reports whether any float depth file was read.
func (s Stats) HasFloat() bool { return s.floatSeen }

// HasPacked reports whether any packed depth file was read.
func (s Stats) HasPacked() bool { return s.packSeen }

// Dir checks frames [0, frames) of kind in dir at w×h.
func Dir(dir string, kind scene.Kind, w, h, frames int) (*Report, error) {
	if w <= 0 || h <= 0 || frames <= 0 {
		return nil, fmt.Errorf("verify: need positive size and frames, got %dx%d, %d frames", w, h, frames)
	}
	if _, err := scene.Layout(kind, 0); err != nil {
		return nil, err
	}

	rep := &Report{Kind: kind, Dir: dir}
	rep.Stats.AlphaOpaque = true
	rep.Stats.FloatMin, rep.Stats.FloatMax = math.MaxFloat32, -math.MaxFloat32
	rep.Stats.PackedMin, rep.Stats.PackedMax = math.Inf(1), math.Inf(-1)

	for i := 0; i < frames; i++ {
		specs, _ := scene.Layout(kind, i)
		for _, s := range specs {
			rep.Checked++
			data, err := os.ReadFile(filepath.Join(dir, s.Name))
			if errors.Is(err, os.ErrNotExist) {
				rep.Missing = append(rep.Missing, s.Name)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("verify: read %s: %w", s.Name, err)
			}
			if want := s.Format.Size(w, h); len(data) != want {
				rep.Problems = append(rep.Problems, Problem{s.Name, fmt.Sprintf("size %d, want %d", len(data), want)})
				continue
			}
			rep.inspect(s, data, w, h)
		}
	}

	if err := rep.checkManifest(w, h); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Report) inspect(s scene.FileSpec, data []byte, w, h int) {
	switch s.Format {
	case raster.FormatFloat32:
		d, _ := raster.DecodeDepth32(data, w, h)
		for _, z := range d.Z {
			if math.IsNaN(float64(z)) || math.IsInf(float64(z), 0) {
				r.Problems = append(r.Problems, Problem{s.Name, "non-finite depth"})
				return
			}
		}
		lo, hi := d.MinMax()
		r.Stats.FloatMin = min(r.Stats.FloatMin, lo)
		r.Stats.FloatMax = max(r.Stats.FloatMax, hi)
		r.Stats.floatSeen = true

	case raster.FormatPackedDepth:
		b, _ := raster.DecodeRGBA8(data, w, h)
		opaque := true
		for p := 0; p < len(b.Pix); p += 4 {
			if b.Pix[p+3] != 255 {
				opaque = false
			}
			z := raster.UnpackDepth24(b.Pix[p], b.Pix[p+1], b.Pix[p+2])
			r.Stats.PackedMin = math.Min(r.Stats.PackedMin, z)
			r.Stats.PackedMax = math.Max(r.Stats.PackedMax, z)
		}
		r.Stats.packSeen = true
		r.Stats.AlphaOpaque = r.Stats.AlphaOpaque && opaque
		if !opaque {
			r.Problems = append(r.Problems, Problem{s.Name, "packed depth alpha is not 255"})
		}
	}
}

// checkManifest compares recorded hashes for the files of this kind. A
// directory without a manifest passes.
func (r *Report) checkManifest(w, h int) error {
	m, err := batch.ReadManifest(filepath.Join(r.Dir, batch.ManifestName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if m.Width != w || m.Height != h {
		r.Problems = append(r.Problems, Problem{batch.ManifestName, fmt.Sprintf("manifest is %dx%d, checking %dx%d", m.Width, m.Height, w, h)})
		return nil
	}

	bad := make(map[string]bool, len(r.Missing)+len(r.Problems))
	for _, f := range r.Missing {
		bad[f] = true
	}
	for _, p := range r.Problems {
		bad[p.File] = true
	}

	for _, e := range m.Entries {
		if e.Generator != string(r.Kind) || bad[e.File] {
			continue
		}
		sum, _, err := batch.HashFile(filepath.Join(r.Dir, e.File))
		if errors.Is(err, os.ErrNotExist) {
			r.Problems = append(r.Problems, Problem{e.File, "listed in manifest but missing"})
			continue
		}
		if err != nil {
			return fmt.Errorf("verify: hash %s: %w", e.File, err)
		}
		if sum != e.SHA256 {
			r.Problems = append(r.Problems, Problem{e.File, "sha256 differs from manifest"})
			continue
		}
		r.ManifestChecked++
	}
	return nil
}
