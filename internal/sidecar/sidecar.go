// Package sidecar writes optional companion files next to raw frames:
// WebP previews for eyeballing and .npy copies of float depth.
package sidecar

import (
	"path/filepath"
	"strings"

	"rawframes/internal/raster"
	"rawframes/internal/scene"
)

// Options selects which sidecars are written.
type Options struct {
	Preview bool
	NPY     bool
}

// Enabled reports whether any sidecar is on.
func (o Options) Enabled() bool {
	return o.Preview || o.NPY
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Write emits the sidecars for out into dir and returns the names written.
func Write(dir string, out scene.Output, opts Options) ([]string, error) {
	var written []string

	if opts.Preview {
		name := stem(out.Name) + ".webp"
		if err := WritePreview(filepath.Join(dir, name), out); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	if opts.NPY && out.Format == raster.FormatFloat32 && out.Depth != nil {
		name := stem(out.Name) + ".npy"
		if err := WriteNPY(filepath.Join(dir, name), out.Depth); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}
