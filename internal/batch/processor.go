package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"rawframes/internal/logger"
	"rawframes/internal/scene"
	"rawframes/internal/sidecar"
)

// Config holds the settings for one generator run.
type Config struct {
	OutputDir string
	Workers   int
	Atomic    bool
	Resume    bool
	Manifest  bool
	Sidecars  sidecar.Options

	// ProgressEvery is the progress log interval; zero means 2s.
	ProgressEvery time.Duration
}

// Result holds the outcome of one frame.
type Result struct {
	Frame   int
	Files   []string
	Bytes   int64
	Skipped bool // resumed: already complete on disk
	Success bool
	Error   string

	entries []ManifestEntry
}

// Run renders every frame of gen into cfg.OutputDir using a worker pool.
// Frame failures do not stop other frames; they are returned together.
// The manifest is written even when some frames failed, listing only the
// files that were completed.
func Run(ctx context.Context, cfg Config, gen scene.Generator) ([]Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create %s: %w", cfg.OutputDir, err)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	every := cfg.ProgressEvery
	if every <= 0 {
		every = 2 * time.Second
	}

	total := gen.Frames()
	results := make([]Result, total)
	for i := range results {
		results[i].Frame = i
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Sugar.Infof("[%d/%d] %.1f frames/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range frameChan {
				results[i] = processFrame(cfg, gen, i)
				processed.Add(1)
			}
		}()
	}

	dispatched := 0
send:
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			break send
		case frameChan <- i:
			dispatched++
		}
	}
	close(frameChan)

	wg.Wait()
	close(done)

	var errs *multierror.Error
	for i := dispatched; i < total; i++ {
		results[i].Error = ctx.Err().Error()
	}
	if dispatched < total {
		errs = multierror.Append(errs, fmt.Errorf("%s: stopped after %d/%d frames: %w", gen.Kind(), dispatched, total, ctx.Err()))
	}
	for _, r := range results[:dispatched] {
		if !r.Success {
			errs = multierror.Append(errs, fmt.Errorf("%s frame %d: %s", gen.Kind(), r.Frame, r.Error))
		}
	}

	if cfg.Manifest {
		if err := updateManifest(cfg.OutputDir, gen, results); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	logger.Info("run finished",
		zap.String("generator", string(gen.Kind())),
		zap.String("dir", cfg.OutputDir),
		zap.Int("frames", total),
		zap.Int("failed", failed(results)),
		zap.Duration("elapsed", time.Since(start)))

	return results, errs.ErrorOrNil()
}

func failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}

func processFrame(cfg Config, gen scene.Generator, i int) Result {
	w, h := gen.Size()
	res := Result{Frame: i}

	specs, err := scene.Layout(gen.Kind(), i)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Resume && complete(cfg.OutputDir, specs, w, h) {
		for _, s := range specs {
			sum, n, err := HashFile(filepath.Join(cfg.OutputDir, s.Name))
			if err != nil {
				res.Error = err.Error()
				return res
			}
			res.Files = append(res.Files, s.Name)
			res.Bytes += n
			res.entries = append(res.entries, entry(gen, i, s, n, sum))
		}
		logger.Debug("skipped complete frame", zap.String("generator", string(gen.Kind())), zap.Int("frame", i))
		res.Skipped = true
		res.Success = true
		return res
	}

	outs, err := gen.Render(i)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	for _, out := range outs {
		data := out.Bytes()
		if want := out.Format.Size(w, h); len(data) != want {
			res.Error = fmt.Sprintf("%s: %d bytes, want %d", out.Name, len(data), want)
			return res
		}

		path := filepath.Join(cfg.OutputDir, out.Name)
		if err := WriteFile(path, data, cfg.Atomic); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Files = append(res.Files, out.Name)
		res.Bytes += int64(len(data))
		res.entries = append(res.entries, entry(gen, i, out.FileSpec, int64(len(data)), hashBytes(data)))
		logger.Info("generated",
			zap.String("file", path),
			zap.String("size", humanize.Bytes(uint64(len(data)))))

		if cfg.Sidecars.Enabled() {
			if _, err := sidecar.Write(cfg.OutputDir, out, cfg.Sidecars); err != nil {
				res.Error = err.Error()
				return res
			}
		}
	}

	res.Success = true
	return res
}

func entry(gen scene.Generator, i int, s scene.FileSpec, n int64, sum string) ManifestEntry {
	return ManifestEntry{
		File:      s.Name,
		Generator: string(gen.Kind()),
		Frame:     i,
		Format:    s.Format.String(),
		Bytes:     n,
		SHA256:    sum,
	}
}

func updateManifest(dir string, gen scene.Generator, results []Result) error {
	w, h := gen.Size()
	path := filepath.Join(dir, ManifestName)

	m, err := ReadManifest(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m = &Manifest{}
	case err != nil:
		return err
	}
	if m.Width != w || m.Height != h {
		// Entries for other dimensions describe files that were overwritten or are stale.
		m = &Manifest{Width: w, Height: h}
	}

	for _, r := range results {
		if r.Success {
			m.Merge(r.entries)
		}
	}
	return WriteManifest(path, m)
}
