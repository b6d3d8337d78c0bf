package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rawframes/internal/batch"
	"rawframes/internal/config"
	"rawframes/internal/logger"
	"rawframes/internal/scene"
	"rawframes/internal/sidecar"
	"rawframes/internal/source"
)

func (r *rootEnv) generateCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), r.cfg, scene.Kind(name))
		},
	}
}

func (r *rootEnv) panCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pan [source]",
		Short: "Pan a photograph across the frame with a packed depth ramp",
		Long: `
Resize the source to (width+frames)×height, then emit one width-wide window per
frame, flipped vertically, with a 24-bit packed depth ramp alongside.
The source defaults to pan.source in the config (Lenna.jpg).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				r.cfg.Pan.Source = args[0]
			}
			return generate(cmd.Context(), r.cfg, scene.KindPan)
		},
	}
}

func (r *rootEnv) allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs *multierror.Error
			for _, k := range scene.Kinds {
				if err := cmd.Context().Err(); err != nil {
					return multierror.Append(errs, err)
				}
				if err := generate(cmd.Context(), r.cfg, k); err != nil {
					errs = multierror.Append(errs, err)
				}
			}
			return errs.ErrorOrNil()
		},
	}
}

// buildSpec collects what scene.Build needs from the config.
func buildSpec(cfg *config.Config, kind scene.Kind) (scene.Spec, error) {
	filter, err := source.ParseFilter(cfg.Resample)
	if err != nil {
		return scene.Spec{}, err
	}
	return scene.Spec{
		Width:  cfg.Width,
		Height: cfg.Height,
		Frames: cfg.Section(kind).Frames,
		Sphere: scene.SphereParams{
			Radius:     cfg.Depth.Radius,
			BaseDepth:  cfg.Depth.BaseDepth,
			Background: cfg.Depth.Background,
		},
		Source: cfg.Pan.Source,
		Filter: filter,
	}, nil
}

func batchConfig(cfg *config.Config, kind scene.Kind) batch.Config {
	return batch.Config{
		OutputDir: cfg.Dir(cfg.Section(kind).Subdir),
		Workers:   cfg.Workers,
		Atomic:    cfg.Atomic,
		Resume:    cfg.Resume,
		Manifest:  cfg.Manifest,
		Sidecars:  sidecar.Options{Preview: cfg.Preview, NPY: cfg.NPY},
	}
}

// generate builds one generator and writes all of its frames.
func generate(ctx context.Context, cfg *config.Config, kind scene.Kind) error {
	spec, err := buildSpec(cfg, kind)
	if err != nil {
		return err
	}
	gen, err := scene.Build(kind, spec)
	if err != nil {
		return err
	}

	bc := batchConfig(cfg, kind)
	logger.Info("generating",
		zap.String("generator", string(kind)),
		zap.String("dir", bc.OutputDir),
		zap.Int("frames", gen.Frames()),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("workers", bc.Workers))

	results, err := batch.Run(ctx, bc, gen)

	var written, skipped int
	var size int64
	for _, res := range results {
		if !res.Success {
			continue
		}
		if res.Skipped {
			skipped++
		} else {
			written++
		}
		size += res.Bytes
	}
	logger.Info("done",
		zap.String("generator", string(kind)),
		zap.Int("written", written),
		zap.Int("skipped", skipped),
		zap.String("total", humanize.Bytes(uint64(size))))

	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}
