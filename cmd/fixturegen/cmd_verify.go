package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rawframes/internal/config"
	"rawframes/internal/scene"
	"rawframes/internal/verify"
)

func (r *rootEnv) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <kind> [dir]",
		Short: "Check a fixture directory the way the renderer loads it",
		Long: `
Check that every file of every frame exists with exactly width×height×4 bytes,
report depth ranges, and compare hashes against manifest.json when present.
dir defaults to the generator's configured output directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := scene.ParseKind(args[0])
			if err != nil {
				return err
			}
			dir := r.cfg.Dir(r.cfg.Section(kind).Subdir)
			if len(args) == 2 {
				dir = args[1]
			}
			return runVerify(cmd.OutOrStdout(), r.cfg, kind, dir)
		},
	}
}

func runVerify(w io.Writer, cfg *config.Config, kind scene.Kind, dir string) error {
	frames := cfg.Section(kind).Frames
	rep, err := verify.Dir(dir, kind, cfg.Width, cfg.Height, frames)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s, %d frames at %dx%d, %d files checked\n", kind, dir, frames, cfg.Width, cfg.Height, rep.Checked)
	if rep.Stats.HasFloat() {
		fmt.Fprintf(w, "  float depth: min %.6f max %.6f\n", rep.Stats.FloatMin, rep.Stats.FloatMax)
	}
	if rep.Stats.HasPacked() {
		fmt.Fprintf(w, "  packed depth: min %.6f max %.6f alpha opaque %t\n", rep.Stats.PackedMin, rep.Stats.PackedMax, rep.Stats.AlphaOpaque)
	}
	if rep.ManifestChecked > 0 {
		fmt.Fprintf(w, "  manifest: %d hashes match\n", rep.ManifestChecked)
	}
	for _, m := range rep.Missing {
		fmt.Fprintf(w, "  missing: %s\n", m)
	}
	for _, p := range rep.Problems {
		fmt.Fprintf(w, "  bad: %s\n", p)
	}

	if !rep.OK() {
		return fmt.Errorf("verify %s: %d missing, %d bad", kind, len(rep.Missing), len(rep.Problems))
	}
	fmt.Fprintln(w, "  OK")
	return nil
}
