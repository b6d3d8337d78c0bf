// Command fixturegen writes the raw-buffer frame sets the Vulkan renderer
// loads as test input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rawframes/internal/config"
	"rawframes/internal/logger"
)

// rootEnv is shared by every subcommand.
type rootEnv struct {
	configFile string
	flags      config.Flags

	resume, preview, npy bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	env := &rootEnv{}

	root := &cobra.Command{
		Use:   "fixturegen",
		Short: "Generate raw frame fixtures for the renderer",
		Long: `fixturegen writes headerless .raw frame buffers:

	depth        float32 depth of a sphere circling in front of a wall
	color        scrolling RGBA gradient
	placeholder  color plus constant depth/normal/albedo/motion buffers
	pan          a photograph panned across the frame, with packed depth

Settings come from defaults, then --config, then flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: env.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&env.configFile, "config", "c", "", "YAML or JSON config file")
	pf.StringVarP(&env.flags.OutputDir, "output", "o", "", "Output root (default: .)")
	pf.IntVar(&env.flags.Width, "width", 0, "Frame width (default: 1920)")
	pf.IntVar(&env.flags.Height, "height", 0, "Frame height (default: 864)")
	pf.IntVarP(&env.flags.Frames, "frames", "n", 0, "Frame count for every generator")
	pf.IntVarP(&env.flags.Workers, "workers", "w", 0, "Number of worker goroutines (default: 1)")
	pf.StringVar(&env.flags.Resample, "resample", "", "Pan resize filter: lanczos3, catmullrom, bilinear")
	pf.StringVar(&env.flags.LogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&env.flags.LogFile, "log-file", "", "Also write JSON logs to this rotating file")
	pf.BoolVar(&env.resume, "resume", false, "Skip frames whose files are already complete")
	pf.BoolVar(&env.preview, "preview", false, "Write a .webp preview next to every frame")
	pf.BoolVar(&env.npy, "npy", false, "Write a .npy copy of float depth frames")

	root.AddCommand(
		env.generateCmd("depth", "Moving-sphere float32 depth frames"),
		env.generateCmd("color", "Scrolling gradient color frames"),
		env.generateCmd("placeholder", "Color frames plus constant placeholder buffers"),
		env.panCmd(),
		env.allCmd(),
		env.verifyCmd(),
		env.configCmd(),
	)
	return root
}

// setup loads the config, applies flags and starts logging.
func (r *rootEnv) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(r.configFile)
	if err != nil {
		return err
	}
	r.flags.Resume = switchFlag(cmd, "resume", r.resume)
	r.flags.Preview = switchFlag(cmd, "preview", r.preview)
	r.flags.NPY = switchFlag(cmd, "npy", r.npy)
	cfg.Resolve(r.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	r.cfg = cfg
	return nil
}

// switchFlag returns nil unless the flag was given, so --resume=false can
// turn off a setting from the config file.
func switchFlag(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		logger.Error("fixturegen failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
