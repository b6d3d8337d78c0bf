package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"rawframes/internal/scene"
)

// AutoDir as a subdir asks for a fresh timestamp-named directory.
const AutoDir = "auto"

// Config holds every setting the generators share plus per-generator sections.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Workers   int    `yaml:"workers"`

	Atomic   bool   `yaml:"atomic"`
	Resume   bool   `yaml:"resume"`
	Manifest bool   `yaml:"manifest"`
	Preview  bool   `yaml:"preview"`
	NPY      bool   `yaml:"npy"`
	Resample string `yaml:"resample"`

	Logging LoggingConfig `yaml:"logging"`

	Depth       DepthConfig     `yaml:"depth"`
	Color       GeneratorConfig `yaml:"color"`
	Placeholder GeneratorConfig `yaml:"placeholder"`
	Pan         PanConfig       `yaml:"pan"`
}

// GeneratorConfig is the part every generator section has.
type GeneratorConfig struct {
	Frames int    `yaml:"frames"`
	Subdir string `yaml:"subdir"`
}

// DepthConfig configures the moving-sphere depth generator.
type DepthConfig struct {
	GeneratorConfig `yaml:",inline"`
	Radius          float64 `yaml:"radius"`
	BaseDepth       float64 `yaml:"base_depth"`
	Background      float64 `yaml:"background"`
}

// PanConfig configures the photo-panning generator.
type PanConfig struct {
	GeneratorConfig `yaml:",inline"`
	Source          string `yaml:"source"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the settings the fixture set has always been produced with.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Width:     1920,
		Height:    864,
		Workers:   1,
		Atomic:    true,
		Manifest:  true,
		Resample:  "lanczos3",
		Logging:   LoggingConfig{Level: "info"},
		Depth: DepthConfig{
			GeneratorConfig: GeneratorConfig{Frames: 30, Subdir: "img"},
			Radius:          0.4,
			BaseDepth:       2.0,
			Background:      5.0,
		},
		Color:       GeneratorConfig{Frames: 10, Subdir: ""},
		Placeholder: GeneratorConfig{Frames: 150, Subdir: "nvt_2026_01_23_11_43_31_45"},
		Pan: PanConfig{
			GeneratorConfig: GeneratorConfig{Frames: 30, Subdir: "pan"},
			Source:          "Lenna.jpg",
		},
	}
}

// Load reads a YAML (or JSON) config file over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values and nil switches leave the config untouched.
type Flags struct {
	OutputDir string
	Width     int
	Height    int
	Frames    int
	Workers   int
	Resample  string
	LogLevel  string
	LogFile   string
	Source    string
	Resume    *bool
	Preview   *bool
	NPY       *bool
}

// Resolve applies flag overrides and expands an "auto" placeholder subdir.
func (c *Config) Resolve(flags Flags) {
	c.resolveAt(flags, time.Now())
}

func (c *Config) resolveAt(flags Flags, now time.Time) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Depth.Frames = flags.Frames
		c.Color.Frames = flags.Frames
		c.Placeholder.Frames = flags.Frames
		c.Pan.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Resample != "" {
		c.Resample = flags.Resample
	}
	if flags.LogLevel != "" {
		c.Logging.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.Logging.LogFile = flags.LogFile
	}
	if flags.Source != "" {
		c.Pan.Source = flags.Source
	}
	if flags.Resume != nil {
		c.Resume = *flags.Resume
	}
	if flags.Preview != nil {
		c.Preview = *flags.Preview
	}
	if flags.NPY != nil {
		c.NPY = *flags.NPY
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Placeholder.Subdir == AutoDir {
		c.Placeholder.Subdir = TimestampDir(now)
	}
}

// Validate reports settings no generator can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	for name, n := range map[string]int{
		"depth":       c.Depth.Frames,
		"color":       c.Color.Frames,
		"placeholder": c.Placeholder.Frames,
		"pan":         c.Pan.Frames,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s.frames must be positive, got %d", name, n))
		}
	}
	if c.Depth.Radius <= 0 {
		errs = append(errs, fmt.Errorf("depth.radius must be positive, got %g", c.Depth.Radius))
	}
	errs = append(errs, c.overlaps()...)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Section returns the frames and subdir configured for kind.
func (c *Config) Section(kind scene.Kind) GeneratorConfig {
	switch kind {
	case scene.KindDepth:
		return c.Depth.GeneratorConfig
	case scene.KindColor:
		return c.Color
	case scene.KindPlaceholder:
		return c.Placeholder
	case scene.KindPan:
		return c.Pan.GeneratorConfig
	}
	return GeneratorConfig{}
}

// overlaps reports generators that would write the same file into one
// directory, where the later run would replace the earlier one's frames.
func (c *Config) overlaps() []error {
	var errs []error
	owner := make(map[string]scene.Kind)
	for _, k := range scene.Kinds {
		specs, _ := scene.Layout(k, 0)
		dir := filepath.Clean(c.Section(k).Subdir)
		seen := make(map[scene.Kind]bool)
		for _, s := range specs {
			key := filepath.Join(dir, s.Name)
			prev, ok := owner[key]
			if !ok {
				owner[key] = k
				continue
			}
			if !seen[prev] {
				seen[prev] = true
				errs = append(errs, fmt.Errorf("%s and %s both write %s into subdir %q", prev, k, s.Name, c.Section(k).Subdir))
			}
		}
	}
	return errs
}

// Dir joins a generator subdir onto the output root.
func (c *Config) Dir(sub string) string {
	return filepath.Join(c.OutputDir, sub)
}

// TimestampDir names a directory the way the renderer's capture folders are
// named: nvt_YYYY_MM_DD_HH_MM_SS_cc, cc being hundredths of a second.
func TimestampDir(t time.Time) string {
	return fmt.Sprintf("nvt_%s_%02d", t.Format("2006_01_02_15_04_05"), t.Nanosecond()/1e7)
}
