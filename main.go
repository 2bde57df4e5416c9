package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/preview"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

var version = "dev"

// Config holds the command line options
type Config struct {
	Scene      string
	Width      int
	Height     int
	Samples    int
	MaxDepth   int
	Seed       int64
	Workers    int
	Output     string
	Preview    int
	Quiet      bool
	OutputRoot string // Parent of the per-scene output directories
}

func main() {
	root := newRootCommand(&Config{OutputRoot: "output"})
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spheretracer",
		Short: "Render sphere scenes with a Monte Carlo path tracer",
		Long: "spheretracer renders a built-in scene or a JSON scene file and writes the result\n" +
			"to output/<scene>/render_<timestamp>.ppm unless --output names another .ppm or .png file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.Scene, "scene", "s", "default", "Built-in scene name or path to a .json scene file")
	flags.IntVar(&config.Width, "width", 0, "Image width in pixels (default from scene)")
	flags.IntVar(&config.Height, "height", 0, "Image height in pixels (default from scene)")
	flags.IntVarP(&config.Samples, "samples", "n", 0, "Samples per pixel (default from scene)")
	flags.IntVar(&config.MaxDepth, "depth", 0, "Maximum ray bounce depth (default from scene)")
	flags.Int64Var(&config.Seed, "seed", 0, "Random seed (default from scene)")
	flags.IntVarP(&config.Workers, "workers", "w", 0, "Number of parallel workers (0 = use CPU count)")
	flags.StringVarP(&config.Output, "output", "o", "", "Output file (.ppm or .png)")
	flags.IntVar(&config.Preview, "preview", 0, "Print a terminal preview this many columns wide (0 = off)")
	flags.BoolVarP(&config.Quiet, "quiet", "q", false, "Suppress progress logging")

	cmd.AddCommand(newScenesCommand())
	return cmd
}

func newScenesCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenes, err := scene.ListAllScenes(dir)
			if err != nil {
				return err
			}
			return printScenes(cmd.OutOrStdout(), scenes)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "scenes", "Directory searched for .json scene files")
	return cmd
}

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Width(14)
	fileStyle = lipgloss.NewStyle().Faint(true)
)

func printScenes(w io.Writer, scenes []scene.SceneInfo) error {
	for _, info := range scenes {
		line := nameStyle.Render(info.ID) + " " + info.Description
		if info.Type == scene.TypeJSON {
			line = nameStyle.Render(info.Name) + " " + info.Description + " " + fileStyle.Render(info.FilePath)
		}
		if _, err := lipgloss.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// applyFlags overrides the scene's sampling settings with the flags the user set
func applyFlags(flags *pflag.FlagSet, config *Config, sampling renderer.SamplingConfig) renderer.SamplingConfig {
	if flags.Changed("width") {
		sampling.Width = config.Width
	}
	if flags.Changed("height") {
		sampling.Height = config.Height
	}
	if flags.Changed("samples") {
		sampling.SamplesPerPixel = config.Samples
	}
	if flags.Changed("depth") {
		sampling.MaxDepth = config.MaxDepth
	}
	if flags.Changed("seed") {
		sampling.Seed = config.Seed
	}
	if flags.Changed("workers") {
		sampling.NumWorkers = config.Workers
	}
	return sampling
}

func runRender(cmd *cobra.Command, config *Config) error {
	logger := renderer.NewDefaultLogger()
	if config.Quiet {
		logger = renderer.NewDiscardLogger()
	}

	selectedScene, err := scene.Open(config.Scene)
	if err != nil {
		return err
	}
	selectedScene.SamplingConfig = applyFlags(cmd.Flags(), config, selectedScene.SamplingConfig)
	if err := selectedScene.Build(); err != nil {
		return err
	}

	sampling := selectedScene.SamplingConfig
	logger.Printf("Scene %q: %d spheres, %dx%d, %d samples/pixel\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), sampling.Width, sampling.Height, sampling.SamplesPerPixel)

	raytracer := selectedScene.NewRaytracer(logger)
	raytracer.SetRowCallback(progressCallback(logger))

	frame, stats, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f, average luminance %.3f\n", stats.AverageSamples(), stats.AverageLuminance)

	filename := config.Output
	if filename == "" {
		filename = defaultOutputPath(config.OutputRoot, selectedScene.Name, time.Now())
	}
	if err := output.Save(filename, frame); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}
	logger.Printf("Render saved as %s\n", filename)

	if config.Preview > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(frame, config.Preview))
	}
	return nil
}

// progressCallback logs roughly every tenth of the image
func progressCallback(logger core.Logger) renderer.RowCallback {
	return func(_, completed, total int) {
		step := max(total/10, 1)
		if completed%step == 0 || completed == total {
			logger.Printf("Rows completed: %d/%d (%d%%)\n", completed, total, completed*100/total)
		}
	}
}

// defaultOutputPath returns root/<scene>/render_<timestamp>.ppm
func defaultOutputPath(root, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(root, outputDirName(sceneName), fmt.Sprintf("render_%s.ppm", timestamp))
}

// outputDirName keeps scene names usable as a single directory component
func outputDirName(sceneName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(sceneName))
	if name == "" {
		return "scene"
	}
	return name
}
