package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/patchwork/pkg/bezier"
	"github.com/taigrr/patchwork/pkg/config"
	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/render"
	"github.com/taigrr/patchwork/pkg/scene"
)

// options holds the flags shared by every command. Flags the user sets
// override the config file.
type options struct {
	configPath string
	fps        int
	bg         string
	smooth     bool
	logFile    string
	logLevel   string
	snapshot   string
	size       string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "patchwork",
		Short: "Terminal graphics demos: Bézier patch, marble shader, picking",
		Long: "patchwork renders three small 3D demos in the terminal with a software rasterizer:\n" +
			"a textured bicubic Bézier patch, a procedural marble shader and color-ID object picking.",
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "TOML config file")
	f.IntVar(&o.fps, "fps", 30, "Target FPS")
	f.StringVar(&o.bg, "bg", "25,25,25", "Background color (R,G,B or #rrggbb)")
	f.BoolVar(&o.smooth, "smooth", true, "Ease the orbit camera toward its goal")
	f.StringVar(&o.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&o.snapshot, "snapshot", "", "Render one frame to this PNG file and exit")
	f.StringVar(&o.size, "size", "320x200", "Snapshot size in pixels (WxH)")

	root.AddCommand(
		newPatchCmd(o),
		newMarbleCmd(o),
		newPickCmd(o),
		newTessellateCmd(o),
	)
	return root
}

// load reads the config file, applies the flags that were set and starts
// logging. The returned func closes the log file.
func (o *options) load(cmd *cobra.Command) (config.Config, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("bg") {
		cfg.Background = o.bg
	}
	if flags.Changed("smooth") {
		cfg.Smooth = o.smooth
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	closeLog, err := startLogging(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, closeLog, nil
}

// startLogging sends logs to cfg.LogFile. Without one logging stays off,
// since stderr is hidden behind the alternate screen.
func startLogging(cfg config.Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logx.SetLogger(logx.NewText(f, level))
	return func() { f.Close() }, nil
}

func sceneOptions(cfg config.Config) (scene.Options, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return scene.Options{}, err
	}
	return scene.Options{Background: bg, FPS: cfg.FPS, Smooth: cfg.Smooth}, nil
}

// run starts a demo in the terminal, or renders one frame of it when
// --snapshot is set.
func (o *options) run(cmd *cobra.Command, cfg config.Config, build buildFunc) error {
	opts, err := sceneOptions(cfg)
	if err != nil {
		return err
	}
	if o.snapshot != "" {
		var w, h int
		if _, err := fmt.Sscanf(o.size, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("invalid --size %q: want WxH", o.size)
		}
		return snapshot(o.snapshot, w, h, opts, build)
	}
	return runTerminal(cmd.Context(), opts, build)
}

func newPatchCmd(o *options) *cobra.Command {
	var (
		resolution int
		texture    string
		controlNet bool
	)
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Orbit a textured bicubic Bézier patch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			flags := cmd.Flags()
			if flags.Changed("resolution") {
				cfg.Patch.Resolution = resolution
			}
			if flags.Changed("texture") {
				cfg.Patch.Texture = texture
			}
			if flags.Changed("control-net") {
				cfg.Patch.ShowControlNet = controlNet
			}

			return o.run(cmd, cfg, func(dev *render.Device, opts scene.Options) (*demo, error) {
				p, err := scene.NewPatch(dev, cfg.Patch, opts)
				if err != nil {
					return nil, err
				}
				return &demo{Scene: p, input: patchInput(p)}, nil
			})
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 12, "Subdivisions per parameter direction")
	cmd.Flags().StringVar(&texture, "texture", "", "Texture image (PNG/JPG); default is a generated plasma")
	cmd.Flags().BoolVar(&controlNet, "control-net", false, "Show the control net")
	return cmd
}

func newMarbleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "marble [model.glb]",
		Short: "Fly around a mesh with a procedural marble shader",
		Long: "Fly around a mesh with a procedural marble shader. The model is a glTF/GLB file;\n" +
			"without one, or if it cannot be loaded, a cube is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			if len(args) == 1 {
				cfg.Marble.Model = args[0]
			}
			return o.run(cmd, cfg, func(dev *render.Device, opts scene.Options) (*demo, error) {
				m := scene.NewMarble(dev, cfg.Marble, opts)
				return &demo{Scene: m, input: marbleInput(m)}, nil
			})
		},
	}
}

func newPickCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Click cubes to recolor them, using color-ID picking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			return o.run(cmd, cfg, func(dev *render.Device, opts scene.Options) (*demo, error) {
				dev.MaxTargetSize = cfg.Picking.MaxTargetSize
				if !dev.SupportsTargets() {
					return nil, fmt.Errorf("pick: %w", render.ErrNoTargets)
				}
				s := scene.NewPicking(dev, opts)
				return &demo{Scene: s, input: pickInput(s)}, nil
			})
		},
	}
}

func newTessellateCmd(o *options) *cobra.Command {
	var resolution int
	cmd := &cobra.Command{
		Use:   "tessellate",
		Short: "Print statistics of the tessellated patch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			if cmd.Flags().Changed("resolution") {
				cfg.Patch.Resolution = resolution
			}
			grid := bezier.DefaultGrid()
			mesh, err := bezier.Tessellate(&grid, cfg.Patch.Resolution)
			if err != nil {
				return err
			}

			lo, hi := mesh.GetBounds()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "resolution: %d\n", cfg.Patch.Resolution)
			fmt.Fprintf(out, "vertices:   %d\n", mesh.VertexCount())
			fmt.Fprintf(out, "triangles:  %d\n", mesh.TriangleCount())
			fmt.Fprintf(out, "bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
				lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
			return nil
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 12, "Subdivisions per parameter direction")
	return cmd
}
