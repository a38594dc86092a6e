package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"aa-triangle-renderer/internal/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// Values are typically injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with logs on stderr.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// settings holds the flags shared by every command.
type settings struct {
	configFile string
	flags      config.Flags
}

// load reads the config file (if any), applies flags and defaults, and
// validates the result.
func (s *settings) load() (config.Config, error) {
	var cfg config.Config
	if s.configFile != "" {
		var err error
		cfg, err = config.Load(s.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(s.flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewRootCommand builds the command tree. Logs go to logOut.
//
// The root command renders the configured triangle:
//
//	render                                  # 203x203 white triangle → ./output
//	render -o tri.png --policy continuous   # PNG, full-domain coverage shading
//	render --config scenes.toml batch       # one image per [[scenes]] entry
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool
	s := &settings{}

	root := &cobra.Command{
		Use:           "render",
		Short:         "Render an anti-aliased triangle to a binary pixel map",
		Long:          `render rasterizes a single triangle with distance-based anti-aliasing and writes the image as a P6 pixel map.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), s)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("render %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&s.configFile, "config", "c", "", "path to a JSON or TOML config file")
	pf.IntVar(&s.flags.Width, "width", 0, "image width in pixels (default 203)")
	pf.IntVar(&s.flags.Height, "height", 0, "image height in pixels (default 203)")
	pf.StringVar(&s.flags.Policy, "policy", "", "shading policy: banded or continuous (default banded)")
	pf.StringVar(&s.flags.Space, "space", "", "edge evaluation space: normalized or pixel (default normalized)")
	pf.IntVar(&s.flags.Workers, "workers", 0, "parallel row bands, or scenes in batch mode (default 1)")
	pf.IntVar(&s.flags.Supersample, "supersample", 0, "render at N× resolution and downsample (default 1)")
	pf.StringVar(&s.flags.Background, "background", "", "background image (PNG, JPEG, TGA or PPM)")

	root.Flags().StringVarP(&s.flags.Output, "output", "o", "", "output path; extension picks the format (default ./output, PPM)")
	root.Flags().BoolVar(&s.flags.MarkVertices, "mark-vertices", false, "mark each vertex pixel in white")

	root.AddCommand(newBatchCmd(s))
	root.AddCommand(newHalfSpaceCmd(s))
	root.AddCommand(newInspectCmd())

	return root
}
