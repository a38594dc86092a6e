package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aa-triangle-renderer/internal/ppm"
	"aa-triangle-renderer/internal/raster"
)

// stats summarizes a decoded image.
type stats struct {
	width, height int
	lit           int // pixels that are not black
	partial       int // lit pixels with any channel strictly between 0 and 255
}

func summarize(fb *raster.FrameBuffer) stats {
	st := stats{width: fb.Width, height: fb.Height}
	for i := 0; i < len(fb.Pix); i += 3 {
		r, g, b := fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
		if r == 0 && g == 0 && b == 0 {
			continue
		}
		st.lit++
		if (r > 0 && r < 255) || (g > 0 && g < 255) || (b > 0 && b < 255) {
			st.partial++
		}
	}
	return st
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Report size and coverage of a P6 pixel map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			defer f.Close()

			fb, err := ppm.DecodeBuffer(f)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}

			st := summarize(fb)
			logger.Debug("decoded", "path", path, "bytes", ppm.Size(st.width, st.height))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d lit pixels (%d partial)\n",
				path, st.width, st.height, st.lit, st.partial)
			return nil
		},
	}
}
