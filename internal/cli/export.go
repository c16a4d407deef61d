package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-monitor/internal/chart"
)

type exportOptions struct {
	out    string
	width  int
	height int
}

func newExportChartCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export-chart",
		Short: "Render the stored history as a PNG chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd.Context(), root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			scale, err := chart.ParseScale(string(env.cfg.ChartScale))
			if err != nil {
				return err
			}
			colors := env.cfg.MustColors()
			names, histories := chart.FromSnapshot(env.store.Snapshot(), env.targets)

			f, err := os.Create(opts.out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", opts.out, err)
			}
			defer f.Close()

			err = chart.RenderPNG(f, chart.ExportInput{
				Names:      names,
				Histories:  histories,
				LineColors: colors.LineColors,
				Background: colors.ChartBg,
				Text:       colors.TextPrimary,
				MaxPoints:  env.cfg.MaxHistoryPoints,
				Scale:      scale,
				Width:      opts.width,
				Height:     opts.height,
				Title:      env.cfg.Window.Title,
			})
			if err != nil {
				f.Close()
				os.Remove(opts.out)
				return err
			}

			env.logger.Info().Str("path", opts.out).Int("series", len(names)).Msg("Chart exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "chart.png", "destination PNG file")
	cmd.Flags().IntVar(&opts.width, "width", chart.DefaultExportWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", chart.DefaultExportHeight, "image height in pixels")
	return cmd
}
