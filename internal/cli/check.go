package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-monitor/internal/model"
	"github.com/ytget/yt-monitor/internal/monitor"
	"github.com/ytget/yt-monitor/internal/platform"
)

// CheckRecord is one line of the check results file
type CheckRecord struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Views       int64  `json:"views"`
	Subscribers string `json:"subscribers,omitempty"`
	Error       string `json:"error,omitempty"`
}

type checkOptions struct {
	out  string
	save bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every target once and print the current counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd.Context(), root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result := newPoller(env).SweepOnce(cmd.Context())

			formatter := model.NewNumberFormatter(env.cfg.Locale)
			renderCheckTable(cmd.OutOrStdout(), result, formatter)

			if opts.out != "" {
				if err := writeCheckResults(opts.out, result); err != nil {
					return err
				}
				env.logger.Info().Str("path", opts.out).Msg("Results written")
			}

			if opts.save {
				if err := env.store.Save(); err != nil {
					return err
				}
			}

			if result.Succeeded == 0 && result.Failed > 0 {
				return fmt.Errorf("all %d targets failed", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write results as JSON to this file")
	cmd.Flags().BoolVar(&opts.save, "save", false, "record the readings in the history file")
	return cmd
}

func renderCheckTable(w io.Writer, result monitor.SweepResult, formatter *model.NumberFormatter) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Title", "Views", "Subscribers", "Delta", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for i, tr := range result.Targets {
		if !tr.OK() {
			t.AppendRow(table.Row{i + 1, tr.URL, "", "", "", tr.Err.Error()})
			continue
		}
		t.AppendRow(table.Row{
			i + 1,
			tr.Video.DisplayTitle(),
			formatter.Format(tr.Reading.Views),
			tr.Reading.Subscribers,
			tr.Video.DeltaString(),
			"ok",
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "ok / failed", fmt.Sprintf("%d / %d", result.Succeeded, result.Failed)})
	t.Render()
}

func checkRecords(result monitor.SweepResult) []CheckRecord {
	records := make([]CheckRecord, 0, len(result.Targets))
	for _, tr := range result.Targets {
		rec := CheckRecord{URL: tr.URL}
		if tr.OK() {
			rec.Title = tr.Reading.Title
			rec.Views = tr.Reading.Views
			rec.Subscribers = tr.Reading.Subscribers
		} else {
			rec.Error = tr.Err.Error()
		}
		records = append(records, rec)
	}
	return records
}

func writeCheckResults(path string, result monitor.SweepResult) error {
	data, err := json.MarshalIndent(checkRecords(result), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := platform.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
