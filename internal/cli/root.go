package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/history"
	"github.com/ytget/yt-monitor/internal/platform"
	"github.com/ytget/yt-monitor/internal/source"
)

// DefaultConfigPath is used when --config is not given
const DefaultConfigPath = "config.json5"

// Factories replaced in tests
var (
	newFetcher = func(cfg *config.Config, logger zerolog.Logger) source.Fetcher {
		return source.NewYouTube(cfg.Locale, logger)
	}
	newPlaylistLister = func() platform.PlaylistLister {
		return platform.YTDLPLister{}
	}
)

type rootOptions struct {
	configPath string
	logLevel   string
	version    string
}

// NewRootCmd builds the command tree. Without a subcommand it runs the dashboard.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	cmd := &cobra.Command{
		Use:           "yt-monitor",
		Short:         "yt-monitor tracks YouTube view counts and draws them in a live dashboard.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), env)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", DefaultConfigPath, "path to the config file (.json5, .yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(newCheckCmd(opts), newExportChartCmd(opts))
	return cmd
}

// ExecuteContext runs the CLI and exits with status 1 on error
func ExecuteContext(ctx context.Context, version string) {
	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// environment is everything a command needs after startup
type environment struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *history.Store
	targets []string
}

// prepare loads config, builds the logger, expands playlist targets and
// loads the history store with placeholders for every target
func prepare(ctx context.Context, opts *rootOptions, logOut io.Writer) (*environment, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if opts.logLevel != "" {
		level, err = zerolog.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	logger := NewLogger(logOut, level)
	logger.Info().Str("version", opts.version).Str("config", opts.configPath).Msg("yt-monitor starting")

	expander := platform.NewPlaylistExpander(newPlaylistLister(), logger)
	targets := expander.Expand(ctx, cfg.Targets)
	if len(targets) == 0 {
		return nil, config.ErrNoTargets
	}

	store := history.NewStore(cfg.HistoryFile, cfg.MaxHistoryPoints, logger)
	store.Load()
	store.EnsureVideos(targets)

	return &environment{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		targets: targets,
	}, nil
}
