// Package cli implements the imagetext command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"imagetext/internal/config"
	"imagetext/internal/logging"
	"imagetext/search"
)

const version = "0.2.0"

type options struct {
	configFile  string
	writeConfig string
	queries     []string
	size        Size
	width       int
	jobs        int
	timeout     time.Duration
	saveGray    string
	endpoint    string
	verbose     bool
}

// NewCommand builds the root command. lookupEnv is normally os.LookupEnv.
func NewCommand(stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "imagetext [FILES...] [-f QUERY]...",
		Short: "Print images as ASCII art",
		Long: "imagetext converts images to text. Files are rendered in the order given,\n" +
			"then one random picture per --find query is downloaded and rendered.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(opts.queries) == 0 && opts.writeConfig == "" {
				return cmd.Help()
			}
			return run(cmd, opts, args, lookupEnv)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.queries, "find", "f", nil, "search the web for an image and render it (repeatable)")
	flags.VarP(&opts.size, "size", "s", "output size: xs|extra-small=30, s|small=60, n|m|normal|medium|default=120, l|large=240, xl|extra-large=360")
	flags.IntVarP(&opts.width, "width", "w", 0, "output width in columns, overrides --size")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "concurrent downloads for --find")
	flags.DurationVar(&opts.timeout, "timeout", 0, "timeout for each HTTP request")
	flags.StringVar(&opts.endpoint, "search-endpoint", "", "HTML image search page queried with ?q=")
	flags.StringVar(&opts.saveGray, "save-gray", "", "also write each resized grayscale image to this directory")
	flags.StringVar(&opts.configFile, "config", "", "JSON config file")
	flags.StringVar(&opts.writeConfig, "write-config", "", "write the effective config to this file and exit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

func run(cmd *cobra.Command, opts *options, files []string, lookupEnv func(string) (string, bool)) error {
	cfg, err := resolveConfig(cmd, opts, lookupEnv)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if opts.writeConfig != "" {
		return config.Save(cfg, opts.writeConfig)
	}

	width := cfg.Width
	if width == 0 {
		size, err := ParseSize(cfg.Size)
		if err != nil {
			return err
		}
		width = size.Width()
	}

	searcher := search.New(cfg.SearchEndpoint,
		search.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Timeout)}),
		search.WithUserAgent(cfg.UserAgent),
	)

	logging.Logger().Debug("starting", "files", len(files), "queries", len(opts.queries), "width", width)

	r := &Runner{
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
		Width:       width,
		Jobs:        cfg.Jobs,
		SaveGrayDir: cfg.SaveGrayDir,
		Searcher:    searcher,
	}
	return r.Run(cmd.Context(), files, opts.queries)
}

// resolveConfig layers defaults, the config file, the environment and changed flags.
func resolveConfig(cmd *cobra.Command, opts *options, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = opts.size.String()
		cfg.Width = 0
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
		if opts.width <= 0 {
			return nil, fmt.Errorf("--width must be positive, got %d", opts.width)
		}
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(opts.timeout)
	}
	if flags.Changed("search-endpoint") {
		cfg.SearchEndpoint = opts.endpoint
	}
	if flags.Changed("save-gray") {
		cfg.SaveGrayDir = opts.saveGray
	}

	if _, err := ParseSize(cfg.Size); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the command against the real process streams.
func Execute(ctx context.Context) error {
	return NewCommand(os.Stdout, os.Stderr, os.LookupEnv).ExecuteContext(ctx)
}
