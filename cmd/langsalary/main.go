package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/logging"
	"github.com/fr4nk3nst1ner/langsalary/internal/report"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/stats"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const examples = `  # Average salaries for the default languages on both boards
  SUPERJOB_SECRET_KEY=v3.r.123 langsalary

  # Only HeadHunter, a few languages, no banner
  langsalary -s hh -l Go,Rust,Python --silence

  # Markdown tables, four languages fetched in parallel
  langsalary --format markdown --workers 4

  # Search facets and languages from a YAML file, through a proxy
  langsalary --config search.yaml --proxy http://localhost:8080`

type options struct {
	languages  []string
	sources    []string
	format     string
	configPath string
	proxy      string
	maxPages   int
	workers    int
	debug      bool
	silence    bool
	noBanner   bool
	noProgress bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "langsalary",
		Short:        "Average programmer salaries per language on HeadHunter and SuperJob",
		Example:      examples,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.languages, "languages", "l", nil, "Languages to search (default: the built-in list or the config file)")
	flags.StringSliceVarP(&opts.sources, "source", "s", nil, "Sources to query: headhunter (hh), superjob (sj) or all")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "Output format: text, markdown or csv")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML file with languages and search facets")
	flags.StringVar(&opts.proxy, "proxy", "", "Proxy URL to use")
	flags.IntVar(&opts.maxPages, "max-pages", stats.DefaultMaxPages, "Hard cap on pages fetched per language")
	flags.IntVarP(&opts.workers, "workers", "w", 1, "Number of (source, language) pairs fetched in parallel")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.silence, "silence", false, "Silence the banner")
	flags.BoolVar(&opts.noBanner, "nobanner", false, "Silence the banner (alias for --silence)")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Hide the progress bar")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	ui.PrintBanner(stderr, opts.silence || opts.noBanner)

	logger := logging.New(stderr, opts.debug)
	slog.SetDefault(logger)

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	sourceNames, err := utils.ParseSources(opts.sources)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-pages") {
		cfg.MaxPages = opts.maxPages
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("proxy") {
		cfg.Proxy = opts.proxy
	}
	if err := cfg.Validate(sourceNames); err != nil {
		return err
	}

	languages := cfg.Languages(opts.languages)
	sources := buildSources(cfg, sourceNames, logger)

	var progress *ui.Progress
	if !opts.noProgress && !opts.debug {
		progress = ui.NewProgress(stderr, len(sources)*len(languages))
	}

	runner := &stats.Runner{
		Aggregator: cfg.Aggregator(logger),
		Workers:    cfg.Workers,
		Logger:     logger,
		OnDone: func(res stats.Result) {
			progress.Done(res.Source, res.Stats.Language)
		},
	}
	results := runner.Run(ctx, sources, languages)
	progress.Finish()

	reports := make([]report.Report, 0, len(results))
	failed := 0
	for _, sr := range results {
		reports = append(reports, report.Build(sr.Source.Title(), sr.Results))
		for _, res := range sr.Results {
			if res.Failed() {
				failed++
			}
		}
	}

	if err := report.Render(stdout, format, reports); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	if total := len(sources) * len(languages); total > 0 && failed == total {
		return errors.New("no statistics could be collected, see the errors above")
	}
	return nil
}

// buildSources creates one paced API client per selected source
func buildSources(cfg *config.Config, names []string, logger *slog.Logger) []scraper.Source {
	options := func(baseURL string, headers map[string]string) client.Options {
		return client.Options{
			BaseURL:    baseURL,
			ProxyURL:   cfg.Proxy,
			UserAgent:  cfg.UserAgent,
			Headers:    headers,
			Timeout:    cfg.RequestTimeout,
			RateLimit:  cfg.RateLimit,
			RetryCount: cfg.RetryCount,
			RetryWait:  cfg.RetryWait,
			Logger:     logger,
		}
	}

	var sources []scraper.Source
	for _, name := range names {
		switch name {
		case scraper.HeadHunterName:
			http := client.New(options(cfg.HeadHunterURL, nil))
			sources = append(sources, scraper.NewHeadHunter(http, cfg.HeadHunterFacets()))
		case scraper.SuperJobName:
			http := client.New(options(cfg.SuperJobURL, map[string]string{
				scraper.SuperJobKeyHeader: cfg.SuperJobKey,
			}))
			sources = append(sources, scraper.NewSuperJob(http, cfg.SuperJobFacets()))
		}
	}
	return sources
}
