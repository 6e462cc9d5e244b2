package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reviewscout/collector"
	"reviewscout/config"
	"reviewscout/daterange"
	"reviewscout/demo"
	"reviewscout/models"
	"reviewscout/scraper"
	"reviewscout/sites"
)

var (
	flagCompany string
	flagStart   string
	flagEnd     string
	flagSource  string
	flagOutput  string
	flagVerbose bool
	flagDemo    bool
	flagCount   int
	flagSeed    int64
)

var rootCmd = &cobra.Command{
	Use:   "reviewscout",
	Short: "Collect product reviews from G2, Capterra and Software Advice",
	Long: `reviewscout collects publicly posted product reviews for a company
within a date range and writes them as a normalized JSON array.

Examples:
  reviewscout -c "Salesforce" -s 2023-01-01 -e 2023-12-31 --source g2
  reviewscout -c "HubSpot" -s 2023-06-01 -e 2023-12-31 --demo --verbose`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagCompany, "company-name", "c", "", "company to collect reviews for (required)")
	f.StringVarP(&flagStart, "start-date", "s", "", "window start, YYYY-MM-DD (required)")
	f.StringVarP(&flagEnd, "end-date", "e", "", "window end, YYYY-MM-DD (required)")
	f.StringVar(&flagSource, "source", models.SelectorAll, "source: g2, capterra, software-advice or all")
	f.StringVarP(&flagOutput, "output", "o", "", "output file path (default: derived from company and timestamp)")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	f.BoolVarP(&flagDemo, "demo", "d", false, "generate sample reviews instead of fetching")
	f.IntVar(&flagCount, "count", 0, "demo reviews per source (default from config)")
	f.Int64Var(&flagSeed, "seed", 0, "demo random seed; 0 picks one from the clock")

	_ = rootCmd.MarkFlagRequired("company-name")
	_ = rootCmd.MarkFlagRequired("start-date")
	_ = rootCmd.MarkFlagRequired("end-date")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	closeLog, err := initLogger(cfg.Log, flagVerbose)
	if err != nil {
		return err
	}
	defer closeLog()

	company := strings.TrimSpace(flagCompany)
	if company == "" {
		return models.NewScrapeError(models.ErrCodeInvalidInput, "company name cannot be empty", nil)
	}

	window, err := daterange.New(flagStart, flagEnd)
	if err != nil {
		return err
	}
	if now := time.Now(); window.Start.After(now) || window.End.After(now) {
		return models.NewScrapeError(models.ErrCodeInvalidInput, "date range cannot extend into the future", nil)
	}

	selected, err := models.ParseSelector(flagSource)
	if err != nil {
		return err
	}

	producers, err := buildProducers(cfg, selected)
	if err != nil {
		return err
	}

	slog.Info("collection starting",
		"company", company,
		"start", flagStart,
		"end", flagEnd,
		"source", flagSource,
		"mode", mode())

	reviews := collector.New(producers...).Run(cmd.Context(), company, window)

	outPath := flagOutput
	if outPath == "" {
		outPath = collector.DefaultPath(cfg.Output.Dir, company, flagSource)
	}
	if err := collector.WriteJSON(outPath, reviews); err != nil {
		return err
	}

	counts := collector.CountBySource(reviews)
	for _, src := range models.AllSources {
		if n := counts[src]; n > 0 {
			slog.Info("source summary", "source", src, "count", n)
		}
	}
	slog.Info("collection finished", "total", len(reviews), "output", outPath, "mode", mode())
	return nil
}

func mode() string {
	if flagDemo {
		return "demo"
	}
	return "live"
}

// buildProducers assembles one producer per selected source. Demo and live
// producers satisfy the same contract, so the mode is decided exactly once
// here.
func buildProducers(cfg *config.Config, selected []models.Source) ([]collector.Producer, error) {
	producers := make([]collector.Producer, 0, len(selected))

	if flagDemo {
		count := flagCount
		if count <= 0 {
			count = cfg.Demo.Count
		}
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		slog.Info("demo mode: generating sample reviews", "seed", seed, "count", count)

		gen := demo.NewGenerator(seed)
		for _, src := range selected {
			producers = append(producers, collector.NewDemoProducer(gen, src, count))
		}
		return producers, nil
	}

	client := scraper.NewClient(cfg.Scraper)
	for _, src := range selected {
		site, err := siteFor(cfg.Sites, src)
		if err != nil {
			return nil, err
		}
		ext := sites.NewExtractor(src, nil)
		producers = append(producers, collector.NewLiveProducer(client, ext, site, cfg.Scraper))
	}
	return producers, nil
}

func siteFor(s config.SitesConfig, src models.Source) (config.SiteConfig, error) {
	switch src {
	case models.SourceG2:
		return s.G2, nil
	case models.SourceCapterra:
		return s.Capterra, nil
	case models.SourceSoftwareAdvice:
		return s.SoftwareAdvice, nil
	default:
		return config.SiteConfig{}, models.NewScrapeError(models.ErrCodeInternal,
			"no site configuration for source "+string(src), nil)
	}
}

// initLogger configures slog for one invocation: stderr plus an append-only
// log file, level from config unless --verbose lowers it to debug. The
// returned func closes the log file.
func initLogger(cfg config.LogConfig, verbose bool) (func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() { _ = f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}
