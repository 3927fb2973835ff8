// trend-pulse is a polling dashboard for keyword trends and sentiment in
// a stream of short social posts.
//
// It periodically re-reads a posts table, recomputes word and watch
// keyword frequencies plus per-keyword sentiment, maintains a bounded
// sliding window of history, and renders three live views: a mention
// trend, a word-count bar chart, and a sentiment trend.
//
// Usage:
//
//	trend-pulse [flags]
//
// Flags:
//
//	-config string   Path to configuration file (default: ~/.config/trend-pulse/config.toml)
//	-db string       Path to the posts SQLite database (overrides config)
//	-headless        Run the poll loop without the TUI, logging each tick
//	-once            Run a single tick and print a summary
//	-regions string  Print a static per-region series table from a CSV file
//	-use-mocks       Use a synthetic post source instead of the database
//	-mock-seed int   Random seed for the mock source (0 = random)
//	-verbose         Enable verbose logging
//	-version         Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/trend-pulse/pkg/config"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/engine"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/palette"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/sentiment"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/source"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/text"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		dbPath      = flag.String("db", "", "Path to the posts SQLite database")
		runHeadless = flag.Bool("headless", false, "Run the poll loop without the TUI")
		runOnce     = flag.Bool("once", false, "Run a single tick and print a summary")
		regionsCSV  = flag.String("regions", "", "Print a per-region series table from a CSV file")
		useMocks    = flag.Bool("use-mocks", false, "Use a synthetic post source instead of the database")
		mockSeed    = flag.Int64("mock-seed", 0, "Random seed for the mock source (0 = random)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("trend-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// The region table view needs no config, engine, or database.
	if *regionsCSV != "" {
		if err := printRegionTable(*regionsCSV); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Source.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	src, closeSrc, err := buildSource(cfg, *useMocks, *mockSeed, logger)
	if err != nil {
		logger.Error("source init failed", "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	eng := engine.New(src, sentiment.NewVADER(), engine.Config{
		TopN:       cfg.Window.TopN,
		WindowSize: cfg.Window.Capacity,
		Keywords:   cfg.Track.Keywords,
		Stopwords:  text.DefaultStopwords().With(cfg.Track.ExtraStopwords...),
		Palette:    palette.Get(cfg.Display.Palette),
		Logger:     logger,
	})

	switch {
	case *runOnce:
		out, err := eng.Tick(ctx)
		if err != nil {
			logger.Error("tick failed", "error", err)
			os.Exit(1)
		}
		printSummary(out)

	case *runHeadless || !isatty.IsTerminal(os.Stdout.Fd()):
		logger.Info("starting trend-pulse poll loop",
			"interval", cfg.General.TickInterval.Duration,
			"source", src.Name(),
			"top_n", cfg.Window.TopN,
			"window", cfg.Window.Capacity,
		)
		err := eng.Run(ctx, cfg.General.TickInterval.Duration, func(out *engine.Output) {
			logger.Info("tick",
				"records", out.TotalRecords,
				"tracked", len(out.Counts),
				"scored", len(out.Sentiments),
			)
		})
		if err != nil && err != context.Canceled {
			logger.Error("poll loop error", "error", err)
			os.Exit(1)
		}

	default:
		model := tui.NewModel(eng, cfg.General.TickInterval.Duration)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", "error", err)
			os.Exit(1)
		}
	}
}

// setupLogging builds a slog logger writing to both stderr and the
// configured log file. A file open failure falls back to stderr only.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, *os.File, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.General.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	var w io.Writer = os.Stderr
	var logFile *os.File
	if cfg.General.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logFile = f
			w = io.MultiWriter(os.Stderr, f)
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, logFile, nil
}

// buildSource selects the record source. The returned func releases it.
func buildSource(cfg *config.Config, useMocks bool, seed int64, logger *slog.Logger) (source.Source, func(), error) {
	if useMocks {
		logger.Info("using mock post source", "seed", seed)
		return source.NewMock(cfg.Track.Keywords, seed), func() {}, nil
	}
	db, err := source.OpenSQLite(cfg.Source.DBPath, cfg.Source.Table)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// printSummary writes a single tick's output in a plain text form.
func printSummary(out *engine.Output) {
	fmt.Printf("tick at %s: %d records\n", out.At.Format("15:04:05"), out.TotalRecords)

	fmt.Println("\nwatch keywords:")
	for _, kc := range out.WatchCounts {
		fmt.Printf("  %-16s %d\n", kc.Key, kc.Count)
	}

	fmt.Println("\ntop words:")
	for _, kc := range out.TopWords {
		fmt.Printf("  %-16s %d\n", kc.Key, kc.Count)
	}

	if len(out.Sentiments) > 0 {
		fmt.Println("\nsentiment (mean ± std):")
		for _, ks := range out.Sentiments {
			if len(ks.Points) == 0 {
				continue
			}
			last := ks.Points[len(ks.Points)-1]
			fmt.Printf("  %-16s %+.3f ± %.3f\n", ks.Key, last.Value, last.Err)
		}
	}
}

// printRegionTable prints the static per-region series CSV as a table.
func printRegionTable(path string) error {
	table, err := source.LoadRegionSeries(path)
	if err != nil {
		return err
	}

	fmt.Printf("%-8s %-24s", "code", "region")
	for _, y := range table.Years {
		fmt.Printf(" %8d", y)
	}
	fmt.Println()

	for _, reg := range table.Regions {
		fmt.Printf("%-8s %-24s", reg.Code, reg.Name)
		for _, y := range table.Years {
			if v, ok := reg.Values[y]; ok {
				fmt.Printf(" %8.2f", v)
			} else {
				fmt.Printf(" %8s", "-")
			}
		}
		fmt.Println()
	}
	return nil
}
