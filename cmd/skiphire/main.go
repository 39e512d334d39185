// SkipHire compares skip providers and books one from the terminal.
//
// Usage:
//
//	skiphire [-verbose] [-quiet] [-log-file path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/skiphire/internal/catalog"
	"github.com/hammamikhairi/skiphire/internal/checkout"
	"github.com/hammamikhairi/skiphire/internal/command"
	"github.com/hammamikhairi/skiphire/internal/config"
	"github.com/hammamikhairi/skiphire/internal/delay"
	"github.com/hammamikhairi/skiphire/internal/display"
	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
	"github.com/hammamikhairi/skiphire/internal/pricing"
	"github.com/hammamikhairi/skiphire/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (default from LOG_FILE, else .skiphire-logs/skiphire.log; \"stderr\" logs to console)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	path := *logFile
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		path = ".skiphire-logs/skiphire.log"
	}

	// Logs go to a file by default so the terminal UI stays clean.
	var logOut io.Writer = os.Stderr
	if path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	providers := catalog.NewMemoryCatalog(log)
	tables := catalog.PriceTables()
	prices := pricing.New(tables)
	sched := delay.New(log)
	defer sched.Stop()

	steps := make(chan domain.Step, 16)
	wiz := wizard.New(prices, providers, checkout.NewMockSubmitter(log), sched, log,
		wizard.WithSearchDelay(cfg.Journey.SearchDelay),
		wizard.WithSubmitDelay(cfg.Journey.SubmitDelay),
		wizard.WithStepListener(func(from, to domain.Step) {
			timed := (from == domain.StepSearching && to == domain.StepProviders) ||
				(from == domain.StepSubmitting && to == domain.StepConfirmed)
			if !timed {
				return // user-driven; the app already redraws
			}
			select {
			case steps <- to:
			default:
				log.Warn("dropping step notification %s", to)
			}
		}),
	)
	defer wiz.Close()

	ui := display.NewUI(func() display.Status {
		s := wiz.Store().Snapshot()
		return display.Status{
			Step:    wiz.Step(),
			Total:   s.Totals.Total,
			Compare: len(s.CompareList),
		}
	})

	app := &cliApp{
		wiz:       wiz,
		parser:    command.NewKeywordParser(log),
		notifier:  display.NewNotifier(ui, log),
		providers: providers,
		tables:    tables,
		log:       log,
		ui:        ui,
		steps:     steps,
		sortMode:  domain.SortRecommended,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
