package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hireloop/scout/internal/browser"
	"github.com/hireloop/scout/internal/cdp"
	"github.com/hireloop/scout/internal/infrastructure/config"
	"github.com/hireloop/scout/internal/logging"
	"github.com/hireloop/scout/internal/search"
	"github.com/hireloop/scout/internal/store"
)

func main() {
	query := flag.String("query", "", "Search query (role/title)")
	location := flag.String("location", "", "Geographic location filter")
	pages := flag.Int("pages", 0, "Max result pages to visit (0 = config default)")
	minScore := flag.Float64("min-score", 0, "Minimum headline score (0 = config default)")
	target := flag.Int("target", 0, "Target candidate count (0 = config default)")
	flag.Parse()

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: scout -query \"Backend Engineer\" [-location ...] [-pages N] [-min-score F] [-target N]")
		os.Exit(2)
	}

	cfg := config.LoadOrDefault()

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := cdp.NewClient(cfg.Debug.Host, cfg.Debug.Port, logger)
	defer client.Close()

	page := browser.New(client, cfg.Browser, logger)

	selectors, err := search.LoadSelectors(cfg.Search.Selectors)
	if err != nil {
		logger.Warn("selector overrides ignored: " + err.Error())
	}

	extractor := search.NewExtractor(page, selectors, logger)
	sink := store.NewJSON(cfg.Store.OutputDir)
	pipeline := search.New(page, extractor, sink, selectors, cfg.Search, cfg.Browser.WaitTimeout, logger)

	result := pipeline.Run(ctx, search.Params{
		Query:       *query,
		Location:    *location,
		PageLimit:   *pages,
		MinScore:    *minScore,
		TargetCount: *target,
	})

	if !result.Success {
		fmt.Fprintf(os.Stderr, "search failed: %s\n", result.Error)
		os.Exit(1)
	}
	fmt.Printf("found %d candidates\n", result.CandidatesFound)
	for _, c := range result.Candidates {
		fmt.Printf("  %-30s %5.1f  %s\n", c.Name, c.Score, c.ProfileURL)
	}
}
