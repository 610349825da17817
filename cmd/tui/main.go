package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robert-malhotra/go-reddit-search/internal/config"
	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("REDDIT_SEARCH_CONFIG"), nil)
	if err != nil {
		return err
	}
	// The terminal belongs to tview, so logs only go to a file when one is named.
	logger, closeLog, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, closeCache, err := cfg.ClientOptions(logger)
	if err != nil {
		return err
	}
	defer closeCache()

	c, err := client.NewClient(opts...)
	if err != nil {
		return err
	}

	tui := NewTUI(ctx, c)
	go func() {
		<-ctx.Done()
		tui.Stop()
	}()
	return tui.Run()
}
