package main

import (
	"log/slog"
	"os"

	"github.com/robert-malhotra/go-reddit-search/internal/config"
)

const logFileEnv = "REDDIT_SEARCH_TUI_LOG"

func openLog(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	path := os.Getenv(logFileEnv)
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(f, cfg)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}
