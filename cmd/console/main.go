package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/animus-mundi/internal/config"
	"github.com/jwebster45206/animus-mundi/internal/logger"
	"github.com/jwebster45206/animus-mundi/internal/storage"
	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/engine"
	"github.com/jwebster45206/animus-mundi/pkg/save"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The UI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.SetupWriter(cfg, logFile)

	c, err := content.Load(os.DirFS(cfg.ContentDir), log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load content", "dir", cfg.ContentDir)
		fmt.Fprintf(os.Stderr, "Failed to load content from %s: %v\n", cfg.ContentDir, err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to open storage", "backend", cfg.StorageBackend)
		fmt.Fprintf(os.Stderr, "Failed to open %s storage: %v\n", cfg.StorageBackend, err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	saves := save.NewAdapter(store, logger.WithSaveKey(log, cfg.SaveKey)).
		WithKey(cfg.SaveKey).
		WithTimeout(cfg.SaveTimeout)

	opts := []engine.Option{engine.WithLogger(log)}
	if cfg.RandomSeed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(cfg.RandomSeed, cfg.RandomSeed))))
	}
	e := engine.New(c, saves, opts...)
	e.Start(ctx)

	p := tea.NewProgram(NewConsoleUI(e),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
