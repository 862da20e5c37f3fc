package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bunburrows/internal/config"
	"github.com/vovakirdan/bunburrows/internal/core"
	"github.com/vovakirdan/bunburrows/internal/games/buns"
	"github.com/vovakirdan/bunburrows/internal/games/buns/world"
	"github.com/vovakirdan/bunburrows/internal/registry"
	"github.com/vovakirdan/bunburrows/internal/storage"
)

// catalog is everything loaded from disk for one command.
type catalog struct {
	cfg      config.BunsConfig
	worlds   []*world.World
	registry *registry.Registry
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "burrows",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// worldsDir returns the directory to load worlds from, or "" for the demo.
func worldsDir(cfg config.BunsConfig) string {
	if flagWorldsDir != "" {
		return flagWorldsDir
	}
	return cfg.World.Dir
}

// loadCatalog loads the config and every world, and registers one game
// factory per world.
func loadCatalog(logger *log.Logger) (*catalog, error) {
	cfg, err := config.LoadBuns(flagConfig)
	if err != nil {
		return nil, err
	}

	var worlds []*world.World
	if dir := worldsDir(cfg); dir != "" {
		worlds, err = world.LoadWorlds(dir)
		if err != nil {
			return nil, err
		}
		logger.Debug("worlds loaded", "dir", dir, "count", len(worlds))
	} else {
		demo, err := world.LoadDemo()
		if err != nil {
			return nil, fmt.Errorf("loading demo world: %w", err)
		}
		worlds = []*world.World{demo}
		logger.Debug("demo world loaded")
	}

	reg := registry.New()
	for _, w := range worlds {
		info := registry.Info{
			ID:      w.Dir,
			Title:   w.Title,
			Summary: fmt.Sprintf("%d burrows, %d levels", w.Len(), w.LevelCount()),
			Enabled: w.Enabled,
		}
		if err := reg.Register(info, factory(w, cfg)); err != nil {
			return nil, err
		}
	}

	return &catalog{cfg: cfg, worlds: worlds, registry: reg}, nil
}

func factory(w *world.World, cfg config.BunsConfig) registry.Factory {
	return func() registry.Game {
		return buns.New(w, cfg)
	}
}

// findWorld finds a loaded world by directory or title.
func (c *catalog) findWorld(key string) (*world.World, bool) {
	info, ok := c.registry.Lookup(key)
	if !ok {
		return nil, false
	}
	for _, w := range c.worlds {
		if w.Dir == info.ID {
			return w, true
		}
	}
	return nil, false
}

// mustCatalog loads the catalog or exits.
func mustCatalog(logger *log.Logger) *catalog {
	c, err := loadCatalog(logger)
	if err != nil {
		logger.Fatal("could not load worlds", "error", err)
	}
	return c
}

// openStore opens the runs database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}
