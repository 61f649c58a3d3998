package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tashichi/clipflow/internal/cli"
	"github.com/tashichi/clipflow/internal/config"
	"github.com/tashichi/clipflow/internal/output"
	"github.com/tashichi/clipflow/internal/store"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slot, err := store.OpenSlot(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer slot.Close()

	var warning string
	s, err := store.Open(slot)
	if err != nil {
		if !errors.Is(err, store.ErrIntegrity) {
			return fmt.Errorf("loading projects: %w", err)
		}
		// The store starts empty rather than refusing to run; tell the
		// user their previous projects could not be read.
		warning = "Saved projects could not be read and were discarded. Starting fresh."
	}

	deps := &cli.Dependencies{
		Store:   s,
		Config:  cfg,
		Warning: warning,
	}

	return cli.NewRootCmd(deps).Execute()
}
