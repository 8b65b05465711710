package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatvault/chatvault/internal/config"
	"github.com/chatvault/chatvault/internal/store"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatvault",
		Short:   "Import exported chat transcripts into a queryable, deduplicated store",
		Version: version,
	}

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(messagesCmd())
	rootCmd.AddCommand(sendersCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads config and opens the store; callers own Close.
func openStore() (*config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return cfg, st, nil
}
