// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command readlogctl is the operator CLI for Readlog: schema migrations and
// catalog maintenance without going through the HTTP API.
//
//	readlogctl migrate up
//	readlogctl migrate down 1
//	readlogctl books search "the left hand of darkness" --limit 5
//	readlogctl books import zyTCAlFPjgYC
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/readlog/internal/platform/config"
	"github.com/taibuivan/readlog/internal/platform/constants"
)

func main() {
	cfg, err := config.LoadCLI()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. out receives command output; logs go to stderr.
func newRootCmd(cfg *config.CLIConfig, out io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "readlogctl",
		Short:        "Readlog operator tooling",
		Version:      constants.AppVersion,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newMigrateCmd(cfg, logger))
	root.AddCommand(newBooksCmd(cfg, logger))
	return root
}

// requireDatabase fails commands that need Postgres when DATABASE_URL is unset.
func requireDatabase(cfg *config.CLIConfig) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	return nil
}
