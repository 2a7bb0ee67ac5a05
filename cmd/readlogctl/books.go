// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/readlog/internal/core/book"
	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/library/progress"
	"github.com/taibuivan/readlog/internal/platform/config"
	pgstore "github.com/taibuivan/readlog/internal/platform/postgres"
	"github.com/taibuivan/readlog/pkg/pointer"
)

// cliCacheTTL only matters within a single invocation.
const cliCacheTTL = 5 * time.Minute

func newBooksCmd(cfg *config.CLIConfig, logger func() *slog.Logger) *cobra.Command {
	booksCmd := &cobra.Command{
		Use:   "books",
		Short: "Query the external catalog and import books",
	}

	var limit int
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the external book catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := newCatalogSource(cfg, logger())

			volumes, err := source.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			printVolumes(cmd.OutOrStdout(), volumes)
			return nil
		},
	}
	searchCmd.Flags().IntVarP(&limit, "limit", "n", book.DefaultSearchLimit, "maximum number of results")
	booksCmd.AddCommand(searchCmd)

	booksCmd.AddCommand(&cobra.Command{
		Use:   "import <external-id>",
		Short: "Import a catalog volume into the local book table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDatabase(cfg); err != nil {
				return err
			}
			log := logger()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			bookStore := book.NewPostgresStore(pool)
			ratings := progress.NewService(progress.NewPostgresStore(pool), bookStore, log)
			service := book.NewService(bookStore, newCatalogSource(cfg, log), ratings, log)

			imported, err := service.Import(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s) as %s\n", imported.Title, imported.Slug, imported.ID)
			return nil
		},
	})

	return booksCmd
}

func newCatalogSource(cfg *config.CLIConfig, logger *slog.Logger) catalog.Source {
	return catalog.NewCachedSource(
		catalog.NewGoogleBooks(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout, logger),
		catalog.NewMemoryCache(),
		cliCacheTTL,
		logger,
	)
}

func printVolumes(out io.Writer, volumes []catalog.Volume) {
	if len(volumes) == 0 {
		fmt.Fprintln(out, "no results")
		return
	}

	for index, volume := range volumes {
		fmt.Fprintf(out, "%d. %s\n", index+1, volume.Title)
		fmt.Fprintf(out, "   id: %s\n", volume.ExternalID)
		if len(volume.Authors) > 0 {
			fmt.Fprintf(out, "   by: %s\n", strings.Join(volume.Authors, ", "))
		}
		if volume.PageCount != nil {
			fmt.Fprintf(out, "   pages: %d\n", pointer.Val(volume.PageCount))
		}
		if volume.ISBN13 != "" {
			fmt.Fprintf(out, "   isbn: %s\n", volume.ISBN13)
		}
	}
}
