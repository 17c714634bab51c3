package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/config"
	"github.com/matst80/slask-storefront/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch the catalog and write the snapshot served in static mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSnapshot(cmd.Context(), cfg, catalog.NewHttpSource(cfg.Catalog.Url, cfg.Catalog.Timeout), logger)
	},
}

func writeSnapshot(ctx context.Context, cfg *config.Config, source catalog.ProductSource, logger *zap.Logger) error {
	products, err := source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	ds := storage.NewDiskStorage(cfg.Country, cfg.SnapshotDir)
	if err := ds.SaveProducts(products); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	logger.Info("catalog snapshot written",
		zap.String("path", ds.CatalogPath()),
		zap.String("products", humanize.Comma(int64(len(products)))))
	return nil
}
