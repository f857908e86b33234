// Command status-report writes the payment status workbook of one collection.
//
//	status-report -apartment apt-1 -collection <id> [-out reports/q1.xlsx]
//
// Without -collection the most recent active collection is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/flatfundpro/dues-portal/internal/application/service"
	"github.com/flatfundpro/dues-portal/internal/config"
	"github.com/flatfundpro/dues-portal/internal/container"
	"github.com/flatfundpro/dues-portal/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	apartmentID := flag.String("apartment", "", "apartment id (defaults to status.apartment_id)")
	collectionID := flag.String("collection", "", "expected collection id")
	outPath := flag.String("out", "", "output file (defaults to report.output_dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: "stderr",
		Format:     cfg.Logger.Format,
		Service:    "status-report",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *apartmentID == "" {
		*apartmentID = cfg.Status.ApartmentID
	}
	if *apartmentID == "" {
		fmt.Fprintln(os.Stderr, "an apartment id is required (-apartment or status.apartment_id)")
		os.Exit(2)
	}

	path, err := run(context.Background(), cfg, logger, *apartmentID, *collectionID, *outPath)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotUnavailable) {
			fmt.Fprintln(os.Stderr, "status unknown: payment data could not be read")
		}
		logger.Error("Report failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println(path)
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, apartmentID, collectionID, outPath string) (string, error) {
	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return "", err
	}
	if err := c.Start(ctx); err != nil {
		return "", err
	}
	defer c.Close()

	services := c.Services()

	if collectionID == "" {
		collections, err := services.Registry.ListCollections(ctx, apartmentID, true)
		if err != nil {
			return "", fmt.Errorf("%w: list collections: %w", service.ErrSnapshotUnavailable, err)
		}
		if len(collections) == 0 {
			return "", fmt.Errorf("apartment %s has no active collections", apartmentID)
		}
		// ordered by due date
		collectionID = collections[len(collections)-1].ID
	}

	if outPath == "" {
		outPath = filepath.Join(cfg.Report.OutputDir, services.Report.FileName(apartmentID, collectionID))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	if err := services.Report.ExportCollection(ctx, apartmentID, collectionID, f); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	logger.Info("Report written",
		zap.String("apartment_id", apartmentID),
		zap.String("collection_id", collectionID),
		zap.String("path", outPath))
	return outPath, nil
}
