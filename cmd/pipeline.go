package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/background"
	"github.com/lehigh-university-libraries/stickerkit/internal/images"
	"github.com/lehigh-university-libraries/stickerkit/internal/models"
	"github.com/lehigh-university-libraries/stickerkit/internal/report"
	"github.com/lehigh-university-libraries/stickerkit/internal/stamp"
	"github.com/lehigh-university-libraries/stickerkit/internal/storage"
)

// newProcessor builds a processor writing into the configured output directory
func (o *options) newProcessor() (*stamp.Processor, *storage.Dir, error) {
	store, err := storage.NewDir(o.cfg.OutputDir)
	if err != nil {
		return nil, nil, err
	}

	stripper, err := background.New(o.cfg.Background)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure background removal: %w", err)
	}

	o.stripper = stripper

	return stamp.NewProcessor(store, stripper), store, nil
}

// backgroundRemoval resolves --remove-bg. Without an explicit flag it is on
// only when the configured remover can run.
func (o *options) backgroundRemoval(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("remove-bg") {
		return flag
	}
	if !background.Usable(o.stripper) {
		slog.Warn("Background removal unavailable, continuing without it",
			"mode", o.cfg.Background.Mode,
			"error", background.ErrCapabilityUnavailable)
		return false
	}
	return flag
}

// resolveInputs turns arguments into batch items. URLs become lazy sources,
// so a failed download fails only that sticker.
func resolveInputs(ctx context.Context, args []string) []any {
	fetcher := images.NewFetcher()
	items := make([]any, 0, len(args))

	for _, arg := range args {
		if !images.IsURL(arg) {
			items = append(items, arg)
			continue
		}

		url := arg
		items = append(items, stamp.Source(func() ([]byte, error) {
			data, err := fetcher.Fetch(ctx, url)
			if err != nil {
				return nil, fmt.Errorf("failed to download %s: %w", url, err)
			}
			return data, nil
		}))
	}

	return items
}

func progressPrinter(w io.Writer) stamp.ProgressFunc {
	return func(current, total int, status string) {
		fmt.Fprintf(w, "[%d/%d] %s\n", current, total, status)
	}
}

// finish writes the batch reports next to the stickers and prints a summary
func finish(w io.Writer, batch *models.BatchResult, store storage.Store) error {
	dir := store.Location()

	if err := report.WriteParquet(filepath.Join(dir, report.ParquetFilename), batch); err != nil {
		slog.Warn("Failed to write parquet report", "error", err)
	}
	if path, err := report.SaveYAML(dir, batch, time.Now()); err != nil {
		slog.Warn("Failed to write YAML report", "error", err)
	} else {
		slog.Debug("Wrote YAML report", "path", path)
	}

	fmt.Fprintf(w, "\nDone: %d/%d succeeded\n", batch.SuccessCount, batch.Total)
	fmt.Fprintf(w, "Output: %s\n", batch.OutputDir)
	if batch.MainPath != "" {
		fmt.Fprintf(w, "Main:   %s\n", batch.MainPath)
	}
	if batch.TabPath != "" {
		fmt.Fprintf(w, "Tab:    %s\n", batch.TabPath)
	}
	if batch.ThumbnailError != "" {
		fmt.Fprintf(w, "Thumbnails failed: %s\n", batch.ThumbnailError)
	}

	if batch.Total > 0 && batch.SuccessCount == 0 {
		return fmt.Errorf("all %d stickers failed", batch.Total)
	}
	return nil
}
