package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/watcher"
)

func newWatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Rebuild the sticker set whenever images change in a folder",
		Long: `Watches a folder and re-normalizes it into the output directory each time
images are added or modified. Bursts of changes are debounced (watch.debounce
in the config file). Stops on Ctrl+C.`,
		Example: `  stickerkit watch cutouts/ -o stamps/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			in, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			out, err := filepath.Abs(opts.cfg.OutputDir)
			if err != nil {
				return err
			}
			if in == out {
				return fmt.Errorf("watched folder and output directory must differ: %s", in)
			}

			processor, store, err := opts.newProcessor()
			if err != nil {
				return err
			}

			w, err := watcher.New(dir, opts.cfg.Watch.Debounce, func(dir string) {
				batch, err := processor.ProcessDirectory(dir, nil)
				if err != nil {
					slog.Error("Failed to process folder", "dir", dir, "error", err)
					return
				}
				if err := finish(cmd.OutOrStdout(), batch, store); err != nil {
					slog.Error("Batch failed", "dir", dir, "error", err)
				}
			})
			if err != nil {
				return err
			}

			return w.Run(cmd.Context())
		},
	}

	return cmd
}
