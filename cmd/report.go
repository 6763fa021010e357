package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/report"
)

func newReportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report <dir|file.parquet>",
		Short: "Show the report of a processed sticker set",
		Example: `  stickerkit report stamps/
  stickerkit report stamps/report.parquet --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}
			if info.IsDir() {
				path = filepath.Join(path, report.ParquetFilename)
			}

			rows, err := report.ReadParquet(path)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}

			return report.Print(cmd.OutOrStdout(), rows, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	return cmd
}
