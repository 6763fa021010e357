package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/stamp"
)

func newGridCmd(opts *options) *cobra.Command {
	var grid string
	var removeBackground bool

	cmd := &cobra.Command{
		Use:   "grid <image>",
		Short: "Split a grid composite into stickers",
		Long: `Cuts a composite image into rows x cols equal cells, in reading order,
and processes the cells as one sticker set. Trailing pixels that do not fill a
whole cell are dropped.`,
		Example: `  # Split a 4x4 sheet (the default)
  stickerkit grid sheet.png

  # Split a 2x4 sheet and keep the background
  stickerkit grid sheet.png --grid 2x4 --remove-bg=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, cols, err := stamp.ParseGrid(grid)
			if err != nil {
				return err
			}

			items := resolveInputs(cmd.Context(), args)

			processor, store, err := opts.newProcessor()
			if err != nil {
				return err
			}
			removeBackground = opts.backgroundRemoval(cmd, removeBackground)

			batch, err := processor.ProcessGrid(items[0], rows, cols, removeBackground, progressPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), batch, store)
		},
	}

	cmd.Flags().StringVar(&grid, "grid", "4x4", "Grid layout as ROWSxCOLS")
	cmd.Flags().BoolVar(&removeBackground, "remove-bg", true, "Remove the background of each cell (skipped with a warning when no remover is configured)")

	return cmd
}
