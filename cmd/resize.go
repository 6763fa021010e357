package cmd

import (
	"github.com/spf13/cobra"
)

func newResizeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <dir>",
		Short: "Re-normalize an existing sticker directory",
		Long: `Re-fits the stickers in a directory to the LINE format without background
removal. Files named 01.png, 02.png, ... are used when present; otherwise every
decodable image (png, jpg, webp, gif, bmp, tiff) except main.png and tab.png is
taken in name order.

The set is renumbered from 01 without gaps: 01.png and 03.png come out as
01.png and 02.png. Without --output the stickers are rewritten in place, so a
higher-numbered original such as 03.png is left beside the renumbered set.`,
		Example: `  stickerkit resize stamps/
  stickerkit resize cutouts/ -o stamps/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if !cmd.Flags().Changed("output") {
				opts.cfg.OutputDir = dir
			}

			processor, store, err := opts.newProcessor()
			if err != nil {
				return err
			}

			batch, err := processor.ProcessDirectory(dir, progressPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), batch, store)
		},
	}

	return cmd
}
