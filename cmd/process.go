package cmd

import (
	"github.com/spf13/cobra"
)

func newProcessCmd(opts *options) *cobra.Command {
	var removeBackground bool

	cmd := &cobra.Command{
		Use:   "process <image>...",
		Short: "Convert images into a numbered sticker set",
		Long: `Normalizes each image to the LINE sticker format and writes them as
01.png, 02.png, ... in argument order. Arguments may be file paths or
http(s) URLs. A failing image does not stop the rest of the set.`,
		Example: `  # Build a set from local files
  stickerkit process cat.png dog.jpg bird.webp -o out/animals

  # Remove flat backgrounds first
  stickerkit process --remove-bg scans/*.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := resolveInputs(cmd.Context(), args)

			processor, store, err := opts.newProcessor()
			if err != nil {
				return err
			}

			batch := processor.ProcessBatch(items, removeBackground, progressPrinter(cmd.OutOrStdout()))
			return finish(cmd.OutOrStdout(), batch, store)
		},
	}

	cmd.Flags().BoolVar(&removeBackground, "remove-bg", false, "Remove the background before fitting")

	return cmd
}
