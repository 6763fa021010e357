package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/gemini"
	"github.com/lehigh-university-libraries/stickerkit/internal/openai"
	"github.com/lehigh-university-libraries/stickerkit/internal/providers"
	"github.com/lehigh-university-libraries/stickerkit/internal/stamp"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var prompt string
	var provider string
	var model string
	var grid string
	var removeBackground bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a grid sheet with an image model and split it into stickers",
		Long: `Sends the prompt verbatim to an image model, then treats the returned image
as a grid composite. Requires GEMINI_API_KEY or OPENAI_API_KEY depending on the
provider (a .env file is honoured).`,
		Example: `  stickerkit generate --prompt "A 4x4 grid of a shiba inu sticker set, flat white background"

  # Single image, no splitting
  stickerkit generate --prompt "..." --grid 1x1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, cols, err := stamp.ParseGrid(grid)
			if err != nil {
				return err
			}

			var generator providers.Generator
			switch provider {
			case "gemini":
				generator = gemini.New()
				if model == "" {
					model = opts.cfg.Gemini.Model
				}
			case "openai":
				generator = openai.New()
				if model == "" {
					model = opts.cfg.OpenAI.Model
				}
			default:
				return fmt.Errorf("unsupported provider: %s", provider)
			}

			processor, store, err := opts.newProcessor()
			if err != nil {
				return err
			}
			removeBackground = opts.backgroundRemoval(cmd, removeBackground)

			slog.Info("Generating image", "provider", provider, "model", model)
			data, err := generator.GenerateImage(cmd.Context(), providers.Config{
				Model:       model,
				Temperature: opts.cfg.Gemini.Temperature,
				Prompt:      prompt,
			})
			if err != nil {
				return fmt.Errorf("failed to generate image: %w", err)
			}

			if err := store.Write("source.png", data); err != nil {
				slog.Warn("Failed to keep generated source image", "error", err)
			}

			batch, err := processor.ProcessGrid(data, rows, cols, removeBackground, progressPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), batch, store)
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt sent to the model (required)")
	cmd.Flags().StringVar(&provider, "provider", "gemini", "Image provider (gemini or openai)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the provider's model from config)")
	cmd.Flags().StringVar(&grid, "grid", "4x4", "Grid layout of the generated sheet as ROWSxCOLS")
	cmd.Flags().BoolVar(&removeBackground, "remove-bg", true, "Remove the background of each cell (skipped with a warning when no remover is configured)")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}
