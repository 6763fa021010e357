package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/stickerkit/internal/background"
	"github.com/lehigh-university-libraries/stickerkit/internal/config"
)

// options holds the persistent flags and the configuration they resolve to
type options struct {
	configPath string
	outputDir  string
	verbose    bool

	cfg      *config.Config
	stripper background.Stripper
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "stickerkit",
		Short: "Normalize images into LINE sticker sets",
		Long: `Stickerkit turns arbitrary images into a LINE-compliant sticker set.

Every image is trimmed to its visible content, scaled down to fit 350x300 and
centred on a transparent 370x320 canvas. The set is written as 01.png, 02.png, ...
together with the main.png (240x240) and tab.png (96x74) thumbnails.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.outputDir != "" {
				cfg.OutputDir = opts.outputDir
			}
			opts.cfg = cfg

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to YAML config file")
	cmd.PersistentFlags().StringVarP(&opts.outputDir, "output", "o", "", "Output directory (overrides output_dir from config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newProcessCmd(opts))
	cmd.AddCommand(newGridCmd(opts))
	cmd.AddCommand(newResizeCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newReportCmd())

	return cmd
}
