package cli

import (
	"context"

	"github.com/mgpai22/subtext/internal/config"
	"github.com/mgpai22/subtext/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subtext",
	Short: "Edit, translate and voice SRT subtitle files",
	Long: `Subtext is a command-line editor for SubRip (.srt) subtitle files.

It parses and rewrites SRT with millisecond timing, edits cues in place,
translates cue text with AI providers and fits cue end times to
synthesized speech. WebVTT and SSA files can be imported and exported.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.File != "" {
			logger.Debugw("Loaded config", "file", cfg.File)
		}
		return nil
	},
}

// ExecuteContext runs the CLI with ctx, canceling network work when ctx ends.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/subtext/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
