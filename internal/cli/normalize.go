package cli

import (
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [subtitle_file]",
	Short: "Rewrite an SRT file in canonical form",
	Long: `Parse and rewrite an SRT file: cues are renumbered from 1, lines
end with CRLF, a byte order mark is removed and malformed blocks are
dropped (each one is reported).

Examples:
  subtext normalize movie.srt
  subtext normalize broken.srt -o fixed.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	out, err := saveDocument(cmd, doc, path)
	if err != nil {
		return err
	}

	logger.Infow("Normalized subtitle file", "cues", doc.Len(), "file", out)
	return nil
}
