package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/subtext/internal/subtitle"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [subtitle_file]",
	Short: "Convert a WebVTT or SSA file to SRT",
	Long: `Read a WebVTT (.vtt) or SubStation Alpha (.ssa, .ass) file and write
its cues as SRT. Styling is discarded and times are kept to the
millisecond.

Examples:
  subtext import movie.vtt
  subtext import episode.ass -o episode.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", path)
	}

	doc, err := subtitle.ImportFile(path)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	out := outputPath(cmd, siblingPath(path, "srt"))
	if out == path {
		return fmt.Errorf("refusing to overwrite the input file: use -o")
	}

	if err := subtitle.Save(doc, out); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Infow("Imported subtitles", "cues", doc.Len(), "file", out)
	return nil
}
