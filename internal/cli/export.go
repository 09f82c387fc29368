package cli

import (
	"fmt"
	"strings"

	"github.com/mgpai22/subtext/internal/subtitle"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Convert an SRT file to WebVTT or SSA",
	Long: `Write the cues of an SRT file in another subtitle format.

The format comes from --format, or from the extension of -o when
--format is not given.

Examples:
  subtext export movie.srt --format vtt
  subtext export movie.srt -o movie.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "", "Output subtitle format (srt, vtt, ssa)")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	formatStr, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("output")

	var format subtitle.Format
	switch {
	case formatStr != "":
		f, err := subtitle.FormatFromExtension("." + strings.TrimPrefix(strings.ToLower(formatStr), "."))
		if err != nil {
			return err
		}
		format = f
	case out != "":
		f, err := subtitle.FormatFromExtension(out)
		if err != nil {
			return err
		}
		format = f
	default:
		return fmt.Errorf("an output format is required: use --format or an -o path with a known extension")
	}

	if out == "" {
		out = siblingPath(path, strings.TrimPrefix(subtitle.ExtensionForFormat(format), "."))
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	if err := subtitle.WriteFile(doc, format, out); err != nil {
		return err
	}

	logger.Infow("Exported subtitles", "format", format, "cues", doc.Len(), "file", out)
	return nil
}
