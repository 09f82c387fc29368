package cli

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [subtitle_file] [cue_number...]",
	Short: "Remove cues by number",
	Long: `Remove one or more cues. Numbers refer to the file as it is before
the command runs and the remaining cues are renumbered on save.

Examples:
  subtext remove movie.srt 3
  subtext remove movie.srt 2 5 9`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	rows, err := parseRows(args[1:], doc.Len())
	if err != nil {
		return err
	}
	if err := doc.RemoveMany(rows); err != nil {
		return err
	}

	out, err := saveDocument(cmd, doc, path)
	if err != nil {
		return err
	}

	logger.Infow("Removed cues", "requested", len(rows), "cues", doc.Len(), "file", out)
	return nil
}
