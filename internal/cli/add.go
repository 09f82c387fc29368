package cli

import (
	"fmt"

	"github.com/mgpai22/subtext/internal/subtitle"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [subtitle_file]",
	Short: "Append or insert a cue",
	Long: `Add a cue to an SRT file. Without --at the cue is appended; with
--at N it is inserted so that it becomes cue N.

Timing defaults to 00:00:00,000 for both ends when not given.

Examples:
  subtext add movie.srt --start 00:01:02,000 --end 00:01:04,500 --text "Hello"
  subtext add movie.srt --at 1 --text "Opening line"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("start", "", "Start time (HH:MM:SS,mmm)")
	addCmd.Flags().String("end", "", "End time (HH:MM:SS,mmm)")
	addCmd.Flags().String("text", "", `Cue text, "\n" separates lines`)
	addCmd.Flags().Int("at", 0, "1-based position to insert at")
}

func runAdd(cmd *cobra.Command, args []string) error {
	path := args[0]
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	text, _ := cmd.Flags().GetString("text")
	at, _ := cmd.Flags().GetInt("at")

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	var pos int
	if at == 0 {
		pos = doc.Add()
	} else {
		if at < 1 || at > doc.Len()+1 {
			return fmt.Errorf("position %d out of range (1-%d)", at, doc.Len()+1)
		}
		pos = at - 1
		if err := doc.Insert(pos, subtitle.Cue{}); err != nil {
			return err
		}
	}
	if err := doc.SetTiming(pos, start, end); err != nil {
		return err
	}
	if err := doc.SetText(pos, unescapeText(text)); err != nil {
		return err
	}

	out, err := saveDocument(cmd, doc, path)
	if err != nil {
		return err
	}

	logger.Infow("Added cue", "number", pos+1, "cues", doc.Len(), "file", out)
	return nil
}
