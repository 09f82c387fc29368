package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mgpai22/subtext/internal/timecode"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [subtitle_file]",
	Short: "List the cues of an SRT file",
	Long: `List every cue with its number, timing, duration and text.

Durations of cues that end before they start are computed across
midnight, the same way cue timing arithmetic works everywhere else.

Examples:
  subtext show movie.srt
  subtext show movie.srt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Print cues as a JSON array")
}

// JSON view of one cue
type cueView struct {
	Number   int    `json:"number"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration,omitempty"`
	Text     string `json:"text"`
}

func runShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	views := make([]cueView, 0, doc.Len())
	for i, cue := range doc.Cues() {
		view := cueView{
			Number: i + 1,
			Start:  timecode.Format(cue.Start),
			End:    timecode.Format(cue.End),
			Text:   cue.Text,
		}
		// spans over a day have no duration
		if dur, err := doc.Duration(i); err == nil {
			view.Duration = timecode.Format(dur)
		} else {
			logger.Debugw("Cue has no valid duration", "number", i+1, "error", err)
		}
		views = append(views, view)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	for _, v := range views {
		fmt.Fprintf(out, "%4d  %s --> %s  (%s)  %s\n",
			v.Number,
			v.Start,
			v.End,
			v.Duration,
			strings.ReplaceAll(v.Text, "\n", " | "),
		)
	}
	fmt.Fprintf(out, "%d cues\n", len(views))
	return nil
}
