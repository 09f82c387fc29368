package cli

import (
	"fmt"
	"strings"

	"github.com/mgpai22/subtext/internal/timecode"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [subtitle_file] [cue_number]",
	Short: "Change the timing or text of a cue",
	Long: `Change one cue. Only the given fields are touched.

--duration sets the end time relative to the (possibly new) start and
accepts "HH:MM:SS.mmm", "MM:SS.mmm" or plain seconds such as "2.5s".

Examples:
  subtext edit movie.srt 4 --text "Fixed typo"
  subtext edit movie.srt 4 --start 00:00:10,000 --end 00:00:12,250
  subtext edit movie.srt 4 --duration 1.75s`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("start", "", "New start time (HH:MM:SS,mmm)")
	editCmd.Flags().String("end", "", "New end time (HH:MM:SS,mmm)")
	editCmd.Flags().String("duration", "", "New duration, sets the end time")
	editCmd.Flags().String("text", "", `New cue text, "\n" separates lines`)
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	duration, _ := cmd.Flags().GetString("duration")

	if end != "" && duration != "" {
		return fmt.Errorf("--end and --duration cannot be combined")
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	rows, err := parseRows(args[1:], doc.Len())
	if err != nil {
		return err
	}
	row := rows[0]

	if err := doc.SetTiming(row, start, end); err != nil {
		return err
	}

	if duration != "" {
		ms, err := timecode.ParseDuration(duration)
		if err != nil {
			return err
		}
		cue, _ := doc.Cue(row)
		if err := doc.SetEnd(row, timecode.Add(cue.Start, ms)); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		if err := doc.SetText(row, unescapeText(text)); err != nil {
			return err
		}
	}

	out, err := saveDocument(cmd, doc, path)
	if err != nil {
		return err
	}

	cue, _ := doc.Cue(row)
	logger.Infow("Edited cue",
		"number", row+1,
		"start", timecode.Format(cue.Start),
		"end", timecode.Format(cue.End),
		"file", out,
	)
	return nil
}

// lets shell users type multi-line text as "first\nsecond"
func unescapeText(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
