package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/subtext/internal/subtitle"
	"github.com/spf13/cobra"
)

// opens an SRT file, logging any blocks the parser had to skip
func loadDocument(path string) (*subtitle.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("subtitle file not found: %s", path)
	}

	doc, report, err := subtitle.Open(path)
	if err != nil {
		return nil, err
	}

	logger.Debugw("Parsed subtitle file",
		"file", path,
		"cues", doc.Len(),
		"blocks", report.Blocks,
	)
	if report.Dropped > 0 {
		logger.Warnw("Skipped malformed cue blocks",
			"file", path,
			"dropped", report.Dropped,
			"lines", report.DroppedLines,
		)
	}

	return doc, nil
}

// output path from -o, falling back to fallback
func outputPath(cmd *cobra.Command, fallback string) string {
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return out
	}
	return fallback
}

// writes doc as SRT to -o or back to the input file
func saveDocument(cmd *cobra.Command, doc *subtitle.Document, input string) (string, error) {
	out := outputPath(cmd, input)
	if err := subtitle.Save(doc, out); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Debugw("Wrote subtitle file", "file", out, "cues", doc.Len())
	return out, nil
}

// <base>.<suffix> next to path, e.g. movie.srt -> movie.es.srt
func siblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + suffix
}

// converts 1-based row arguments to 0-based positions
func parseRows(args []string, count int) ([]int, error) {
	rows := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid cue number %q", arg)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("cue number %d out of range (1-%d)", n, count)
		}
		rows = append(rows, n-1)
	}
	return rows, nil
}

// value of a flag when the user set it, otherwise the configured value
func stringSetting(cmd *cobra.Command, name, configured string) string {
	if cmd.Flags().Changed(name) || configured == "" {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return configured
}

func intSetting(cmd *cobra.Command, name string, configured int) int {
	if cmd.Flags().Changed(name) || configured == 0 {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return configured
}

func floatSetting(cmd *cobra.Command, name string, configured float64) float64 {
	if cmd.Flags().Changed(name) || configured == 0 {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return configured
}
