package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/subtext/internal/subtitle"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [subtitle_file]",
	Short: "Create an empty SRT file",
	Long: `Create an empty SRT file, refusing to replace an existing one
unless --force is given.

Examples:
  subtext new episode01.srt
  subtext new draft.srt --force`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
	}

	if err := subtitle.Save(subtitle.New(), path); err != nil {
		return fmt.Errorf("failed to create subtitle file: %w", err)
	}

	logger.Infow("Created subtitle file", "file", path)
	return nil
}
