package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available drill presets",
	Long:  `Display all drill presets the trainer can apply, both bundled with the binary and user-defined.`,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	userDir := userPresetDirOrEmpty()
	registry, err := preset.NewRegistry(userDir)
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}

	builtin := registry.ListBySource(preset.SourceBuiltIn)
	user := registry.ListBySource(preset.SourceUser)

	fmt.Println("Built-in presets:")
	printPresetGroup(builtin)

	fmt.Println()
	if userDir != "" {
		fmt.Printf("User presets (%s):\n", userDir)
	} else {
		fmt.Println("User presets:")
	}
	printPresetGroup(user)

	fmt.Println()
	fmt.Println("Apply a preset in the trainer with p")
	return nil
}

func printPresetGroup(presets []preset.Preset) {
	if len(presets) == 0 {
		fmt.Println("  (none)")
		return
	}
	maxLen := maxNameLen(presets)
	for _, p := range presets {
		fmt.Printf("  %-*s  %d cmd @ %s within ±%d  %s\n",
			maxLen, p.Name, p.CommandCount, styles.FormatInterval(p.Interval.Std()), p.Bound, p.Description)
	}
}

// maxNameLen returns the length of the longest preset name in the slice.
func maxNameLen(presets []preset.Preset) int {
	maxLen := 0
	for _, p := range presets {
		if len(p.Name) > maxLen {
			maxLen = len(p.Name)
		}
	}
	return maxLen
}
