package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every level found in the level directory, sorted by ID.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	levels, err := loader().LoadAll()
	if err != nil {
		return fmt.Errorf("loading levels from %s: %w", cfg.Levels.Dir, err)
	}

	if len(levels) == 0 {
		fmt.Printf("No levels found in %s.\n", cfg.Levels.Dir)
		return nil
	}

	completed := completedLevels()

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-4s  %s\n", maxIDLen, "ID", "Size", "Done", "Name")
	fmt.Printf("  %-*s  %-7s  %-4s  %s\n", maxIDLen, "--", "----", "----", "----")

	for _, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Definition.Width, l.Definition.Height)
		done := ""
		if completed[l.ID] {
			done = "yes"
		}
		fmt.Printf("  %-*s  %-7s  %-4s  %s\n", maxIDLen, l.ID, size, done, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'forcegrid run <id> --moves \"r r\"' to play a level.")
	return nil
}

// completedLevels returns the levels won at least once. A missing or broken
// database only costs the column.
func completedLevels() map[string]bool {
	done := make(map[string]bool)
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return done
	}
	defer store.Close()

	ids, err := store.CompletedLevels()
	if err != nil {
		logger.Warn("could not read completed levels", "error", err)
		return done
	}
	for _, id := range ids {
		done[id] = true
	}
	return done
}
