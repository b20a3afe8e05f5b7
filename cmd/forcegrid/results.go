package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [level]",
	Short: "Show recorded runs",
	Long: `Without a level, summarise every level that has been played. With a
level ID, list its best runs: wins first, then fewest moves, then fewest
frames.

Examples:
  forcegrid results
  forcegrid results 01-intro
  forcegrid results 01-intro --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of runs to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the level's runs")
}

func runResults(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printAllStats(store)
	}
	levelID := args[0]

	if flagResultsClear {
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s.\n", levelID)
		return nil
	}

	runs, err := store.BestRuns(levelID, flagResultsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'forcegrid run %s' to record the first one!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-4s  %-6s  %-6s  %-16s  %s\n", "Rank", "Won", "Moves", "Frames", "Date", "Script")
	fmt.Printf("  %-4s  %-4s  %-6s  %-6s  %-16s  %s\n", "----", "---", "-----", "------", "----", "------")
	for i, r := range runs {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-4s  %-6d  %-6d  %-16s  %s\n",
			i+1, won, r.Moves, r.Frames, r.CreatedAt.Format("2006-01-02 15:04"), r.Script)
	}

	stats, err := store.LevelStats(levelID)
	if err == nil && stats.Wins > 0 {
		fmt.Println()
		fmt.Printf("Best: %d moves, %d of %d runs won\n", stats.BestMoves, stats.Wins, stats.Runs)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	maxIDLen := 5 // "Level" header
	for id := range all {
		ids = append(ids, id)
		maxIDLen = max(maxIDLen, len(id))
	}
	sort.Strings(ids)

	fmt.Printf("  %-*s  %-4s  %-4s  %-4s  %-10s  %s\n", maxIDLen, "Level", "Runs", "Wins", "Best", "Avg frames", "Last run")
	fmt.Printf("  %-*s  %-4s  %-4s  %-4s  %-10s  %s\n", maxIDLen, "-----", "----", "----", "----", "----------", "--------")
	for _, id := range ids {
		s := all[id]
		best := "-"
		if s.Wins > 0 {
			best = fmt.Sprint(s.BestMoves)
		}
		fmt.Printf("  %-*s  %-4d  %-4d  %-4s  %-10.1f  %s\n",
			maxIDLen, id, s.Runs, s.Wins, best, s.AvgFrames, s.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}
