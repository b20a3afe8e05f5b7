package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

var flagCheckIdle int

var checkCmd = &cobra.Command{
	Use:   "check <level>",
	Short: "Validate a level",
	Long: `Parse a level file (or a level ID), report what it contains and make
sure it is playable:

  - it must not already be won before the player does anything
  - every stored solution must win the level

Examples:
  forcegrid check levels/01-intro.lvl
  forcegrid check 02-slide`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagCheckIdle, "steps", 50, "Idle frames allowed after a solution")
}

func runCheck(cmd *cobra.Command, args []string) error {
	lvl, err := loader().Resolve(args[0])
	if err != nil {
		return err
	}
	d := lvl.Definition
	sim := simulation()

	start, err := level.NewSession(d, sim)
	if err != nil {
		return err
	}
	b := start.Board()

	fmt.Printf("Level:  %s\n", lvl.ID)
	if lvl.Name != "" {
		fmt.Printf("Name:   %s\n", lvl.Name)
	}
	fmt.Printf("Size:   %dx%d\n", d.Width, d.Height)

	counts := make(map[puzzle.Kind]int)
	for _, blk := range b.Blocks() {
		counts[blk.Kind()]++
	}
	kinds := make([]puzzle.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	fmt.Print("Blocks:")
	for _, k := range kinds {
		fmt.Printf(" %s=%d", k, counts[k])
	}
	fmt.Println()

	_, goals := start.Goals()
	fmt.Printf("Goals:  %d\n", goals)
	fmt.Println()
	printBoard(b)
	fmt.Println()

	var problems []error
	if counts[puzzle.KindPlayer] == 0 {
		fmt.Println("warning: no player block")
	}

	won, err := level.StartsWon(d, sim)
	switch {
	case err != nil:
		problems = append(problems, fmt.Errorf("simulating the start: %w", err))
	case won:
		problems = append(problems, errors.New("level is already won without input"))
	}

	for i := range d.Solutions {
		s, err := lvl.Start(sim)
		if err != nil {
			return err
		}
		if err := s.Solve(i, 0, flagCheckIdle, nil); err != nil {
			problems = append(problems, fmt.Errorf("solution %d: %w", i, err))
			continue
		}
		if !s.Won() {
			problems = append(problems, fmt.Errorf("solution %d does not win the level", i))
			continue
		}
		fmt.Printf("solution %d: solved in %d frames (%d moves)\n", i, s.Frames(), s.Moves())
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("problem: %v\n", p)
		}
		return fmt.Errorf("level %s has %d problem(s)", lvl.ID, len(problems))
	}
	fmt.Println("ok")
	return nil
}
